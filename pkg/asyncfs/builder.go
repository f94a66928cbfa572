package asyncfs

import (
	"fmt"
	"time"
)

// Builder accumulates operations and an optional shared timeout, then
// submits them through a manager as a single task or one batch.
type Builder struct {
	ops     []Operation
	timeout time.Duration
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithTimeout sets the timeout applied at submission.
func (b *Builder) WithTimeout(d time.Duration) *Builder {
	b.timeout = d
	return b
}

// PathExists queues an existence check for path.
func (b *Builder) PathExists(path string) *Builder {
	b.ops = append(b.ops, PathExists(path))
	return b
}

// GetFileInfo queues a metadata snapshot of path.
func (b *Builder) GetFileInfo(path string) *Builder {
	b.ops = append(b.ops, GetFileInfo(path))
	return b
}

// ReadDirectory queues a listing of path's immediate children.
func (b *Builder) ReadDirectory(path string) *Builder {
	b.ops = append(b.ops, ReadDirectory(path))
	return b
}

// CreateDirectory queues creation of path.
func (b *Builder) CreateDirectory(path string) *Builder {
	b.ops = append(b.ops, CreateDirectory(path))
	return b
}

// Delete queues removal of path.
func (b *Builder) Delete(path string) *Builder {
	b.ops = append(b.ops, Delete(path))
	return b
}

// Copy queues a tree copy from src to dst.
func (b *Builder) Copy(src, dst string) *Builder {
	b.ops = append(b.ops, Copy(src, dst))
	return b
}

// Move queues a rename from src to dst.
func (b *Builder) Move(src, dst string) *Builder {
	b.ops = append(b.ops, Move(src, dst))
	return b
}

// GetFileSize queues a size read of path.
func (b *Builder) GetFileSize(path string) *Builder {
	b.ops = append(b.ops, GetFileSize(path))
	return b
}

// GetModifiedTime queues a modification-time read of path.
func (b *Builder) GetModifiedTime(path string) *Builder {
	b.ops = append(b.ops, GetModifiedTime(path))
	return b
}

// Add queues an already-constructed operation.
func (b *Builder) Add(op Operation) *Builder {
	b.ops = append(b.ops, op)
	return b
}

// BuildSingle submits the accumulated operation as a single task. It
// fails unless exactly one operation has been accumulated.
func (b *Builder) BuildSingle(m *Manager) (*Handle, error) {
	if len(b.ops) != 1 {
		return nil, fmt.Errorf("build single requires exactly one operation, have %d", len(b.ops))
	}
	return m.Submit(b.ops[0], b.timeout)
}

// BuildBatch wraps the accumulated operations, in insertion order, as
// one Batch and submits it. It fails when no operation has been
// accumulated.
func (b *Builder) BuildBatch(m *Manager) (*Handle, error) {
	if len(b.ops) == 0 {
		return nil, fmt.Errorf("build batch requires at least one operation")
	}
	return m.Submit(Batch(b.ops...), b.timeout)
}
