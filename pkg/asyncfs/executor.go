package asyncfs

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/asyncfs/pkg/asyncfs/filesystem"
)

// Executor maps an Operation to its terminal Result against one
// filesystem. It holds no state between calls.
type Executor struct {
	fsys   filesystem.FullFileSystem
	logger zerolog.Logger
}

// NewExecutor creates an executor over fsys.
func NewExecutor(fsys filesystem.FullFileSystem, logger zerolog.Logger) *Executor {
	return &Executor{fsys: fsys, logger: logger}
}

// Perform executes op and returns its terminal result. Filesystem
// failures are normalized into StatusError results; Perform itself
// never returns an error to the caller. The context is consulted
// between steps of multi-step operations; an operation already issued
// to the OS is not interrupted.
func (e *Executor) Perform(ctx context.Context, op Operation) Result {
	switch op.Type {
	case OpPathExists:
		_, err := e.fsys.Stat(op.Path)
		return Success(err == nil)

	case OpGetFileInfo:
		info, err := StatFileInfo(e.fsys, op.Path)
		if err != nil {
			return Errorf("failed to get file info: %v", err)
		}
		return Success(info)

	case OpReadDirectory:
		infos, err := e.readDirectory(op.Path)
		if err != nil {
			return Errorf("failed to read directory: %v", err)
		}
		return Success(infos)

	case OpCreateDirectory:
		if err := e.fsys.MkdirAll(op.Path, 0o755); err != nil {
			return Errorf("failed to create directory: %v", err)
		}
		return Success(true)

	case OpDelete:
		if err := e.delete(op.Path); err != nil {
			return Errorf("failed to delete: %v", err)
		}
		return Success(true)

	case OpCopy:
		if err := e.copyTree(ctx, op.Path, op.Dest); err != nil {
			return Errorf("failed to copy: %v", err)
		}
		return Success(true)

	case OpMove:
		if err := e.fsys.Rename(op.Path, op.Dest); err != nil {
			return Errorf("failed to move: %v", err)
		}
		return Success(true)

	case OpGetFileSize:
		info, err := e.fsys.Stat(op.Path)
		if err != nil {
			return Errorf("failed to get file size: %v", err)
		}
		return Success(uint64(info.Size()))

	case OpGetModifiedTime:
		info, err := e.fsys.Stat(op.Path)
		if err != nil {
			return Errorf("failed to get modified time: %v", err)
		}
		return Success(uint64(info.ModTime().Unix()))

	case OpBatch:
		return e.performBatch(ctx, op.Ops)

	default:
		return Errorf("unknown operation type %q", op.Type)
	}
}

// performBatch runs sub-operations strictly sequentially. The first
// sub-result that is not a success aborts the batch; timeout and
// cancellation outcomes of sub-operations are collapsed into the
// batch-level error as well.
func (e *Executor) performBatch(ctx context.Context, ops []Operation) Result {
	values := make([]any, 0, len(ops))
	for _, op := range ops {
		res := e.Perform(ctx, op)
		switch res.Status {
		case StatusSuccess:
			values = append(values, res.Value)
		case StatusError:
			return Errorf("batch operation failed: %s", res.Err)
		case StatusTimeout:
			return Errorf("batch sub-operation timed out")
		case StatusCancelled:
			return Errorf("batch sub-operation was cancelled")
		}
	}
	return Success(values)
}

// readDirectory enumerates the immediate children of dir. A child whose
// metadata snapshot fails is skipped and logged; the listing continues.
func (e *Executor) readDirectory(dir string) ([]FileInfo, error) {
	entries, err := e.fsys.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	infos := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		child := path.Join(dir, entry.Name())
		info, err := StatFileInfo(e.fsys, child)
		if err != nil {
			e.logger.Warn().
				Str("path", child).
				Err(err).
				Msg("skipping unreadable directory entry")
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// delete dispatches to file removal or recursive directory removal
// based on the target's kind.
func (e *Executor) delete(name string) error {
	info, err := e.fsys.Stat(name)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return e.fsys.RemoveAll(name)
	}
	return e.fsys.Remove(name)
}

// copyPair is one pending source/destination pair of the tree copy.
type copyPair struct {
	src, dst string
}

// copyTree copies src to dst, preserving relative structure. It works
// through an explicit list of pending pairs rather than recursing, so
// the context can be checked between entries. Any failure aborts the
// whole operation; partially written destination content is left as is.
func (e *Executor) copyTree(ctx context.Context, src, dst string) error {
	pending := []copyPair{{src: src, dst: dst}}

	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("copy aborted: %w", err)
		}

		pair := pending[0]
		pending = pending[1:]

		info, err := e.fsys.Stat(pair.src)
		if err != nil {
			return fmt.Errorf("failed to stat copy source %s: %w", pair.src, err)
		}

		if info.IsDir() {
			if err := e.fsys.MkdirAll(pair.dst, 0o755); err != nil {
				return fmt.Errorf("failed to create destination directory %s: %w", pair.dst, err)
			}
			entries, err := e.fsys.ReadDir(pair.src)
			if err != nil {
				return fmt.Errorf("failed to read copy source directory %s: %w", pair.src, err)
			}
			for _, entry := range entries {
				pending = append(pending, copyPair{
					src: path.Join(pair.src, entry.Name()),
					dst: path.Join(pair.dst, entry.Name()),
				})
			}
			continue
		}

		if err := e.copyFile(pair.src, pair.dst, info.Mode().Perm()); err != nil {
			return err
		}
	}
	return nil
}

// copyFile copies one file's bytes, creating the destination's parent
// directory chain first.
func (e *Executor) copyFile(src, dst string, perm fs.FileMode) error {
	if parent := path.Dir(dst); parent != "." {
		if err := e.fsys.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("failed to create destination directory %s: %w", parent, err)
		}
	}

	f, err := e.fsys.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open copy source %s: %w", src, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			e.logger.Warn().Err(closeErr).Str("path", src).Msg("failed to close copy source")
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to read copy source %s: %w", src, err)
	}
	if err := e.fsys.WriteFile(dst, data, perm); err != nil {
		return fmt.Errorf("failed to write copy destination %s: %w", dst, err)
	}
	return nil
}
