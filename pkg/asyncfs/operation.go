package asyncfs

// OpType identifies the kind of filesystem action an Operation describes.
type OpType string

const (
	OpPathExists      OpType = "path_exists"
	OpGetFileInfo     OpType = "get_file_info"
	OpReadDirectory   OpType = "read_directory"
	OpCreateDirectory OpType = "create_directory"
	OpDelete          OpType = "delete"
	OpCopy            OpType = "copy"
	OpMove            OpType = "move"
	OpGetFileSize     OpType = "get_file_size"
	OpGetModifiedTime OpType = "get_modified_time"
	OpBatch           OpType = "batch"
)

// Operation is an inert description of one filesystem action. Operations
// are immutable once constructed; the executor gives each variant its
// meaning. Path arguments are interpreted relative to the filesystem the
// engine was built with.
//
// Success payload shapes, by type: bool (PathExists, CreateDirectory,
// Delete, Copy, Move), uint64 (GetFileSize, GetModifiedTime as a Unix
// timestamp), FileInfo (GetFileInfo), []FileInfo (ReadDirectory), and
// []any of nested payloads (Batch).
type Operation struct {
	Type OpType
	Path string
	Dest string      // second path for Copy and Move
	Ops  []Operation // sub-operations for Batch; may nest
}

// PathExists describes an existence check for path.
func PathExists(path string) Operation {
	return Operation{Type: OpPathExists, Path: path}
}

// GetFileInfo describes a metadata snapshot of path.
func GetFileInfo(path string) Operation {
	return Operation{Type: OpGetFileInfo, Path: path}
}

// ReadDirectory describes an enumeration of path's immediate children.
func ReadDirectory(path string) Operation {
	return Operation{Type: OpReadDirectory, Path: path}
}

// CreateDirectory describes creation of path and any missing parents.
func CreateDirectory(path string) Operation {
	return Operation{Type: OpCreateDirectory, Path: path}
}

// Delete describes removal of path; directories are removed recursively.
func Delete(path string) Operation {
	return Operation{Type: OpDelete, Path: path}
}

// Copy describes a recursive tree copy from src to dst.
func Copy(src, dst string) Operation {
	return Operation{Type: OpCopy, Path: src, Dest: dst}
}

// Move describes an atomic rename from src to dst.
func Move(src, dst string) Operation {
	return Operation{Type: OpMove, Path: src, Dest: dst}
}

// GetFileSize describes a size read of path.
func GetFileSize(path string) Operation {
	return Operation{Type: OpGetFileSize, Path: path}
}

// GetModifiedTime describes a modification-time read of path.
func GetModifiedTime(path string) Operation {
	return Operation{Type: OpGetModifiedTime, Path: path}
}

// Batch describes an ordered list of operations executed sequentially as
// a single task. The first sub-operation that does not succeed aborts
// the batch. Batches may nest.
func Batch(ops ...Operation) Operation {
	return Operation{Type: OpBatch, Ops: ops}
}
