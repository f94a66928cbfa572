package asyncfs

import "fmt"

// Status discriminates the four terminal outcomes of a task.
type Status int

const (
	// StatusSuccess means the operation completed and carries a value.
	StatusSuccess Status = iota
	// StatusError means the operation failed; the message names the
	// attempted operation and the underlying cause.
	StatusError
	// StatusTimeout means the timeout elapsed before the operation finished.
	StatusTimeout
	// StatusCancelled means the task was cancelled, or its result sink
	// was abandoned before delivery.
	StatusCancelled
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	case StatusTimeout:
		return "timeout"
	case StatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the single terminal outcome of a task. It is produced once
// and never mutated afterward.
//
// Value is populated only for StatusSuccess and holds one of the payload
// shapes documented on the Operation constructors: bool, uint64,
// FileInfo, []FileInfo, or []any for a batch.
type Result struct {
	Status Status
	Value  any
	Err    string
}

// Success builds a successful result carrying value.
func Success(value any) Result {
	return Result{Status: StatusSuccess, Value: value}
}

// Errorf builds an error result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Result{Status: StatusError, Err: fmt.Sprintf(format, args...)}
}

// Timeout is the terminal result of a task whose timeout elapsed first.
func Timeout() Result {
	return Result{Status: StatusTimeout}
}

// Cancelled is the terminal result of a cancelled or abandoned task.
func Cancelled() Result {
	return Result{Status: StatusCancelled}
}

// IsSuccess reports whether the result carries a success value.
func (r Result) IsSuccess() bool { return r.Status == StatusSuccess }

// IsError reports whether the result is an operation failure.
func (r Result) IsError() bool { return r.Status == StatusError }

// Bool returns the payload as a bool, or false when the result is not a
// successful boolean-shaped outcome.
func (r Result) Bool() bool {
	v, _ := r.Value.(bool)
	return r.IsSuccess() && v
}

// Uint64 returns the payload as a uint64, or 0 when the result is not a
// successful integer-shaped outcome.
func (r Result) Uint64() uint64 {
	if !r.IsSuccess() {
		return 0
	}
	v, _ := r.Value.(uint64)
	return v
}

// FileInfo returns the payload as a FileInfo snapshot.
func (r Result) FileInfo() (FileInfo, bool) {
	v, ok := r.Value.(FileInfo)
	return v, r.IsSuccess() && ok
}

// FileInfos returns the payload as a directory listing.
func (r Result) FileInfos() ([]FileInfo, bool) {
	v, ok := r.Value.([]FileInfo)
	return v, r.IsSuccess() && ok
}

// Values returns the payload as a batch result list.
func (r Result) Values() ([]any, bool) {
	v, ok := r.Value.([]any)
	return v, r.IsSuccess() && ok
}
