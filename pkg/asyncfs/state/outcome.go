package state

import (
	"github.com/arthur-debert/asyncfs/pkg/asyncfs"
)

// ApplyResult feeds a task's terminal result into the machine: a
// success finishes loading, anything else becomes an error state with
// a describing message. Call from the Loading state after Wait returns.
func (m *Machine) ApplyResult(res asyncfs.Result) error {
	switch res.Status {
	case asyncfs.StatusSuccess:
		return m.Handle(FinishLoading)
	case asyncfs.StatusError:
		m.Fail(res.Err)
	case asyncfs.StatusTimeout:
		m.Fail("operation timed out")
	case asyncfs.StatusCancelled:
		m.Fail("operation was cancelled")
	}
	return nil
}
