package asyncfs

// Handle is the caller-held, single-use object for awaiting or
// cancelling one task. It is owned exclusively by the caller that
// received it from Submit.
type Handle struct {
	id     string
	result <-chan Result
	reg    *registry
}

// ID returns the task's opaque unique identifier.
func (h *Handle) ID() string {
	return h.id
}

// Wait blocks until the task's terminal result arrives and returns it,
// consuming the handle. A sink abandoned before delivery, for example
// by manager shutdown, is reported as Cancelled; so is a second Wait.
func (h *Handle) Wait() Result {
	res, ok := <-h.result
	if !ok {
		return Cancelled()
	}
	return res
}

// Cancel fires the task's cancellation signal if it is still in
// flight. It is idempotent; cancelling a task that has already
// produced its terminal result has no observable effect.
func (h *Handle) Cancel() {
	h.reg.cancel(h.id)
}

// IsRunning reports whether the task's execution is registered as in
// flight. The answer is advisory and race-prone: registry removal and
// result delivery are separate steps, so false does not guarantee the
// result has been delivered yet.
func (h *Handle) IsRunning() bool {
	return h.reg.contains(h.id)
}
