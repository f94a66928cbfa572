package asyncfs

import "sync"

// registry is the shared table of in-flight tasks' cancellation
// signals. An entry exists only while its task's execution is in
// flight. The lock is held only for map mutation, never across a
// blocking call.
type registry struct {
	mu    sync.Mutex
	tasks map[string]chan struct{}
}

func newRegistry() *registry {
	return &registry{tasks: make(map[string]chan struct{})}
}

// insert registers a fresh cancellation signal for id and returns the
// channel the execution race listens on.
func (r *registry) insert(id string) chan struct{} {
	ch := make(chan struct{})
	r.mu.Lock()
	r.tasks[id] = ch
	r.mu.Unlock()
	return ch
}

// remove drops the entry for id without firing it. Called when the
// execution race concludes.
func (r *registry) remove(id string) {
	r.mu.Lock()
	delete(r.tasks, id)
	r.mu.Unlock()
}

// cancel removes the entry for id and fires its signal. It reports
// whether an entry was present; a second call, or a call after natural
// completion, finds nothing and is a no-op.
func (r *registry) cancel(id string) bool {
	r.mu.Lock()
	ch, ok := r.tasks[id]
	if ok {
		delete(r.tasks, id)
	}
	r.mu.Unlock()
	if ok {
		close(ch)
	}
	return ok
}

// cancelAll drains the table, firing every pending signal, and returns
// how many were fired.
func (r *registry) cancelAll() int {
	r.mu.Lock()
	drained := make([]chan struct{}, 0, len(r.tasks))
	for id, ch := range r.tasks {
		drained = append(drained, ch)
		delete(r.tasks, id)
	}
	r.mu.Unlock()

	for _, ch := range drained {
		close(ch)
	}
	return len(drained)
}

// contains reports whether id is registered. The answer is advisory:
// it can go stale the moment the lock is released.
func (r *registry) contains(id string) bool {
	r.mu.Lock()
	_, ok := r.tasks[id]
	r.mu.Unlock()
	return ok
}

// count returns the number of registered in-flight tasks.
func (r *registry) count() int {
	r.mu.Lock()
	n := len(r.tasks)
	r.mu.Unlock()
	return n
}
