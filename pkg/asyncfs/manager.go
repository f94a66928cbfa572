package asyncfs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/asyncfs/pkg/asyncfs/filesystem"
)

// DefaultTimeout applies to tasks submitted without an explicit timeout.
const DefaultTimeout = 30 * time.Second

// ErrClosed is returned by Submit after the manager has been closed.
var ErrClosed = errors.New("asyncfs: submission closed")

// task pairs one submitted operation with its id, timeout and one-shot
// result sink. It is created at submission time and consumed exactly
// once by the dispatch loop.
type task struct {
	id      string
	op      Operation
	timeout time.Duration
	result  chan Result
}

// Manager runs the engine: it consumes submitted tasks from an
// unbounded queue and, for each, races the operation's execution
// against its timeout and its cancellation signal. Each dequeued task
// executes on its own goroutine; the manager does not bound concurrent
// executions. Cancellation and timeout abandon the wait for a result,
// they do not interrupt filesystem calls already issued to the OS.
type Manager struct {
	executor       *Executor
	reg            *registry
	defaultTimeout time.Duration
	logger         zerolog.Logger

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []*task
	closed bool

	loopDone chan struct{}
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithDefaultTimeout overrides the timeout applied to tasks submitted
// without one.
func WithDefaultTimeout(d time.Duration) Option {
	return func(m *Manager) { m.defaultTimeout = d }
}

// NewManager creates a manager over fsys and starts its dispatch loop.
func NewManager(fsys filesystem.FullFileSystem, opts ...Option) (*Manager, error) {
	if fsys == nil {
		return nil, errors.New("asyncfs: nil filesystem")
	}

	m := &Manager{
		reg:            newRegistry(),
		defaultTimeout: DefaultTimeout,
		logger:         DefaultLogger(),
		loopDone:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.executor = NewExecutor(fsys, m.logger)
	m.cond = sync.NewCond(&m.mu)

	go m.loop()
	return m, nil
}

// Submit enqueues op and returns a handle for its result. It never
// blocks: the task may not have begun executing when Submit returns.
// A timeout of zero or less applies the manager's default. Submit
// fails only after Close.
func (m *Manager) Submit(op Operation, timeout time.Duration) (*Handle, error) {
	if timeout <= 0 {
		timeout = m.defaultTimeout
	}

	t := &task{
		id:      uuid.NewString(),
		op:      op,
		timeout: timeout,
		result:  make(chan Result, 1),
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	m.queue = append(m.queue, t)
	m.cond.Signal()
	m.mu.Unlock()

	m.logger.Debug().
		Str("task_id", t.id).
		Str("op_type", string(op.Type)).
		Str("path", op.Path).
		Dur("timeout", timeout).
		Msg("task submitted")

	return &Handle{id: t.id, result: t.result, reg: m.reg}, nil
}

// loop is the single dispatch loop. Every per-task failure is reported
// through the task's result channel; nothing a task does terminates
// the loop.
func (m *Manager) loop() {
	defer close(m.loopDone)
	for {
		m.mu.Lock()
		for len(m.queue) == 0 && !m.closed {
			m.cond.Wait()
		}
		if m.closed {
			// Abandon pending sinks; their waiters observe Cancelled.
			pending := m.queue
			m.queue = nil
			m.mu.Unlock()
			for _, t := range pending {
				close(t.result)
			}
			return
		}
		t := m.queue[0]
		m.queue = m.queue[1:]
		m.mu.Unlock()

		cancel := m.reg.insert(t.id)
		go m.run(t, cancel)
	}
}

// run races execution, timeout elapse and cancellation for one task,
// then removes the registry entry and delivers the terminal result.
// Removal and delivery are two separate steps: a handle can observe
// IsRunning() == false slightly before its result arrives.
func (m *Manager) run(t *task, cancel <-chan struct{}) {
	start := time.Now()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	performed := make(chan Result, 1)
	go func() {
		performed <- m.executor.Perform(ctx, t.op)
	}()

	timer := time.NewTimer(t.timeout)
	defer timer.Stop()

	var res Result
	select {
	case res = <-performed:
	case <-timer.C:
		res = Timeout()
	case <-cancel:
		res = Cancelled()
	}

	m.reg.remove(t.id)
	t.result <- res
	close(t.result)

	m.logger.Debug().
		Str("task_id", t.id).
		Str("op_type", string(t.op.Type)).
		Str("path", t.op.Path).
		Str("status", res.Status.String()).
		Dur("duration", time.Since(start)).
		Msg("task completed")
}

// CancelAll fires every pending cancellation signal.
func (m *Manager) CancelAll() {
	fired := m.reg.cancelAll()
	m.logger.Info().Int("cancelled", fired).Msg("cancelled all in-flight tasks")
}

// ActiveTaskCount returns the number of in-flight executions.
func (m *Manager) ActiveTaskCount() int {
	return m.reg.count()
}

// Close shuts the submission queue. Queued tasks that have not begun
// executing are abandoned (their waiters observe Cancelled); executions
// already in flight run to their own conclusion. Close is idempotent.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.cond.Broadcast()
	m.mu.Unlock()
	<-m.loopDone
}
