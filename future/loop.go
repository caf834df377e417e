package future

import "github.com/everyday-items/toolkit/util/logger"

// Loop is a minimal single-goroutine event loop: a FIFO of thunks drained
// by one dedicated goroutine, implementing LoopExecutor. Futures created
// with WithExecutor(loop) get their done-callbacks dispatched onto that
// one goroutine, so combinator chains built on the same Loop never need
// their own locking beyond what Future[T] already does. This is the
// externally-supplied event loop an event-loop-bound future assumes; it
// does not implement a general-purpose reactor (no I/O polling), only
// the scheduling contract futures rely on.
type Loop struct {
	tasks  chan func()
	log    *logger.Logger
	closed chan struct{}
}

// NewLoop starts a loop goroutine with the given pending-task buffer
// size. Call Close to stop it.
func NewLoop(buffer int) *Loop {
	l := &Loop{
		tasks:  make(chan func(), buffer),
		closed: make(chan struct{}),
	}
	l.log = logger.Default()
	go l.run()
	return l
}

func (l *Loop) run() {
	for {
		select {
		case fn, ok := <-l.tasks:
			if !ok {
				return
			}
			l.safeRun(fn)
		case <-l.closed:
			l.drain()
			return
		}
	}
}

func (l *Loop) safeRun(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("future: loop task panicked", "recover", r)
		}
	}()
	fn()
}

func (l *Loop) drain() {
	for {
		select {
		case fn, ok := <-l.tasks:
			if !ok {
				return
			}
			l.safeRun(fn)
		default:
			return
		}
	}
}

// CallSoon schedules fn from code already running on the loop goroutine.
// Equivalent to CallSoonThreadsafe here since the channel send is safe
// from any goroutine; kept as a distinct method to mirror the executor
// contract's call_soon/call_soon_threadsafe split.
func (l *Loop) CallSoon(fn func()) { l.tasks <- fn }

// CallSoonThreadsafe schedules fn from a foreign goroutine.
func (l *Loop) CallSoonThreadsafe(fn func()) { l.tasks <- fn }

// Schedule implements Executor.
func (l *Loop) Schedule(fn func()) { l.CallSoonThreadsafe(fn) }

// Close stops the loop after draining any tasks already queued.
func (l *Loop) Close() { close(l.closed) }

// NewLoopFuture creates a pending Future[T] whose default callback
// executor is loop, matching the event-loop-bound variant's contract:
// every callback registered without an explicit override runs on the
// loop, never inline and never on an arbitrary goroutine.
func NewLoopFuture[T any](loop *Loop) *Future[T] {
	return NewFuture[T](WithExecutor(loop))
}

// NewLoopPromise is NewLoopFuture's write-handle counterpart.
func NewLoopPromise[T any](loop *Loop) *Promise[T] {
	return NewPromise[T](WithExecutor(loop))
}

// SameLoop reports whether both futures share the same default executor
// loop, the event-loop variant's "compatible" check: combinators over
// loop-bound futures are expected to stay on one loop, since nothing
// here adds cross-loop locking beyond what Future[T] already provides.
func SameLoop[A, B any](a *Future[A], b *Future[B]) bool {
	la, ok1 := a.defaultExecutor.(*Loop)
	lb, ok2 := b.defaultExecutor.(*Loop)
	return ok1 && ok2 && la == lb
}
