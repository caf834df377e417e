package future

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/everyday-items/toolkit/lang/optional"
	"github.com/google/uuid"
)

// state is the future's position in its state machine. Exactly one
// transition ever happens, out of Pending.
type state int32

const (
	statePending state = iota
	stateSuccess
	stateFailure
	stateCancelled
)

func (s state) String() string {
	switch s {
	case statePending:
		return "Pending"
	case stateSuccess:
		return "Success"
	case stateFailure:
		return "Failure"
	case stateCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// callbackEntry is one (subscriber, executor) pair in the registry.
type callbackEntry[T any] struct {
	handle   CallbackHandle
	fn       func(*Future[T])
	executor Executor
}

// Future is the read handle to a single eventual value or error. The zero
// value is not usable; construct one with NewPromise or NewFuture.
//
// Future[T] is the cooperative core: Result and Exception never block.
// Sync[T] (future/sync.go) wraps the same machinery with blocking waits.
type Future[T any] struct {
	id uuid.UUID

	mu    *sync.Mutex // allocated apart from the Future so cond never points back into it; a self-reference would keep the finalizer from running
	cond  *sync.Cond
	state atomic.Int32

	value T
	err   error // set on stateFailure; also holds Cancelled on stateCancelled

	callbacks []callbackEntry[T]

	defaultExecutor Executor
	errSink         func(error)

	guardArmed bool // true once a failure has occurred and no one has observed it
	observed   bool // true once Result/Exception/AddDoneCallback has run
}

// Promise is the write handle to a Future[T]. Producers hold a Promise;
// consumers hold the Future it guards. A single object can serve both
// roles (call Promise.Future()), following the same split as
// util/poolx.Promise[T].
type Promise[T any] struct {
	f *Future[T]
}

// NewPromise creates a pending Future[T] and returns its write handle.
func NewPromise[T any](opts ...Option) *Promise[T] {
	return &Promise[T]{f: newFuture[T](opts...)}
}

// NewFuture is a convenience for callers that only need the read handle
// and will complete it through Future.TrySetResult/TrySetException
// (e.g. combinators), rather than through a separate Promise.
func NewFuture[T any](opts ...Option) *Future[T] {
	return newFuture[T](opts...)
}

func newFuture[T any](opts ...Option) *Future[T] {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(&cfg)
	}
	f := &Future[T]{
		id:              uuid.New(),
		defaultExecutor: cfg.defaultExecutor,
		errSink:         cfg.unhandledErrorSink,
	}
	f.mu = new(sync.Mutex)
	f.cond = sync.NewCond(f.mu)
	metricsFutureCreated()
	return f
}

// Completed returns an already-successful future, useful as a fixture in
// tests and as the base case for combinators over empty input sets.
func Completed[T any](value T) *Future[T] {
	f := NewFuture[T]()
	f.TrySetResult(value)
	return f
}

// Failed returns an already-failed future.
func Failed[T any](err error) *Future[T] {
	f := NewFuture[T]()
	f.TrySetException(err)
	return f
}

// Promise returns a write handle for this Future, for code that received
// only the Future but needs to complete it (e.g. cooperative code that
// split the two at construction time). Each call returns a new thin
// wrapper over the same state: completing it completes the future.
func (f *Future[T]) Promise() *Promise[T] { return &Promise[T]{f: f} }

// Future returns the read handle.
func (p *Promise[T]) Future() *Future[T] { return p.f }

// SetResult completes the underlying future with v. See Future.SetResult.
func (p *Promise[T]) SetResult(v T) error { return p.f.SetResult(v) }

// TrySetResult is the non-raising form of SetResult.
func (p *Promise[T]) TrySetResult(v T) bool { return p.f.TrySetResult(v) }

// SetException fails the underlying future with err. See Future.SetException.
func (p *Promise[T]) SetException(err error) error { return p.f.SetException(err) }

// TrySetException is the non-raising form of SetException.
func (p *Promise[T]) TrySetException(err error) bool { return p.f.TrySetException(err) }

// Cancel cancels the underlying future. See Future.Cancel.
func (p *Promise[T]) Cancel() bool { return p.f.Cancel() }

// ID is the future's identity, used for correlation in logs and metrics.
func (f *Future[T]) ID() uuid.UUID { return f.id }

// Done reports whether the future has left Pending.
func (f *Future[T]) Done() bool {
	return state(f.state.Load()) != statePending
}

// Cancelled reports whether the future's terminal state is Cancelled.
// O(1), does not block.
func (f *Future[T]) Cancelled() bool {
	return state(f.state.Load()) == stateCancelled
}

// snapshot reads state/value/err together under the lock.
func (f *Future[T]) snapshot() (state, T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return state(f.state.Load()), f.value, f.err
}

// Result returns the value if the future succeeded. It fails with
// Cancelled if the future was cancelled, with the stored exception if it
// failed, and with InvalidState if it is still pending: the cooperative
// variant never blocks. Calling Result marks the failure (if any) as
// handled, disarming the unhandled-error guard.
func (f *Future[T]) Result() (T, error) {
	st, v, err := f.snapshot()
	f.markObserved()
	switch st {
	case statePending:
		var zero T
		return zero, invalidStateErrorf("future %s still pending", f.id)
	case stateCancelled:
		var zero T
		return zero, Cancelled
	case stateFailure:
		var zero T
		return zero, err
	default:
		return v, nil
	}
}

// TryResult is like Result but never allocates a wrapped InvalidState
// message; ok reports whether the future had reached a terminal state.
func (f *Future[T]) TryResult() (value T, err error, ok bool) {
	st, v, e := f.snapshot()
	if st == statePending {
		var zero T
		return zero, nil, false
	}
	f.markObserved()
	switch st {
	case stateCancelled:
		var zero T
		return zero, Cancelled, true
	case stateFailure:
		var zero T
		return zero, e, true
	default:
		return v, nil, true
	}
}

// Exception returns the future's stored exception, or nil if it
// succeeded, or the Cancelled value if it was cancelled. callErr is
// non-nil only if the future is still pending (InvalidState); the
// cooperative variant never blocks waiting for it. Calling Exception
// marks any failure as handled.
func (f *Future[T]) Exception() (exc error, callErr error) {
	st, _, err := f.snapshot()
	f.markObserved()
	switch st {
	case statePending:
		return nil, invalidStateErrorf("future %s still pending", f.id)
	case stateCancelled:
		return Cancelled, nil
	case stateFailure:
		return err, nil
	default:
		return nil, nil
	}
}

// Peek returns the success value if the future has one, None otherwise.
// Unlike Result it does not count as observing the future: a pending or
// failed future is left exactly as it was, unhandled-error guard
// included.
func (f *Future[T]) Peek() optional.Option[T] {
	st, v, _ := f.snapshot()
	if st == stateSuccess {
		return optional.Some(v)
	}
	return optional.None[T]()
}

func (f *Future[T]) markObserved() {
	f.mu.Lock()
	f.observed = true
	f.guardArmed = false
	f.mu.Unlock()
	runtime.SetFinalizer(f, nil)
}

// SetResult transitions the future to success. It fails with InvalidState
// if the future has already completed with a result or exception; a
// prior cancellation absorbs the call as a no-op (returns nil).
func (f *Future[T]) SetResult(v T) error {
	ok, wasCancelled := f.transition(stateSuccess, v, nil)
	if !ok && !wasCancelled {
		return invalidStateErrorf("future %s: result already set", f.id)
	}
	return nil
}

// TrySetResult is the non-raising form of SetResult. It returns true both
// on a genuine transition and when absorbed by a prior cancellation.
func (f *Future[T]) TrySetResult(v T) bool {
	ok, wasCancelled := f.transition(stateSuccess, v, nil)
	return ok || wasCancelled
}

// SetException transitions the future to failure. Same absorption rule
// as SetResult applies to a prior cancellation.
func (f *Future[T]) SetException(err error) error {
	if err == nil {
		panic("future: SetException called with nil error")
	}
	ok, wasCancelled := f.transition(stateFailure, *new(T), err)
	if !ok && !wasCancelled {
		return invalidStateErrorf("future %s: result already set", f.id)
	}
	return nil
}

// TrySetException is the non-raising form of SetException.
func (f *Future[T]) TrySetException(err error) bool {
	if err == nil {
		return false
	}
	ok, wasCancelled := f.transition(stateFailure, *new(T), err)
	return ok || wasCancelled
}

// Cancel transitions the future to Cancelled if it is still pending.
// Returns false (never raises) once the future is already terminal.
// Safe to call from any goroutine, non-blocking.
func (f *Future[T]) Cancel() bool {
	ok, _ := f.transition(stateCancelled, *new(T), Cancelled)
	return ok
}

// SetFrom copies the terminal state of other into f: its result,
// exception, or cancellation. other must already be terminal; if it is
// still pending, SetFrom fails with InvalidState.
func (f *Future[T]) SetFrom(other *Future[T]) error {
	if !f.TrySetFrom(other) {
		st, _, _ := other.snapshot()
		if st == statePending {
			return invalidStateErrorf("future %s: source future %s still pending", f.id, other.id)
		}
		return invalidStateErrorf("future %s: result already set", f.id)
	}
	return nil
}

// TrySetFrom is the non-raising form of SetFrom. It returns false both
// when other is still pending and when f was already terminal (and not
// absorbing via prior cancellation).
func (f *Future[T]) TrySetFrom(other *Future[T]) bool {
	st, v, err := other.snapshot()
	switch st {
	case statePending:
		return false
	case stateCancelled:
		return f.Cancel() || f.cancelledAbsorbed()
	case stateFailure:
		return f.TrySetException(err)
	default:
		return f.TrySetResult(v)
	}
}

func (f *Future[T]) cancelledAbsorbed() bool {
	return state(f.state.Load()) == stateCancelled
}

// transition attempts the single allowed Pending -> terminal move. ok
// reports whether this call performed the transition; wasCancelled
// reports whether the future was already Cancelled (so the call should
// be treated as an absorbed no-op rather than an error).
func (f *Future[T]) transition(to state, v T, err error) (ok bool, wasCancelled bool) {
	f.mu.Lock()
	cur := state(f.state.Load())
	if cur != statePending {
		f.mu.Unlock()
		return false, cur == stateCancelled
	}
	f.value = v
	f.err = err
	f.state.Store(int32(to))
	if to == stateFailure {
		f.guardArmed = !f.observed
		if f.guardArmed {
			runtime.SetFinalizer(f, finalizeUnhandled[T])
		}
	}
	callbacks := f.callbacks
	f.callbacks = nil
	f.cond.Broadcast()
	f.mu.Unlock()

	metricsFutureTerminal(to)
	f.dispatch(callbacks)
	return true, false
}

// finalizeUnhandled is installed as the future's GC finalizer when it
// terminates in failure without ever being observed; it fires the
// unhandled-error guard once, so a swallowed exception still gets
// reported before the future is collected.
func finalizeUnhandled[T any](f *Future[T]) {
	f.mu.Lock()
	armed := f.guardArmed
	err := f.err
	f.guardArmed = false
	f.mu.Unlock()
	if armed {
		reportUnhandled(f.errSink, err)
	}
}
