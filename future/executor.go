package future

import (
	"github.com/everyday-items/toolkit/lang/syncx"
	"github.com/everyday-items/toolkit/util/poolx"
)

// Executor schedules a callback to run, eventually. The callback takes no
// arguments; dispatch wraps the future into it. Schedule must take ownership of running fn
// exactly once; it must never block the caller for longer than submission
// itself takes. A synchronous executor runs fn inline at submission time.
type Executor interface {
	Schedule(fn func())
}

// inlineExecutor runs the callback inline, on whichever goroutine
// triggers the dispatch (the producer's goroutine, or the registering
// goroutine if the future is already terminal). It is the package
// default.
type inlineExecutor struct{}

// Schedule implements Executor by invoking fn immediately.
func (inlineExecutor) Schedule(fn func()) { fn() }

// Inline is the synchronous executor: Schedule runs fn inline. Useful as
// an explicit per-callback override even when the future's default
// executor is something else.
var Inline Executor = inlineExecutor{}

// goExecutor schedules fn on a freshly spawned goroutine. Unlike Inline
// it never blocks the producer, but it gives up ordering guarantees
// across executors (only callbacks sharing one executor are ordered).
type goExecutor struct{}

func (goExecutor) Schedule(fn func()) { go fn() }

// Go is an Executor that runs every callback on its own goroutine.
var Go Executor = goExecutor{}

// PoolExecutor adapts a util/poolx.Pool to the Executor contract, the
// pool-executor shape described in the executor contract: "a pool executor
// exposing submit(fn, *args) -> future". A full backlog makes Schedule
// block inside pool.Submit; a submission failure (the pool has been
// released) falls back to running fn inline rather than dropping it, since
// Schedule must not silently lose a callback.
type PoolExecutor struct {
	pool *poolx.Pool
}

// NewPoolExecutor wraps an already-configured pool.
func NewPoolExecutor(pool *poolx.Pool) *PoolExecutor {
	return &PoolExecutor{pool: pool}
}

// Schedule submits fn to the pool, falling back to an inline call if the
// pool rejects the task.
func (e *PoolExecutor) Schedule(fn func()) {
	if err := e.pool.Submit(fn); err != nil {
		fn()
	}
}

// Pool returns the underlying pool, for callers that also want to submit
// unrelated work to it.
func (e *PoolExecutor) Pool() *poolx.Pool { return e.pool }

// Submit runs fn on the executor's pool and returns a future for its
// outcome, the submission-returning-a-future half of the executor
// contract. A rejected submission surfaces as the future's failure
// rather than an inline fallback, since the caller asked for the result,
// not fire-and-forget dispatch.
func Submit[T any](e *PoolExecutor, fn func() (T, error)) *Future[T] {
	f := NewFuture[T]()
	err := e.pool.Submit(func() {
		v, fnErr := fn()
		if fnErr != nil {
			f.TrySetException(fnErr)
			return
		}
		f.TrySetResult(v)
	})
	if err != nil {
		f.TrySetException(err)
	}
	return f
}

// BoundedExecutor runs each callback on its own goroutine but holds at
// most n of them in flight at once, pushing back on bursty dispatch
// without serializing it the way Inline does. Schedule itself never
// blocks; the spawned goroutine waits for a slot.
type BoundedExecutor struct {
	sem *syncx.Semaphore
}

// NewBoundedExecutor creates an executor limited to n concurrent
// callbacks.
func NewBoundedExecutor(n int) *BoundedExecutor {
	return &BoundedExecutor{sem: syncx.NewSemaphore(n)}
}

// Schedule implements Executor.
func (e *BoundedExecutor) Schedule(fn func()) {
	go func() {
		e.sem.Acquire()
		defer e.sem.Release()
		fn()
	}()
}

// LoopExecutor is the shape of an event-loop executor: call_soon/
// call_soon_threadsafe, the scheduling primitives an event loop exposes
// to code running on it. Loop (future/loop.go) implements it and uses
// itself as its bound futures' default executor.
type LoopExecutor interface {
	Executor

	// CallSoon schedules fn to run on the loop's own goroutine, for calls
	// already made from the loop.
	CallSoon(fn func())

	// CallSoonThreadsafe schedules fn to run on the loop's own goroutine
	// when the caller may be running on a foreign goroutine, mirroring a
	// typical event loop's call_soon/call_soon_threadsafe split.
	CallSoonThreadsafe(fn func())
}
