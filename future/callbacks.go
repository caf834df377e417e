package future

import (
	"sync/atomic"

	"github.com/everyday-items/toolkit/lang/cond"
)

// CallbackHandle identifies a registered done-callback so it can later be
// removed with RemoveDoneCallback. The zero value never matches a real
// registration.
type CallbackHandle uint64

var callbackHandleSeq atomic.Uint64

func nextCallbackHandle() CallbackHandle {
	return CallbackHandle(callbackHandleSeq.Add(1))
}

// AddDoneCallback registers fn to run once the future reaches a terminal
// state, dispatched through the future's default executor. If the future
// is already terminal, fn runs immediately through the same dispatch path
// rather than being silently dropped. Registering a callback counts as
// observing the future: it disarms the unhandled-failure guard, the same
// as calling Result or Exception.
func (f *Future[T]) AddDoneCallback(fn func(*Future[T])) CallbackHandle {
	return f.addDoneCallback(fn, nil)
}

// AddDoneCallbackOn is AddDoneCallback with a per-callback executor
// override, for callers that want this one callback dispatched
// differently from the future's default (e.g. off the producer's
// goroutine even though the future itself defaults to Inline).
func (f *Future[T]) AddDoneCallbackOn(executor Executor, fn func(*Future[T])) CallbackHandle {
	return f.addDoneCallback(fn, executor)
}

func (f *Future[T]) addDoneCallback(fn func(*Future[T]), executor Executor) CallbackHandle {
	handle := nextCallbackHandle()
	entry := callbackEntry[T]{handle: handle, fn: fn, executor: executor}

	f.mu.Lock()
	f.observed = true
	f.guardArmed = false
	terminal := state(f.state.Load()) != statePending
	if !terminal {
		f.callbacks = append(f.callbacks, entry)
	}
	f.mu.Unlock()

	if terminal {
		f.dispatch([]callbackEntry[T]{entry})
	}
	return handle
}

// RemoveDoneCallback cancels a pending registration. It returns false if
// the future had already gone terminal (the callback may already have
// run) or the handle was never registered.
func (f *Future[T]) RemoveDoneCallback(handle CallbackHandle) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, entry := range f.callbacks {
		if entry.handle == handle {
			f.callbacks = append(f.callbacks[:i], f.callbacks[i+1:]...)
			return true
		}
	}
	return false
}

// dispatch fans a snapshot of callbacks out to their executors. Called
// with the future's lock already released (transition and
// addDoneCallback both copy-then-unlock before calling this).
func (f *Future[T]) dispatch(callbacks []callbackEntry[T]) {
	for _, entry := range callbacks {
		entry := entry
		executor := cond.If(entry.executor != nil, entry.executor, f.defaultExecutor)
		kind := executorKind(executor)
		executor.Schedule(func() {
			metricsCallbackDispatch(kind)
			entry.fn(f)
		})
	}
}

func executorKind(e Executor) string {
	switch e.(type) {
	case inlineExecutor:
		return "inline"
	case goExecutor:
		return "go"
	case *PoolExecutor:
		return "pool"
	case *BoundedExecutor:
		return "bounded"
	default:
		return "loop"
	}
}
