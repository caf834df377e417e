package future

import (
	"sync"

	"github.com/everyday-items/toolkit/lang/errorx"
	"github.com/everyday-items/toolkit/lang/slicex"
	"github.com/everyday-items/toolkit/lang/tuple"
)

// Map returns a future that holds fn(v) once other succeeds with v, or
// propagates other's failure/cancellation unchanged. Cancelling the
// returned future cancels other in turn, so an abandoned chain does not
// leave its source still running.
func Map[T, R any](other *Future[T], fn func(T) (R, error), executor Executor) *Future[R] {
	f := NewFuture[R]()
	propagateCancel(f, other)
	other.AddDoneCallbackOn(executor, func(src *Future[T]) {
		v, err := src.Result()
		switch {
		case src.Cancelled():
			f.Cancel()
		case err != nil:
			f.TrySetException(err)
		default:
			r, mapErr := fn(v)
			if mapErr != nil {
				f.TrySetException(mapErr)
				return
			}
			f.TrySetResult(r)
		}
	})
	return f
}

// Recover returns a future that holds other's result if it succeeds, or
// the result of calling fn with other's exception if it fails. A
// cancellation on other is not recoverable and propagates unchanged:
// recover intercepts failures only, never cancellation.
func Recover[T any](other *Future[T], fn func(error) (T, error), executor Executor) *Future[T] {
	f := NewFuture[T]()
	propagateCancel(f, other)
	other.AddDoneCallback(func(src *Future[T]) {
		switch {
		case src.Cancelled():
			f.Cancel()
		default:
			v, err := src.Result()
			if err == nil {
				f.TrySetResult(v)
				return
			}
			runOn(executor, func() {
				rv, rerr := fn(err)
				if rerr != nil {
					f.TrySetException(rerr)
					return
				}
				f.TrySetResult(rv)
			})
		}
	})
	return f
}

// RecoverWith is Recover with a literal replacement value instead of a
// function: any failure of other resolves to value.
func RecoverWith[T any](other *Future[T], value T) *Future[T] {
	return Recover(other, func(error) (T, error) { return value, nil }, nil)
}

// Then chains a second future, produced by fn from other's result, after
// other completes successfully. Failure or cancellation at either stage
// propagates to the result; a panic from fn becomes the result's
// failure.
func Then[T, R any](other *Future[T], fn func(T) *Future[R], executor Executor) *Future[R] {
	f := NewFuture[R]()
	propagateCancel(f, other)
	other.AddDoneCallbackOn(executor, func(src *Future[T]) {
		switch {
		case src.Cancelled():
			f.Cancel()
		default:
			v, err := src.Result()
			if err != nil {
				f.TrySetException(err)
				return
			}
			next := callThenFunc(fn, v, f)
			if next == nil {
				return
			}
			propagateCancel(f, next)
			next.AddDoneCallback(func(n *Future[R]) {
				if n.Cancelled() {
					f.Cancel()
					return
				}
				f.SetFrom(n)
			})
		}
	})
	return f
}

func callThenFunc[T, R any](fn func(T) *Future[R], v T, f *Future[R]) (next *Future[R]) {
	defer func() {
		if r := recover(); r != nil {
			f.TrySetException(errorx.Newf("future: then callback panicked: %v", r))
			next = nil
		}
	}()
	return fn(v)
}

// Fallback returns other's result on success, or the result of the
// future produced by fn when other fails. Cancellation at either stage
// propagates to the result.
func Fallback[T any](other *Future[T], fn func(error) *Future[T], executor Executor) *Future[T] {
	f := NewFuture[T]()
	propagateCancel(f, other)
	other.AddDoneCallback(func(src *Future[T]) {
		switch {
		case src.Cancelled():
			f.Cancel()
		default:
			v, err := src.Result()
			if err == nil {
				f.TrySetResult(v)
				return
			}
			next := callFallbackFunc(fn, err, f)
			if next == nil {
				return
			}
			propagateCancel(f, next)
			next.AddDoneCallbackOn(executor, func(n *Future[T]) {
				if n.Cancelled() {
					f.Cancel()
					return
				}
				f.SetFrom(n)
			})
		}
	})
	return f
}

func callFallbackFunc[T any](fn func(error) *Future[T], err error, f *Future[T]) (next *Future[T]) {
	defer func() {
		if r := recover(); r != nil {
			f.TrySetException(errorx.Newf("future: fallback callback panicked: %v", r))
			next = nil
		}
	}()
	return fn(err)
}

// gatherCtx is the mutex-guarded accumulator shared by a fan-in
// combinator's children.
type gatherCtx[T any] struct {
	mu      sync.Mutex
	results []T
	left    int
	failed  bool
}

// Gather combines futures into a future of their results in order. The
// first failure to occur fails the combined future immediately with
// that error, and the remaining children are left to finish on their
// own. A cancelled child counts as a failure with Cancelled; it fails
// the combined future but never cancels the siblings. An empty input
// succeeds immediately with an empty slice. Use GatherSettled to wait
// for every child regardless of failure.
func Gather[T any](futures []*Future[T]) *Future[[]T] {
	metricsCombinatorFanout(len(futures))
	if len(futures) == 0 {
		return Completed[[]T](nil)
	}

	f := NewFuture[[]T]()
	ctx := &gatherCtx[T]{
		results: make([]T, len(futures)),
		left:    len(futures),
	}

	for i, fi := range futures {
		i, fi := i, fi
		propagateCancel(f, fi)
		fi.AddDoneCallback(func(src *Future[T]) {
			// Result maps a cancelled child to the Cancelled error, so
			// child cancellation surfaces through the same first-failure
			// path instead of cancelling the aggregate.
			v, err := src.Result()

			ctx.mu.Lock()
			firstFailure := err != nil && !ctx.failed
			if firstFailure {
				ctx.failed = true
			} else if err == nil {
				ctx.results[i] = v
			}
			ctx.left--
			complete := ctx.left == 0 && !ctx.failed
			ctx.mu.Unlock()

			// Complete outside ctx.mu: the Inline executor runs the
			// aggregate's own callbacks right here.
			if firstFailure {
				f.TrySetException(err)
			} else if complete {
				f.TrySetResult(ctx.results)
			}
		})
	}
	return f
}

// GatherSettled combines futures into a future of per-child outcomes
// that always succeeds once every child is terminal, one
// lang/errorx.Result[T] per input in order. A cancelled child is
// recorded as Err(Cancelled). Use it instead of Gather when one child
// failing must not hide the other children's results.
func GatherSettled[T any](futures []*Future[T]) *Future[[]errorx.Result[T]] {
	metricsCombinatorFanout(len(futures))
	if len(futures) == 0 {
		return Completed[[]errorx.Result[T]](nil)
	}

	f := NewFuture[[]errorx.Result[T]]()
	results := make([]errorx.Result[T], len(futures))
	var mu sync.Mutex
	left := len(futures)

	for i, fi := range futures {
		i, fi := i, fi
		fi.AddDoneCallback(func(src *Future[T]) {
			var r errorx.Result[T]
			switch {
			case src.Cancelled():
				r = errorx.Err[T](Cancelled)
			default:
				v, err := src.Result()
				r = errorx.FromError(v, err)
			}

			mu.Lock()
			results[i] = r
			left--
			done := left == 0
			mu.Unlock()

			if done {
				f.TrySetResult(results)
			}
		})
	}
	return f
}

// First returns a future set from whichever of futures completes first,
// successfully or with failure; ties are broken by callback arrival
// order. If every child is cancelled, the combined future is cancelled
// rather than left pending forever. futures must be non-empty.
func First[T any](futures []*Future[T]) *Future[T] {
	if len(futures) == 0 {
		panic("future: First() got empty sequence")
	}
	metricsCombinatorFanout(len(futures))

	f := NewFuture[T]()
	ctx := &gatherCtx[T]{left: len(futures)}
	for _, fi := range futures {
		propagateCancel(f, fi)
		fi.AddDoneCallback(func(src *Future[T]) {
			if src.Cancelled() {
				ctx.mu.Lock()
				ctx.left--
				left := ctx.left
				ctx.mu.Unlock()
				if left == 0 {
					f.Cancel()
				}
				return
			}
			v, err := src.Result()
			if err != nil {
				f.TrySetException(err)
				return
			}
			f.TrySetResult(v)
		})
	}
	return f
}

// FirstSuccessful returns a future set from the first future in futures
// to succeed. If every future fails, the combined future fails with the
// last error observed. futures must be non-empty.
func FirstSuccessful[T any](futures []*Future[T]) *Future[T] {
	if len(futures) == 0 {
		panic("future: FirstSuccessful() got empty sequence")
	}
	metricsCombinatorFanout(len(futures))

	f := NewFuture[T]()
	ctx := &gatherCtx[T]{left: len(futures)}

	for _, fi := range futures {
		propagateCancel(f, fi)
		fi.AddDoneCallback(func(src *Future[T]) {
			if src.Cancelled() {
				ctx.mu.Lock()
				ctx.left--
				left := ctx.left
				ctx.mu.Unlock()
				if left == 0 {
					f.Cancel()
				}
				return
			}
			v, err := src.Result()
			if err == nil {
				f.TrySetResult(v)
				return
			}
			ctx.mu.Lock()
			ctx.left--
			left := ctx.left
			ctx.mu.Unlock()
			if left == 0 {
				f.TrySetException(err)
			}
		})
	}
	return f
}

// Reduce folds fn over the successful results of futures, left to right,
// starting from initial. It is Gather followed by a left fold.
func Reduce[T, R any](futures []*Future[T], fn func(R, T) R, initial R) *Future[R] {
	all := Gather(futures)
	return Map(all, func(results []T) (R, error) {
		return slicex.Reduce(results, initial, fn), nil
	}, nil)
}

// Join2 combines two differently-typed futures into a future of both
// results, completing once both succeed. A failure or cancellation of
// either input fails the combined future (Cancelled for a cancelled
// input), the same first-failure rule Gather applies. Cancelling the
// combined future cancels both inputs.
func Join2[A, B any](fa *Future[A], fb *Future[B]) *Future[tuple.Tuple2[A, B]] {
	metricsCombinatorFanout(2)
	f := NewFuture[tuple.Tuple2[A, B]]()
	propagateCancel(f, fa)
	propagateCancel(f, fb)

	var mu sync.Mutex
	var a A
	var b B
	left := 2

	settle := func(err error) {
		if err != nil {
			f.TrySetException(err)
			return
		}
		mu.Lock()
		left--
		done := left == 0
		mu.Unlock()
		if done {
			f.TrySetResult(tuple.T2(a, b))
		}
	}

	fa.AddDoneCallback(func(src *Future[A]) {
		v, err := src.Result()
		if err == nil {
			mu.Lock()
			a = v
			mu.Unlock()
		}
		settle(err)
	})
	fb.AddDoneCallback(func(src *Future[B]) {
		v, err := src.Result()
		if err == nil {
			mu.Lock()
			b = v
			mu.Unlock()
		}
		settle(err)
	})
	return f
}

// propagateCancel arranges for cancelling child to cancel parent too, so
// an abandoned combinator result stops the work feeding it instead of
// leaking a still-running producer.
func propagateCancel[R, T any](child *Future[R], parent *Future[T]) {
	child.AddDoneCallback(func(c *Future[R]) {
		if c.Cancelled() {
			parent.Cancel()
		}
	})
}

func runOn(executor Executor, fn func()) {
	if executor == nil {
		executor = Inline
	}
	executor.Schedule(fn)
}
