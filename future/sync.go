package future

import (
	"context"
	"time"

	"github.com/everyday-items/toolkit/lang/contextx"
	"github.com/everyday-items/toolkit/util/poolx"
)

// Sync wraps a Future[T] with blocking accessors guarded by the same
// mutex/condition-variable the cooperative core already keeps. Use it
// when the calling goroutine genuinely wants to block until the future
// settles, rather than registering a callback.
type Sync[T any] struct {
	f *Future[T]
}

// NewSyncPromise creates a pending future and returns its synchronized
// write handle.
func NewSyncPromise[T any](opts ...Option) *Promise[T] {
	return NewPromise[T](opts...)
}

// WrapSync adapts an existing Future[T] (cooperative or event-loop-bound)
// into its synchronized view. No data is copied; Sync reads and blocks
// against the same underlying state.
func WrapSync[T any](f *Future[T]) *Sync[T] {
	return &Sync[T]{f: f}
}

// Future returns the underlying cooperative Future[T].
func (s *Sync[T]) Future() *Future[T] { return s.f }

// Wait blocks until the future becomes terminal, or until timeout
// elapses if one is given. It returns true if the future is terminal
// when Wait returns, false on a timeout. With no timeout argument, Wait
// blocks indefinitely.
func (s *Sync[T]) Wait(timeout ...time.Duration) bool {
	f := s.f
	f.mu.Lock()
	defer f.mu.Unlock()
	if state(f.state.Load()) != statePending {
		return true
	}
	if len(timeout) == 0 {
		for state(f.state.Load()) == statePending {
			f.cond.Wait()
		}
		return true
	}
	return waitWithTimeout(f, timeout[0])
}

// waitWithTimeout blocks on f.cond until terminal or the deadline
// passes. Must be called with f.mu held; returns with f.mu held.
func waitWithTimeout[T any](f *Future[T], d time.Duration) bool {
	deadline := time.Now().Add(d)
	for state(f.state.Load()) == statePending {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}
		// sync.Cond has no timed wait; a waiter goroutine plus a timer
		// nudges it so Wait still returns promptly on timeout.
		timer := time.AfterFunc(remaining, func() {
			f.mu.Lock()
			f.cond.Broadcast()
			f.mu.Unlock()
		})
		f.cond.Wait()
		timer.Stop()
	}
	return state(f.state.Load()) != statePending
}

// Result returns the future's value, following the same Cancelled/failure
// mapping as Future.Result. With no timeout given, it never blocks: a
// still-Pending future fails with InvalidState immediately, the same as
// the cooperative variant. With a timeout, it blocks up to it and fails
// with Timeout if the future is still Pending when the deadline passes.
// Use Wait with no arguments to block indefinitely instead.
func (s *Sync[T]) Result(timeout ...time.Duration) (T, error) {
	if len(timeout) == 0 {
		return s.f.Result()
	}
	if !s.Wait(timeout[0]) {
		var zero T
		return zero, Timeout
	}
	return s.f.Result()
}

// Exception is Result's error-only counterpart: nil on success, the
// Cancelled value on cancellation, the stored exception on failure,
// InvalidState if Pending with no timeout given, Timeout if the deadline
// passed first.
func (s *Sync[T]) Exception(timeout ...time.Duration) error {
	if len(timeout) == 0 {
		exc, callErr := s.f.Exception()
		if callErr != nil {
			return callErr
		}
		return exc
	}
	if !s.Wait(timeout[0]) {
		return Timeout
	}
	exc, _ := s.f.Exception()
	return exc
}

// WaitContext blocks like Wait but also returns when ctx is done. It
// reports whether the future was terminal when it returned.
func (s *Sync[T]) WaitContext(ctx context.Context) bool {
	f := s.f
	f.mu.Lock()
	defer f.mu.Unlock()
	if state(f.state.Load()) != statePending {
		return true
	}
	stop := contextx.AfterFunc(ctx, func() {
		f.mu.Lock()
		f.cond.Broadcast()
		f.mu.Unlock()
	})
	defer stop()
	for state(f.state.Load()) == statePending {
		if ctx.Err() != nil {
			return false
		}
		f.cond.Wait()
	}
	return true
}

// ResultContext blocks until the future settles or ctx is done. A
// context deadline maps to Timeout and a context cancellation to
// Cancelled, keeping the error taxonomy uniform with the timed
// accessors.
func (s *Sync[T]) ResultContext(ctx context.Context) (T, error) {
	if !s.WaitContext(ctx) {
		var zero T
		if contextx.IsTimeout(ctx) {
			return zero, Timeout
		}
		return zero, Cancelled
	}
	return s.f.Result()
}

// ExceptionContext is ResultContext's error-only counterpart.
func (s *Sync[T]) ExceptionContext(ctx context.Context) error {
	if !s.WaitContext(ctx) {
		if contextx.IsTimeout(ctx) {
			return Timeout
		}
		return Cancelled
	}
	exc, _ := s.f.Exception()
	return exc
}

// Compatible reports whether other can be adopted directly by Convert:
// true for every non-nil *Future[T], since the synchronized variant shares the
// exact same underlying type and only adds blocking accessors on top.
func Compatible[T any](other *Future[T]) bool { return other != nil }

// Convert adapts any Future[T] (cooperative, event-loop-bound, or
// already-synchronized) into a Sync[T] view over it. Because all three
// variants in this package share one Future[T] implementation, Convert
// never needs a bridging callback: it is always a direct wrap.
func Convert[T any](other *Future[T]) *Sync[T] {
	return WrapSync(other)
}

// AdoptPoolFuture bridges a util/poolx.Future into this package by
// copying its terminal state across once it settles: completion becomes
// a result, failure an exception, and a pool-side cancellation a
// cancellation here. Cancelling the returned future cancels the pool
// future in turn. This is the adoption path for futures produced
// outside this package, e.g. by poolx.SubmitFunc.
func AdoptPoolFuture[T any](pf *poolx.Future[T]) *Future[T] {
	f := NewFuture[T]()
	f.AddDoneCallback(func(c *Future[T]) {
		if c.Cancelled() {
			pf.Cancel()
		}
	})
	go func() {
		<-pf.Done()
		if pf.IsCanceled() {
			f.Cancel()
			return
		}
		v, err := pf.Get()
		if err != nil {
			f.TrySetException(err)
			return
		}
		f.TrySetResult(v)
	}()
	return f
}
