package future

import (
	"sync"

	"github.com/everyday-items/toolkit/collection/queue"
	"github.com/google/uuid"
)

// streamState mirrors Future's state enum but for the stream as a whole:
// Active accepts more values, Ended/Cancelled are terminal and every
// further Next() resolves immediately.
type streamState int32

const (
	streamActive streamState = iota
	streamEnded
	streamCancelled
)

// ObserveCallback is invoked once per value or terminal event delivered
// to a Stream, receiving the stream and the future that was just
// completed for that event (success for a value, StreamEnded or the
// cancellation/failure error otherwise).
type ObserveCallback[T any] func(s *Stream[T], event *Future[T])

// Stream is a lazily-pulled, push-fed sequence of values: producers call
// SetNextValue/SetEnd/SetException/Cancel, consumers call Next to get a
// future for the next value and either await it directly or register a
// done-callback. Two FIFOs absorb the speed mismatch between the two
// sides: pending holds Next() futures issued ahead of production, ready
// holds already-fulfilled futures produced ahead of consumption. At most
// one of the two is non-empty at any time.
type Stream[T any] struct {
	id uuid.UUID

	mu      sync.Mutex
	state   streamState
	termErr error // StreamEnded or the SetException error once terminal
	pending *queue.Queue[*Future[T]]
	ready   *queue.Queue[*Future[T]]

	observers   []observerEntry[T]
	observerSeq uint64

	defaultExecutor Executor
}

// ObserverHandle identifies a registered observe callback so it can
// later be removed with RemoveObserveCallback.
type ObserverHandle uint64

type observerEntry[T any] struct {
	handle ObserverHandle
	fn     ObserveCallback[T]
}

// NewStream creates an active, empty stream.
func NewStream[T any](opts ...Option) *Stream[T] {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(&cfg)
	}
	return &Stream[T]{
		id:              uuid.New(),
		pending:         queue.NewWithCapacity[*Future[T]](8),
		ready:           queue.NewWithCapacity[*Future[T]](8),
		defaultExecutor: cfg.defaultExecutor,
	}
}

// ID is the stream's identity, for correlation in logs and metrics.
func (s *Stream[T]) ID() uuid.UUID { return s.id }

// Next returns a future for the stream's next event: a value on
// success, StreamEnded once the stream has ended, Cancelled if the
// stream was cancelled, or whatever error SetException delivered. Each
// call to Next consumes exactly one future event; calling it ahead of
// production queues the future until a producer catches up. Values the
// producer delivered ahead of consumption are drained first, even after
// the stream has ended, so a consumer that starts late still sees every
// value before the termination.
func (s *Stream[T]) Next() *Future[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.ready.Dequeue(); ok {
		return f
	}
	f := NewFuture[T](WithExecutor(s.defaultExecutor))
	switch s.state {
	case streamEnded:
		f.TrySetException(s.termErr)
	case streamCancelled:
		f.Cancel()
	default:
		s.pending.Enqueue(f)
	}
	return f
}

// AddObserveCallback registers fn to run for every value or terminal
// event the stream delivers from here on, in addition to (not instead
// of) whatever futures Next() handed out.
func (s *Stream[T]) AddObserveCallback(fn ObserveCallback[T]) ObserverHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observerSeq++
	handle := ObserverHandle(s.observerSeq)
	s.observers = append(s.observers, observerEntry[T]{handle: handle, fn: fn})
	return handle
}

// RemoveObserveCallback drops the callback registered under handle.
// Returns 1 if a callback was removed, 0 otherwise.
func (s *Stream[T]) RemoveObserveCallback(handle ObserverHandle) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o.handle == handle {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return 1
		}
	}
	return 0
}

// SetNextValue delivers value to the oldest pending Next() future, or
// buffers an already-fulfilled future if nobody is waiting yet. It
// panics if the stream has ended; use TrySetNextValue for the
// non-panicking form.
func (s *Stream[T]) SetNextValue(value T) {
	if !s.TrySetNextValue(value) {
		panic("future: SetNextValue called on a stream that already ended")
	}
}

// TrySetNextValue is the non-panicking form of SetNextValue. It reports
// false once the stream has ended; on a cancelled stream the value is
// absorbed and true is returned, the same way TrySetResult is absorbed
// by an already-cancelled future, so production can race cancellation
// without the producer caring.
func (s *Stream[T]) TrySetNextValue(value T) bool {
	s.mu.Lock()
	switch s.state {
	case streamEnded:
		s.mu.Unlock()
		return false
	case streamCancelled:
		s.mu.Unlock()
		return true
	}

	f, ok := s.pending.Dequeue()
	if ok {
		s.mu.Unlock()
		f.TrySetResult(value)
	} else {
		f = NewFuture[T](WithExecutor(s.defaultExecutor))
		f.TrySetResult(value)
		s.ready.Enqueue(f)
		s.mu.Unlock()
	}
	s.runObservers(f)
	return true
}

// SetEnd terminates the stream normally: every still-pending Next()
// future fails with StreamEnded, and the stream itself transitions to
// Ended so future Next() calls resolve immediately (after draining any
// buffered values). Calling SetEnd more than once is a no-op.
func (s *Stream[T]) SetEnd() {
	s.finish(StreamEnded)
}

// SetException terminates the stream with a non-StreamEnded error,
// failing every still-pending Next() future with err.
func (s *Stream[T]) SetException(err error) {
	if err == nil {
		panic("future: SetException called with nil error")
	}
	s.finish(err)
}

// Cancel terminates the stream by cancelling every still-pending Next()
// future and any future Next() call. Values buffered ahead of
// consumption are discarded: cancellation is abortive, unlike SetEnd.
// Returns false if the stream already ended or was already cancelled.
func (s *Stream[T]) Cancel() bool {
	s.mu.Lock()
	if s.state != streamActive {
		s.mu.Unlock()
		return false
	}
	s.state = streamCancelled
	s.termErr = Cancelled
	pending := s.drainPendingLocked()
	s.ready.Clear()
	s.mu.Unlock()

	for _, p := range pending {
		p.Cancel()
	}
	var sentinel *Future[T]
	if len(pending) > 0 {
		sentinel = pending[0]
	} else {
		sentinel = NewFuture[T](WithExecutor(s.defaultExecutor))
		sentinel.Cancel()
	}
	s.runObservers(sentinel)
	return true
}

func (s *Stream[T]) finish(err error) {
	s.mu.Lock()
	if s.state != streamActive {
		s.mu.Unlock()
		return
	}
	s.state = streamEnded
	s.termErr = err
	pending := s.drainPendingLocked()
	observed := len(s.observers) > 0
	s.mu.Unlock()

	var sentinel *Future[T]
	if len(pending) > 0 {
		sentinel = pending[0]
		for _, p := range pending {
			p.TrySetException(err)
		}
	} else {
		sentinel = NewFuture[T](WithExecutor(s.defaultExecutor))
		sentinel.TrySetException(err)
		if observed || IsStreamEnded(err) {
			// A normal end, or an exception somebody is subscribed to,
			// is not an unhandled failure.
			_, _ = sentinel.Exception()
		}
	}
	s.runObservers(sentinel)
}

func (s *Stream[T]) drainPendingLocked() []*Future[T] {
	all := s.pending.ToSlice()
	s.pending.Clear()
	return all
}

func (s *Stream[T]) runObservers(event *Future[T]) {
	s.mu.Lock()
	observers := make([]observerEntry[T], len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, obs := range observers {
		obs := obs
		s.defaultExecutor.Schedule(func() {
			obs.fn(s, event)
		})
	}
}

// Range pulls values from the stream until it ends, cancels, or fails,
// calling fn for each value. The pull blocks the calling goroutine the
// way the synchronized variant's Wait does, so Range works against a
// producer running on another goroutine. It returns nil once the stream
// ends normally, the stream's error if it failed, or Cancelled if it
// was cancelled. fn returning false stops iteration early without
// consuming the rest of the stream.
func (s *Stream[T]) Range(fn func(T) bool) error {
	for {
		f := s.Next()
		WrapSync(f).Wait()
		v, err := f.Result()
		if err != nil {
			if IsStreamEnded(err) {
				return nil
			}
			return err
		}
		if !fn(v) {
			return nil
		}
	}
}
