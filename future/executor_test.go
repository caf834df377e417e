package future

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/everyday-items/toolkit/util/poolx"
)

// ============================================================================
// Inline executor
// ============================================================================

func TestInlineExecutor_RunsAtSubmission(t *testing.T) {
	var ran bool
	Inline.Schedule(func() { ran = true })
	if !ran {
		t.Fatal("expected Inline.Schedule to run fn before returning")
	}
}

// ============================================================================
// Go executor
// ============================================================================

func TestGoExecutor_RunsOffCaller(t *testing.T) {
	done := make(chan struct{})
	Go.Schedule(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected Go.Schedule to eventually run fn")
	}
}

// ============================================================================
// PoolExecutor
// ============================================================================

func TestPoolExecutor_SchedulesThroughPool(t *testing.T) {
	pool := poolx.New("future-test", poolx.WithMaxWorkers(4))
	defer pool.Release()

	exec := NewPoolExecutor(pool)
	var count atomic.Int32
	done := make(chan struct{})

	exec.Schedule(func() {
		count.Add(1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("PoolExecutor.Schedule never ran fn")
	}
	if count.Load() != 1 {
		t.Fatalf("expected fn to run once, got %d", count.Load())
	}
	if exec.Pool() != pool {
		t.Fatal("expected Pool() to return the wrapped pool")
	}
}

func TestPoolExecutor_FutureDispatchedThroughPool(t *testing.T) {
	pool := poolx.New("future-test-2", poolx.WithMaxWorkers(2))
	defer pool.Release()

	exec := NewPoolExecutor(pool)
	f := NewFuture[int](WithExecutor(exec))
	done := make(chan int, 1)
	f.AddDoneCallback(func(src *Future[int]) {
		v, _ := src.Result()
		done <- v
	})
	f.SetResult(42)

	select {
	case v := <-done:
		if v != 42 {
			t.Fatalf("expected 42, got %d", v)
		}
	case <-time.After(time.Second):
		t.Fatal("callback dispatched via PoolExecutor never ran")
	}
}

// ============================================================================
// Loop (event-loop-bound variant)
// ============================================================================

func TestLoop_SchedulesOnItsOwnGoroutine(t *testing.T) {
	loop := NewLoop(8)
	defer loop.Close()

	f := NewLoopFuture[int](loop)
	done := make(chan int, 1)
	f.AddDoneCallback(func(src *Future[int]) {
		v, _ := src.Result()
		done <- v
	})
	f.SetResult(5)

	select {
	case v := <-done:
		if v != 5 {
			t.Fatalf("expected 5, got %d", v)
		}
	case <-time.After(time.Second):
		t.Fatal("loop-bound callback never ran")
	}
}

func TestLoop_PromiseWrapsSameLoop(t *testing.T) {
	loop := NewLoop(4)
	defer loop.Close()

	p := NewLoopPromise[string](loop)
	f := p.Future()
	if !SameLoop(f, f) {
		t.Fatal("expected a loop-bound future to be SameLoop with itself")
	}
}

func TestLoop_SameLoopFalseAcrossLoops(t *testing.T) {
	loopA := NewLoop(4)
	defer loopA.Close()
	loopB := NewLoop(4)
	defer loopB.Close()

	fa := NewLoopFuture[int](loopA)
	fb := NewLoopFuture[int](loopB)
	if SameLoop(fa, fb) {
		t.Fatal("expected futures bound to different loops not to be SameLoop")
	}
}

func TestLoop_PanicInTaskDoesNotKillLoop(t *testing.T) {
	loop := NewLoop(4)
	defer loop.Close()

	loop.CallSoonThreadsafe(func() { panic("boom") })

	done := make(chan struct{})
	loop.CallSoonThreadsafe(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected the loop to keep processing tasks after a panic")
	}
}

func TestLoop_CloseDrainsQueuedTasks(t *testing.T) {
	loop := NewLoop(4)
	var ran atomic.Bool
	loop.CallSoonThreadsafe(func() { ran.Store(true) })
	loop.Close()
	time.Sleep(50 * time.Millisecond)
	if !ran.Load() {
		t.Fatal("expected Close to drain already-queued tasks before stopping")
	}
}

// ============================================================================
// BoundedExecutor
// ============================================================================

func TestBoundedExecutor_RunsEveryCallback(t *testing.T) {
	exec := NewBoundedExecutor(2)
	const n = 20
	var count atomic.Int32
	done := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		exec.Schedule(func() {
			count.Add(1)
			done <- struct{}{}
		})
	}
	for i := 0; i < n; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("only %d of %d callbacks ran", count.Load(), n)
		}
	}
}

func TestBoundedExecutor_LimitsConcurrency(t *testing.T) {
	exec := NewBoundedExecutor(2)
	var inFlight, peak atomic.Int32
	release := make(chan struct{})
	done := make(chan struct{}, 6)
	for i := 0; i < 6; i++ {
		exec.Schedule(func() {
			cur := inFlight.Add(1)
			for {
				p := peak.Load()
				if cur <= p || peak.CompareAndSwap(p, cur) {
					break
				}
			}
			<-release
			inFlight.Add(-1)
			done <- struct{}{}
		})
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	for i := 0; i < 6; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("bounded callbacks never drained")
		}
	}
	if peak.Load() > 2 {
		t.Fatalf("expected at most 2 callbacks in flight, saw %d", peak.Load())
	}
}

// ============================================================================
// Submit: pool submission returning a library future
// ============================================================================

func TestSubmit_ReturnsResultFuture(t *testing.T) {
	pool := poolx.New("future-submit", poolx.WithMaxWorkers(2))
	defer pool.Release()

	exec := NewPoolExecutor(pool)
	f := Submit(exec, func() (int, error) { return 21 * 2, nil })
	v, err := Convert(f).Result(time.Second)
	if err != nil || v != 42 {
		t.Fatalf("got (%d, %v)", v, err)
	}
}

func TestSubmit_FnErrorBecomesFailure(t *testing.T) {
	pool := poolx.New("future-submit-err", poolx.WithMaxWorkers(2))
	defer pool.Release()

	exec := NewPoolExecutor(pool)
	wantErr := errNewTest("boom")
	f := Submit(exec, func() (int, error) { return 0, wantErr })
	_, err := Convert(f).Result(time.Second)
	if err != wantErr {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}
