package poolx

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsEveryTask(t *testing.T) {
	p := New("test", WithMaxWorkers(4))
	defer p.Release()

	const n = 100
	var count atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		if err := p.Submit(func() {
			count.Add(1)
			wg.Done()
		}); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	wg.Wait()
	if count.Load() != n {
		t.Fatalf("expected %d tasks to run, got %d", n, count.Load())
	}
}

func TestPoolReleaseDrainsQueuedTasks(t *testing.T) {
	p := New("test", WithMaxWorkers(1), WithQueueSize(16))
	var count atomic.Int32
	for i := 0; i < 8; i++ {
		if err := p.Submit(func() {
			time.Sleep(time.Millisecond)
			count.Add(1)
		}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	p.Release()
	if count.Load() != 8 {
		t.Fatalf("expected Release to wait for all 8 tasks, got %d", count.Load())
	}
}

func TestPoolSubmitAfterReleaseFails(t *testing.T) {
	p := New("test", WithMaxWorkers(1))
	p.Release()
	if err := p.Submit(func() {}); err != ErrPoolClosed {
		t.Fatalf("expected ErrPoolClosed, got %v", err)
	}
	if p.TrySubmit(func() {}) {
		t.Fatal("expected TrySubmit on a released pool to fail")
	}
	p.Release() // second Release must be a no-op
}

func TestPoolTrySubmitFullQueue(t *testing.T) {
	p := New("test", WithMaxWorkers(1), WithQueueSize(1))
	defer p.Release()

	block := make(chan struct{})
	_ = p.Submit(func() { <-block }) // occupies the worker
	_ = p.Submit(func() {})          // fills the backlog

	if p.TrySubmit(func() {}) {
		t.Fatal("expected TrySubmit to fail with a full backlog")
	}
	close(block)
}

func TestPoolPanicHandler(t *testing.T) {
	var recovered atomic.Value
	done := make(chan struct{})
	p := New("test", WithMaxWorkers(1), WithPanicHandler(func(r any) {
		recovered.Store(r)
		close(done)
	}))
	defer p.Release()

	_ = p.Submit(func() { panic("boom") })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("panic handler never ran")
	}
	if recovered.Load() != "boom" {
		t.Fatalf("expected recovered value boom, got %v", recovered.Load())
	}

	// The worker must survive the panic.
	ok := make(chan struct{})
	_ = p.Submit(func() { close(ok) })
	select {
	case <-ok:
	case <-time.After(time.Second):
		t.Fatal("worker died after a task panic")
	}
}

func TestPoolDefaults(t *testing.T) {
	p := New("test")
	defer p.Release()
	if p.Cap() < 1 {
		t.Fatalf("expected at least one worker, got %d", p.Cap())
	}
	if p.Name() != "test" {
		t.Fatalf("unexpected name %q", p.Name())
	}
}

func TestFutureComplete(t *testing.T) {
	f := NewFuture[int]()
	if f.IsDone() {
		t.Fatal("expected a fresh future to be pending")
	}
	f.Complete(42)
	v, err := f.Get()
	if err != nil || v != 42 {
		t.Fatalf("got (%d, %v)", v, err)
	}
	if !f.IsCompleted() || f.State().String() != "Completed" {
		t.Fatalf("unexpected state %v", f.State())
	}
}

func TestFutureFail(t *testing.T) {
	f := NewFuture[int]()
	wantErr := ErrPoolClosed // any sentinel works as a stand-in
	f.Fail(wantErr)
	_, err := f.Get()
	if err != wantErr || !f.IsFailed() {
		t.Fatalf("got err=%v state=%v", err, f.State())
	}
}

func TestFutureCancel(t *testing.T) {
	f := NewFuture[int]()
	f.Cancel()
	_, err := f.Get()
	if err != ErrFutureCanceled || !f.IsCanceled() {
		t.Fatalf("got err=%v state=%v", err, f.State())
	}
	f.Complete(1) // settled futures ignore later writes
	if !f.IsCanceled() {
		t.Fatal("expected Complete after Cancel to be ignored")
	}
}

func TestFutureGetWithTimeout(t *testing.T) {
	f := NewFuture[int]()
	if _, err := f.GetWithTimeout(20 * time.Millisecond); err != ErrFutureTimeout {
		t.Fatalf("expected ErrFutureTimeout, got %v", err)
	}
	f.Complete(5)
	v, err := f.GetWithTimeout(time.Second)
	if err != nil || v != 5 {
		t.Fatalf("got (%d, %v)", v, err)
	}
}

func TestFutureDoneChannel(t *testing.T) {
	f := NewFuture[string]()
	select {
	case <-f.Done():
		t.Fatal("expected Done channel to stay open while pending")
	default:
	}
	f.Complete("x")
	select {
	case <-f.Done():
	case <-time.After(time.Second):
		t.Fatal("Done channel never closed")
	}
}

func TestPromiseSplit(t *testing.T) {
	pr, f := NewPromise[int]()
	if pr.Future() != f {
		t.Fatal("expected Promise and Future to share state")
	}
	pr.Complete(9)
	v, err := f.Get()
	if err != nil || v != 9 {
		t.Fatalf("got (%d, %v)", v, err)
	}
}

func TestSubmitFunc(t *testing.T) {
	p := New("test", WithMaxWorkers(2))
	defer p.Release()

	f := SubmitFunc(p, func() (int, error) { return 21 * 2, nil })
	v, err := f.Get()
	if err != nil || v != 42 {
		t.Fatalf("got (%d, %v)", v, err)
	}
}

func TestSubmitFuncOnReleasedPool(t *testing.T) {
	p := New("test", WithMaxWorkers(1))
	p.Release()
	f := SubmitFunc(p, func() (int, error) { return 1, nil })
	if _, err := f.Get(); err != ErrPoolClosed {
		t.Fatalf("expected ErrPoolClosed, got %v", err)
	}
}
