// Package future provides promise/future concurrency primitives.
//
// Three layered variants share one state machine: a cooperative,
// single-threaded core (Future[T]/Promise[T]); a synchronized variant
// that adds mutex-guarded blocking waits (Sync[T]); and an event-loop-bound
// variant whose default executor is a single Loop. An observable
// stream (Stream[T]) reuses the same state, callback, and cancellation
// machinery to model a lazy sequence of values terminated by end or error.
//
// Basic usage:
//
//	p := future.NewPromise[int]()
//	p.SetResult(42)
//	v, err := p.Future().Result() // never blocks; InvalidState while pending
//
// Chaining:
//
//	doubled := future.Map(p.Future(), func(v int) (int, error) {
//	    return v * 2, nil
//	}, nil)
//
// Synchronized variant with a timed wait:
//
//	sp := future.NewSyncPromise[string]()
//	go sp.Future().SetResult("done")
//	v, err := future.Convert(sp.Future()).Result(5 * time.Second)
//
// Observable stream:
//
//	s := future.NewStream[int]()
//	go func() {
//	    for i := 0; i < 5; i++ {
//	        s.SetNextValue(i)
//	    }
//	    s.SetEnd()
//	}()
//	err := s.Range(func(v int) bool {
//	    fmt.Println(v)
//	    return true
//	})
package future
