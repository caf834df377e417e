// Package poolx provides a fixed-size worker pool and a typed Future
// for retrieving task results.
//
// Basic usage:
//
//	p := poolx.New("workers", poolx.WithMaxWorkers(4))
//	defer p.Release()
//
//	_ = p.Submit(func() { doWork() })
//
// Result-bearing tasks:
//
//	f := poolx.SubmitFunc(p, func() (int, error) {
//	    return compute(), nil
//	})
//	v, err := f.Get()
package poolx
