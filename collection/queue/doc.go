// Package queue provides a generic FIFO queue.
//
// The ring-buffer implementation keeps Dequeue O(1) without leaking
// the backing array.
//
// Basic usage:
//
//	q := queue.New[int]()
//	q.Enqueue(1)
//	q.Enqueue(2)
//	v, ok := q.Dequeue()  // v=1, ok=true
package queue
