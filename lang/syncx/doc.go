// Package syncx 补充标准库 sync 缺少的并发原语
//
// 当前提供 Semaphore：基于缓冲 channel 的计数信号量，
// 用于给回调分发、下游调用等场景限定并发上限。
//
// 示例:
//
//	sem := syncx.NewSemaphore(8)
//	sem.Acquire()
//	defer sem.Release()
package syncx
