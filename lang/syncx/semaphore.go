package syncx

import "context"

// Semaphore 信号量，限制并发访问数量，基于缓冲 channel 实现
type Semaphore struct {
	slots chan struct{}
}

// NewSemaphore 创建最大并发数为 n 的信号量，n 小于 1 时按 1 处理
func NewSemaphore(n int) *Semaphore {
	if n < 1 {
		n = 1
	}
	return &Semaphore{slots: make(chan struct{}, n)}
}

// Acquire 获取一个槽位，满时阻塞
func (s *Semaphore) Acquire() {
	s.slots <- struct{}{}
}

// TryAcquire 非阻塞获取，满时返回 false
func (s *Semaphore) TryAcquire() bool {
	select {
	case s.slots <- struct{}{}:
		return true
	default:
		return false
	}
}

// AcquireContext 获取槽位，ctx 结束时放弃并返回其错误
func (s *Semaphore) AcquireContext(ctx context.Context) error {
	select {
	case s.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release 释放一个槽位；没有持有槽位时调用会 panic
func (s *Semaphore) Release() {
	select {
	case <-s.slots:
	default:
		panic("syncx: release of an unacquired semaphore slot")
	}
}

// Capacity 返回最大并发数
func (s *Semaphore) Capacity() int { return cap(s.slots) }

// Available 返回当前可用槽位数
func (s *Semaphore) Available() int { return cap(s.slots) - len(s.slots) }

// Held 返回当前被持有的槽位数
func (s *Semaphore) Held() int { return len(s.slots) }
