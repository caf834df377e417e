package contextx

import (
	"context"
	"errors"
	"time"
)

// AfterFunc 在 ctx 结束后调用 fn，返回取消注册的函数
//
// 对 context.AfterFunc 的薄封装，方便和本包的判定函数一起使用
func AfterFunc(ctx context.Context, fn func()) func() bool {
	return context.AfterFunc(ctx, fn)
}

// IsDone ctx 是否已经结束
func IsDone(ctx context.Context) bool {
	return ctx.Err() != nil
}

// IsTimeout ctx 是否因超过 deadline 而结束
func IsTimeout(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.DeadlineExceeded)
}

// IsCanceled ctx 是否被主动取消
func IsCanceled(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.Canceled)
}

// Remaining 返回距离 deadline 的剩余时间，没有 deadline 时返回 0
func Remaining(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	return time.Until(deadline)
}

// RunTimeout 在超时限制内运行 fn，超时返回 context.DeadlineExceeded
func RunTimeout(timeout time.Duration, fn func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
