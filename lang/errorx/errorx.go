package errorx

import (
	"errors"
	"fmt"
)

// New 构造一个纯文本 error
func New(msg string) error {
	return errors.New(msg)
}

// Newf 构造一个带格式化内容的 error
func Newf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Wrap 在 cause 外再包一层上下文；cause 为 nil 时直接返回 nil
func Wrap(cause error, msg string) error {
	if cause == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, cause)
}

// Wrapf 是 Wrap 的格式化版本
func Wrapf(cause error, format string, args ...any) error {
	if cause == nil {
		return nil
	}
	return fmt.Errorf(fmt.Sprintf(format, args...)+": %w", cause)
}

// Is 报告 err 的包装链上是否出现 target
func Is(err, target error) bool { return errors.Is(err, target) }

// As 在 err 的包装链上寻找类型为 T 的错误
func As[T error](err error) (T, bool) {
	var t T
	if errors.As(err, &t) {
		return t, true
	}
	return t, false
}

// Unwrap 剥掉最外一层包装
func Unwrap(err error) error { return errors.Unwrap(err) }

// Result 持有一次操作的值或错误，两者只会有其一
type Result[T any] struct {
	err error
	val T
}

// Ok 构造成功的 Result
func Ok[T any](val T) Result[T] {
	return Result[T]{val: val}
}

// Err 构造失败的 Result
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// FromError 把 (值, error) 返回值对折叠成 Result
func FromError[T any](val T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(val)
}

// IsOk 报告是否持有值
func (r Result[T]) IsOk() bool { return r.err == nil }

// IsErr 报告是否持有错误
func (r Result[T]) IsErr() bool { return r.err != nil }

// Value 返回持有的值；失败的 Result 返回零值
func (r Result[T]) Value() T { return r.val }

// Error 返回持有的错误；成功的 Result 返回 nil
func (r Result[T]) Error() error { return r.err }

// Unwrap 同时取出值和错误
func (r Result[T]) Unwrap() (T, error) { return r.val, r.err }

// UnwrapOr 失败时用 fallback 顶替
func (r Result[T]) UnwrapOr(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.val
}

// Must 失败时 panic，只用于确定不会失败的场合
func (r Result[T]) Must() T {
	if r.err != nil {
		panic(r.err)
	}
	return r.val
}
