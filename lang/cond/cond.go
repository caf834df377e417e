package cond

// If 是三元表达式的替代：cond 为真返回 a，否则返回 b
//
// 两个参数在调用前都已求值；需要惰性求值时用 IfFunc
func If[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}

// IfFunc 是 If 的惰性版本，只执行命中的那个分支
func IfFunc[T any](cond bool, a, b func() T) T {
	if cond {
		return a()
	}
	return b()
}

// IfZero 在 v 为零值时返回 fallback，否则原样返回 v
func IfZero[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}

// Coalesce 按顺序返回第一个非零值；没有非零值时返回零值
func Coalesce[T comparable](vs ...T) T {
	var zero T
	for _, v := range vs {
		if v != zero {
			return v
		}
	}
	return zero
}
