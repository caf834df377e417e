package slicex

// Reduce 从 initial 开始，从左到右用 fn 聚合切片元素
func Reduce[T any, R any](slice []T, initial R, fn func(R, T) R) R {
	acc := initial
	for _, it := range slice {
		acc = fn(acc, it)
	}
	return acc
}

// Some 是否至少有一个元素满足条件；空切片返回 false
func Some[T any](slice []T, fn func(T) bool) bool {
	for _, it := range slice {
		if fn(it) {
			return true
		}
	}
	return false
}

// Every 是否所有元素都满足条件；空切片返回 true
func Every[T any](slice []T, fn func(T) bool) bool {
	for _, it := range slice {
		if !fn(it) {
			return false
		}
	}
	return true
}

// Count 统计满足条件的元素数量
func Count[T any](slice []T, fn func(T) bool) int {
	n := 0
	for _, it := range slice {
		if fn(it) {
			n++
		}
	}
	return n
}

// GroupBy 按 keyFn 的返回值把元素分组
func GroupBy[T any, K comparable](slice []T, keyFn func(T) K) map[K][]T {
	groups := make(map[K][]T)
	for _, it := range slice {
		k := keyFn(it)
		groups[k] = append(groups[k], it)
	}
	return groups
}
