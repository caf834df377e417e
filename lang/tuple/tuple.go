package tuple

// Tuple2 把两个不同类型的值组合成一个值
type Tuple2[A, B any] struct {
	First  A
	Second B
}

// T2 构造 Tuple2
func T2[A, B any](first A, second B) Tuple2[A, B] {
	return Tuple2[A, B]{first, second}
}

// Unpack 拆回两个返回值
func (t Tuple2[A, B]) Unpack() (A, B) {
	return t.First, t.Second
}

// Swap 返回元素顺序对调后的新元组
func (t Tuple2[A, B]) Swap() Tuple2[B, A] {
	return T2(t.Second, t.First)
}

// Tuple3 把三个不同类型的值组合成一个值
type Tuple3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// T3 构造 Tuple3
func T3[A, B, C any](first A, second B, third C) Tuple3[A, B, C] {
	return Tuple3[A, B, C]{first, second, third}
}

// Unpack 拆回三个返回值
func (t Tuple3[A, B, C]) Unpack() (A, B, C) {
	return t.First, t.Second, t.Third
}
