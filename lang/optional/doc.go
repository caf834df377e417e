// Package optional 提供泛型 Option 类型，显式表达"可能没有值"
//
// 示例:
//
//	o := optional.Some(42)
//	v := o.UnwrapOr(0)
//
//	if p := optional.FromPtr(ptr); p.IsSome() { ... }
package optional
