// Package errorx 围绕标准库 errors 提供包装辅助和 Result 载体
//
//   - Wrap/Wrapf: 加上下文且保持 errors.Is/As 可穿透
//   - Result[T]: 把 (值, error) 对作为单个值传递
//
// 示例:
//
//	if err := do(); err != nil {
//	    return errorx.Wrap(err, "sync index")
//	}
//
//	r := errorx.FromError(parse(s))
//	v := r.UnwrapOr(defaultValue)
package errorx
