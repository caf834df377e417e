// Package cond 用少量泛型函数代替重复的 if/else 选择逻辑
//
//   - If/IfFunc: 三元选择（及其惰性版本）
//   - IfZero: 零值兜底
//   - Coalesce: 取第一个非零值
//
// 示例:
//
//	label := cond.If(n > 0, "positive", "non-positive")
//	host := cond.Coalesce(cfg.Host, envHost, "localhost")
package cond
