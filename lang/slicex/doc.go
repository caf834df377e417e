// Package slicex 补充标准库缺少的切片聚合操作
//
//   - Reduce: 从左到右折叠为单个值
//   - Some/Every: 存在性/全称检查
//   - Count: 条件计数
//   - GroupBy: 按键分组
//
// 示例:
//
//	total := slicex.Reduce(nums, 0, func(acc, n int) int { return acc + n })
//	byCity := slicex.GroupBy(users, func(u User) string { return u.City })
//
// 所有函数都不修改入参切片，也不做并发保护。
package slicex
