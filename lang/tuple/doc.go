// Package tuple 提供二元组和三元组，用于把多个返回值当作一个值传递
//
// 示例:
//
//	pair := tuple.T2("port", 8080)
//	key, val := pair.Unpack()
package tuple
