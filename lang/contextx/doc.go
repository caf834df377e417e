// Package contextx 提供 context 的工具函数
//
// 主要功能:
//   - AfterFunc: ctx 结束后回调
//   - IsTimeout/IsCanceled/IsDone: 结束原因判定
//   - RunTimeout: 带超时地运行函数
package contextx
