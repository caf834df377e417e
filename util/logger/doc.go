// Package logger 提供基于 log/slog 的轻量日志封装
//
// 进程默认 Logger 惰性创建并输出到 stderr，可用 SetDefault 替换，
// 也可用 NewWithHandler 接入任意 slog.Handler 后端。
//
// 示例:
//
//	logger.Default().Error("task failed", "error", err)
//
//	l := logger.Default().With("component", "worker")
//	l.Info("started")
package logger
