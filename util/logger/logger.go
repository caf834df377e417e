package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Logger 是 log/slog 的薄封装，支持运行时调整级别和附加固定字段
type Logger struct {
	slog  *slog.Logger
	level *slog.LevelVar
}

// New 创建输出到 stderr 的文本格式 Logger
func New() *Logger {
	level := &slog.LevelVar{}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{slog: slog.New(handler), level: level}
}

// NewWithHandler 用自定义 slog.Handler 创建 Logger
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{slog: slog.New(h), level: &slog.LevelVar{}}
}

var defaultLogger atomic.Pointer[Logger]

// Default 返回进程默认 Logger，首次调用时惰性创建
func Default() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := New()
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	return defaultLogger.Load()
}

// SetDefault 替换进程默认 Logger
func SetDefault(l *Logger) {
	defaultLogger.Store(l)
}

// SetLevel 按名称调整级别: debug/info/warn/error
func (l *Logger) SetLevel(name string) {
	l.level.Set(parseLevel(name))
}

func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With 返回附加了固定键值对的派生 Logger
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...), level: l.level}
}

// Debug 输出 debug 级别日志
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// Info 输出 info 级别日志
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// Warn 输出 warn 级别日志
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// Error 输出 error 级别日志
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// ErrorContext 带 context 输出 error 级别日志
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.slog.ErrorContext(ctx, msg, args...)
}
