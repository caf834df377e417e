package future

import (
	"sync/atomic"

	"github.com/everyday-items/toolkit/util/logger"
)

// Config holds the construction-time settings for a Future/Promise: its
// default callback executor and where unhandled failures get reported.
// Mirrors util/poolx.Config's functional-options shape.
type Config struct {
	defaultExecutor    Executor
	unhandledErrorSink func(error)
}

// processConfig holds the process-wide overrides installed through
// SetDefaultExecutor/SetUnhandledErrorSink. Nil until the first
// override; defaultConfig falls back to the built-in defaults then.
var processConfig atomic.Pointer[Config]

// defaultConfig returns the process-wide defaults: inline callback
// dispatch and unhandled failures logged through
// util/logger.Default(), unless overridden via SetDefaultExecutor/
// SetUnhandledErrorSink.
func defaultConfig() Config {
	if c := processConfig.Load(); c != nil {
		return *c
	}
	return Config{
		defaultExecutor:    Inline,
		unhandledErrorSink: defaultUnhandledSink,
	}
}

// SetDefaultExecutor installs the process-wide default executor used by
// every future constructed afterwards without a WithExecutor override.
// Call it before creating the first future; already-constructed futures
// keep the executor they were built with.
func SetDefaultExecutor(e Executor) {
	cfg := defaultConfig()
	cfg.defaultExecutor = e
	processConfig.Store(&cfg)
}

// SetUnhandledErrorSink installs the process-wide sink that receives
// failures nobody ever observed. Passing nil disables reporting for
// futures constructed afterwards.
func SetUnhandledErrorSink(sink func(error)) {
	cfg := defaultConfig()
	cfg.unhandledErrorSink = sink
	processConfig.Store(&cfg)
}

// Option configures a Config in place, following poolx.Option's pattern.
type Option func(*Config)

func (o Option) apply(c *Config) { o(c) }

// WithExecutor overrides the executor used to dispatch this future's
// done-callbacks when none is specified per-callback.
func WithExecutor(e Executor) Option {
	return func(c *Config) { c.defaultExecutor = e }
}

// WithUnhandledErrorSink overrides where this future reports a failure
// that nobody ever observed. Passing nil disables reporting.
func WithUnhandledErrorSink(sink func(error)) Option {
	return func(c *Config) { c.unhandledErrorSink = sink }
}

func defaultUnhandledSink(err error) {
	logger.Default().Error("future: unhandled failure", "error", err)
}

func reportUnhandled(sink func(error), err error) {
	metricsUnhandledFailure()
	if sink == nil {
		return
	}
	sink(err)
}
