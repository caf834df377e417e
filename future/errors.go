package future

import (
	"errors"
	"fmt"

	"github.com/everyday-items/toolkit/lang/errorx"
)

// Cancelled is returned by Result when the future (or the stream
// read that produced the future) was cancelled instead of completed.
var Cancelled = errorx.New("future: cancelled")

// Timeout is returned by the synchronized variant's Wait/Result/Exception
// when the deadline expires before the future becomes terminal. The
// future itself is left untouched.
var Timeout = errorx.New("future: timeout")

// InvalidState signals a programmer error: setting a result twice, or
// reading a blocking accessor without a timeout while still pending.
var InvalidState = errorx.New("future: invalid state")

// StreamEnded is the termination reason carried by the future returned
// from Stream.Next once the stream has ended normally.
var StreamEnded = errorx.New("future: stream ended")

// IsCancelled reports whether err is (or wraps) Cancelled.
func IsCancelled(err error) bool { return errors.Is(err, Cancelled) }

// IsTimeout reports whether err is (or wraps) Timeout.
func IsTimeout(err error) bool { return errors.Is(err, Timeout) }

// IsInvalidState reports whether err is (or wraps) InvalidState.
func IsInvalidState(err error) bool { return errors.Is(err, InvalidState) }

// IsStreamEnded reports whether err is (or wraps) StreamEnded.
func IsStreamEnded(err error) bool { return errors.Is(err, StreamEnded) }

// invalidStateErrorf wraps InvalidState with extra context, preserving
// errors.Is(err, InvalidState).
func invalidStateErrorf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), InvalidState)
}
