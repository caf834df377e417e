package poolx

import "errors"

var (
	// ErrPoolClosed is returned by Submit once Release has been called.
	ErrPoolClosed = errors.New("poolx: pool is closed")

	// ErrFutureCanceled is the error a canceled Future reports from Get.
	ErrFutureCanceled = errors.New("poolx: future canceled")

	// ErrFutureTimeout is returned by GetWithTimeout when the deadline
	// expires before the future settles.
	ErrFutureTimeout = errors.New("poolx: future timed out")
)
