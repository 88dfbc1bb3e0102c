// Package rx is a push-based reactive stream library.
//
// A Signal is a lazy sequence of values ended by at most one error or
// completion. Subscribing runs the signal's producing logic for that
// subscriber; the Disposable it returns cancels it. Subjects bridge
// imperative code into signals, and connections share one subscription
// among many subscribers.
//
//	rx.Run(func() {
//		rx.Map(rx.FromSlice(1, 2, 3), strconv.Itoa).
//			SubscribeNext(func(s string) { fmt.Println(s) })
//	})
package rx

import (
	"github.com/AnatoleLucet/rx/internal"
)

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Run calls fn on the calling goroutine with the current-queue scheduler as
// its current scheduler, so that subscriptions made inside fn start
// synchronously instead of on the background scheduler. Work fn schedules
// on the current queue is drained before Run returns.
func Run(fn func()) {
	internal.CurrentQueue().Run(fn)
}

// Settings is the process-wide configuration, read from RX_* environment
// variables and the optional file named by RX_CONFIG.
type Settings = internal.Settings

// LoadSettings reads the settings afresh.
func LoadSettings() (Settings, error) {
	return internal.LoadSettings()
}

// DefaultSettings returns the settings read at first use.
func DefaultSettings() Settings {
	return internal.DefaultSettings()
}

// Logger is the structured logger used by schedulers and signals.
type Logger = internal.Logger

// NewLogger builds a logger honoring the level and format of s.
func NewLogger(s Settings) Logger {
	return internal.NewLogger(s)
}

var (
	// ErrTimeout is sent by Timeout when no event arrives in time.
	ErrTimeout = internal.ErrTimeout
	// ErrNoValue is returned by First when a signal completes empty.
	ErrNoValue = internal.ErrNoValue
	// ErrSchedulerStopped is reported when work reaches a stopped scheduler.
	ErrSchedulerStopped = internal.ErrSchedulerStopped
	// ErrUnsupported is the panic value of operations a scheduler cannot perform.
	ErrUnsupported = internal.ErrUnsupported
)

// CallbackError wraps a panic raised by a user callback. It is sent as the
// error event of the signal the callback belonged to.
type CallbackError = internal.CallbackError
