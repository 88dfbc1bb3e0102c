//go:build wasm

package internal

// wasm runs a single thread, so one slot is enough.
var currentScheduler Scheduler

func Current() Scheduler {
	return currentScheduler
}

func withCurrent(s Scheduler, fn func()) {
	prev := currentScheduler
	currentScheduler = s
	defer func() { currentScheduler = prev }()

	fn()
}

func goroutineID() int64 {
	return 1
}
