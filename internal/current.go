//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// goroutine id -> Scheduler running the goroutine's current block
var currentSchedulers sync.Map

// Current returns the scheduler whose block is running on the calling
// goroutine, or nil when the goroutine is not tracked by any scheduler.
func Current() Scheduler {
	if s, ok := currentSchedulers.Load(goid.Get()); ok {
		return s.(Scheduler)
	}

	return nil
}

// withCurrent runs fn with s installed as the current scheduler of the calling goroutine.
func withCurrent(s Scheduler, fn func()) {
	gid := goid.Get()

	prev, hadPrev := currentSchedulers.Load(gid)
	currentSchedulers.Store(gid, s)
	defer func() {
		if hadPrev {
			currentSchedulers.Store(gid, prev)
		} else {
			currentSchedulers.Delete(gid)
		}
	}()

	fn()
}

func goroutineID() int64 {
	return goid.Get()
}
