package internal

import (
	"sync"
	"sync/atomic"
)

// recursiveMutex may be locked again by the goroutine already holding it.
// Subscribers use it so an event handler can send to or dispose its own
// subscription without deadlocking.
type recursiveMutex struct {
	mu    sync.Mutex
	owner atomic.Int64
	depth int
}

func (m *recursiveMutex) Lock() {
	gid := goroutineID()
	if m.owner.Load() == gid {
		m.depth++
		return
	}

	m.mu.Lock()
	m.owner.Store(gid)
	m.depth = 1
}

func (m *recursiveMutex) Unlock() {
	m.depth--
	if m.depth == 0 {
		m.owner.Store(0)
		m.mu.Unlock()
	}
}
