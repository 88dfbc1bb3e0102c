package internal

import (
	"slices"
	"sync"
	"time"
)

// TestScheduler runs blocks against a virtual clock, only when told to.
// Blocks due at the same date run in submission order.
type TestScheduler struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	queue []*virtualEntry
}

type virtualEntry struct {
	date     time.Time
	seq      uint64
	interval time.Duration
	block    func()
	cancel   *ActionDisposable
}

func NewTestScheduler() *TestScheduler {
	return &TestScheduler{
		now: time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *TestScheduler) Name() string { return "test" }

func (s *TestScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *TestScheduler) Schedule(block func()) Disposable {
	return s.insert(s.Now(), 0, block)
}

func (s *TestScheduler) After(date time.Time, block func()) Disposable {
	return s.insert(date, 0, block)
}

func (s *TestScheduler) AfterRepeating(date time.Time, interval, _ time.Duration, block func()) Disposable {
	return s.insert(date, interval, block)
}

// Pending is the number of blocks waiting to run.
func (s *TestScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Step runs the next n blocks in date order.
func (s *TestScheduler) Step(n int) {
	for range n {
		if !s.runNext(time.Time{}, false) {
			return
		}
	}
}

// StepAll runs blocks until none are left. Repeating blocks never leave the
// queue, use Advance with them.
func (s *TestScheduler) StepAll() {
	for s.runNext(time.Time{}, false) {
	}
}

// Advance moves the clock forward by d, running every block due on the way.
func (s *TestScheduler) Advance(d time.Duration) {
	until := s.Now().Add(d)
	for s.runNext(until, true) {
	}

	s.mu.Lock()
	if s.now.Before(until) {
		s.now = until
	}
	s.mu.Unlock()
}

func (s *TestScheduler) insert(date time.Time, interval time.Duration, block func()) Disposable {
	entry := &virtualEntry{
		date:     date,
		interval: interval,
		block:    block,
		cancel:   NewDisposable(nil),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry.seq = s.seq
	s.seq++
	s.push(entry)

	return entry.cancel
}

// push keeps the queue ordered by (date, seq). Callers hold mu.
func (s *TestScheduler) push(entry *virtualEntry) {
	i, _ := slices.BinarySearchFunc(s.queue, entry, func(a, b *virtualEntry) int {
		if c := a.date.Compare(b.date); c != 0 {
			return c
		}
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
	s.queue = slices.Insert(s.queue, i, entry)
}

func (s *TestScheduler) runNext(until time.Time, bounded bool) bool {
	s.mu.Lock()
	for len(s.queue) > 0 && s.queue[0].cancel.IsDisposed() {
		s.queue = s.queue[1:]
	}
	if len(s.queue) == 0 || (bounded && s.queue[0].date.After(until)) {
		s.mu.Unlock()
		return false
	}

	entry := s.queue[0]
	s.queue = s.queue[1:]
	if entry.date.After(s.now) {
		s.now = entry.date
	}
	if entry.interval > 0 {
		entry.date = entry.date.Add(entry.interval)
		entry.seq = s.seq
		s.seq++
		s.push(entry)
	}
	s.mu.Unlock()

	withCurrent(s, entry.block)
	return true
}
