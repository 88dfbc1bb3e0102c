package internal

import (
	"sync"
	"time"
)

// CurrentQueueScheduler runs blocks synchronously on the calling goroutine,
// except when called from a block it is already running on that goroutine:
// then the new block is queued and runs after the current one returns.
// Recursive definitions therefore run breadth-first with a bounded stack.
type CurrentQueueScheduler struct {
	// goroutine id -> *trampolineQueue of the outermost running block
	queues sync.Map
}

type trampolineQueue struct {
	blocks []func()
}

func (q *trampolineQueue) push(block func()) {
	q.blocks = append(q.blocks, block)
}

func (q *trampolineQueue) pop() (func(), bool) {
	if len(q.blocks) == 0 {
		return nil, false
	}

	block := q.blocks[0]
	q.blocks[0] = nil
	q.blocks = q.blocks[1:]

	return block, true
}

func NewCurrentQueueScheduler() *CurrentQueueScheduler {
	return &CurrentQueueScheduler{}
}

func (s *CurrentQueueScheduler) Name() string { return "current-queue" }

func (s *CurrentQueueScheduler) Now() time.Time { return time.Now() }

func (s *CurrentQueueScheduler) Schedule(block func()) Disposable {
	d := NewDisposable(nil)
	guarded := func() {
		if !d.IsDisposed() {
			block()
		}
	}

	gid := goroutineID()
	if q, ok := s.queues.Load(gid); ok {
		q.(*trampolineQueue).push(guarded)
		return d
	}

	s.drain(gid, guarded)
	return d
}

// Run executes fn with s as the current scheduler of the calling goroutine,
// draining every block fn queues before returning.
func (s *CurrentQueueScheduler) Run(fn func()) {
	gid := goroutineID()
	if _, ok := s.queues.Load(gid); ok {
		fn()
		return
	}

	s.drain(gid, fn)
}

func (s *CurrentQueueScheduler) drain(gid int64, first func()) {
	q := &trampolineQueue{}
	s.queues.Store(gid, q)
	defer s.queues.Delete(gid)

	withCurrent(s, func() {
		q.push(first)
		for {
			block, ok := q.pop()
			if !ok {
				return
			}
			block()
		}
	})
}

// After blocks the calling goroutine until date, then schedules block.
func (s *CurrentQueueScheduler) After(date time.Time, block func()) Disposable {
	time.Sleep(time.Until(date))
	return s.Schedule(block)
}

func (s *CurrentQueueScheduler) AfterRepeating(time.Time, time.Duration, time.Duration, func()) Disposable {
	panic(ErrUnsupported)
}
