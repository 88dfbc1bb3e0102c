package internal

import (
	"sync"
	"time"

	"gopkg.in/tomb.v2"
)

// QueueScheduler runs blocks one at a time, in submission order, on a
// dedicated worker goroutine.
type QueueScheduler struct {
	name string
	log  Logger

	t tomb.Tomb

	mu      sync.Mutex
	pending []func()
	wake    chan struct{}
}

func NewQueueScheduler(name string, settings Settings) *QueueScheduler {
	s := &QueueScheduler{
		name:    name,
		log:     NewLogger(settings).WithField("scheduler", name),
		pending: make([]func(), 0, settings.SchedulerQueueSize),
		wake:    make(chan struct{}, 1),
	}
	s.t.Go(s.run)

	return s
}

func (s *QueueScheduler) Name() string { return s.name }

func (s *QueueScheduler) Now() time.Time { return time.Now() }

func (s *QueueScheduler) Schedule(block func()) Disposable {
	d := NewDisposable(nil)
	s.enqueue(func() {
		if !d.IsDisposed() {
			block()
		}
	})

	return d
}

func (s *QueueScheduler) After(date time.Time, block func()) Disposable {
	var timer *time.Timer
	d := NewDisposable(func() { timer.Stop() })

	timer = time.AfterFunc(time.Until(date), func() {
		s.enqueue(func() {
			if !d.IsDisposed() {
				block()
			}
		})
	})

	return d
}

func (s *QueueScheduler) AfterRepeating(date time.Time, interval, _ time.Duration, block func()) Disposable {
	stop := make(chan struct{})
	d := NewDisposable(func() { close(stop) })

	go func() {
		timer := time.NewTimer(time.Until(date))
		defer timer.Stop()

		for {
			select {
			case <-stop:
				return
			case <-s.t.Dying():
				return
			case <-timer.C:
				s.enqueue(func() {
					if !d.IsDisposed() {
						block()
					}
				})
				timer.Reset(interval)
			}
		}
	}()

	return d
}

// Stop kills the worker. Blocks still pending are dropped. When called from
// a block running on s, Stop does not wait for the worker to exit.
func (s *QueueScheduler) Stop() error {
	s.t.Kill(nil)
	if Current() == Scheduler(s) {
		return nil
	}

	return s.t.Wait()
}

func (s *QueueScheduler) enqueue(block func()) {
	select {
	case <-s.t.Dying():
		s.log.Warnf("dropping block: %v", ErrSchedulerStopped)
		return
	default:
	}

	s.mu.Lock()
	s.pending = append(s.pending, block)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *QueueScheduler) pop() (func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return nil, false
	}

	block := s.pending[0]
	s.pending[0] = nil
	s.pending = s.pending[1:]

	return block, true
}

func (s *QueueScheduler) run() error {
	for {
		select {
		case <-s.t.Dying():
			return nil
		case <-s.wake:
		}

		for {
			block, ok := s.pop()
			if !ok {
				break
			}
			s.perform(block)

			select {
			case <-s.t.Dying():
				return nil
			default:
			}
		}
	}
}

func (s *QueueScheduler) perform(block func()) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("scheduled block panicked: %v", r)
		}
	}()

	withCurrent(s, block)
}
