package internal

import (
	"sync"
	"time"
)

// Scheduler decides where and when a block runs. Blocks scheduled on the
// same scheduler run in submission order.
type Scheduler interface {
	// Schedule runs block as soon as possible. Disposing the result before
	// block starts prevents it from running.
	Schedule(block func()) Disposable

	// After runs block no earlier than date.
	After(date time.Time, block func()) Disposable

	// AfterRepeating runs block at date and then every interval until disposed.
	// leeway is how late each run may be; schedulers treat it as a hint.
	AfterRepeating(date time.Time, interval, leeway time.Duration, block func()) Disposable

	// Now is the scheduler's notion of the current time.
	Now() time.Time

	Name() string
}

// AfterDelay runs block on s once delay has passed on s's clock.
func AfterDelay(s Scheduler, delay time.Duration, block func()) Disposable {
	return s.After(s.Now().Add(delay), block)
}

// ScheduleRecursive schedules block on s, handing it a reschedule function
// that enqueues block again. Each run is a fresh scheduled block, so the
// stack never grows, and only the pending run is held. Disposing the result
// stops future runs.
func ScheduleRecursive(s Scheduler, block func(reschedule func())) Disposable {
	pending := NewSerialDisposable(nil)

	var run func()
	run = func() {
		if pending.IsDisposed() {
			return
		}

		var once sync.Once
		block(func() {
			once.Do(func() {
				pending.Set(s.Schedule(run))
			})
		})
	}

	pending.Set(s.Schedule(run))
	return pending
}

// ImmediateScheduler runs blocks synchronously on the calling goroutine.
// Unlike every other scheduler it does not become the current scheduler.
type ImmediateScheduler struct{}

func (ImmediateScheduler) Schedule(block func()) Disposable {
	block()
	return NewDisposable(nil)
}

// After blocks the calling goroutine until date.
func (ImmediateScheduler) After(date time.Time, block func()) Disposable {
	time.Sleep(time.Until(date))
	block()
	return NewDisposable(nil)
}

func (ImmediateScheduler) AfterRepeating(time.Time, time.Duration, time.Duration, func()) Disposable {
	panic(ErrUnsupported)
}

func (ImmediateScheduler) Now() time.Time { return time.Now() }

func (ImmediateScheduler) Name() string { return "immediate" }

// subscriptionScheduler runs blocks inline when the calling goroutine has a
// current scheduler, and hands them to the background scheduler otherwise, so
// a subscriber always holds its disposable before the first event arrives.
type subscriptionScheduler struct{}

func (subscriptionScheduler) Schedule(block func()) Disposable {
	if Current() == nil {
		return Background().Schedule(block)
	}

	block()
	return NewDisposable(nil)
}

func (subscriptionScheduler) After(date time.Time, block func()) Disposable {
	return currentOrBackground().After(date, block)
}

func (subscriptionScheduler) AfterRepeating(date time.Time, interval, leeway time.Duration, block func()) Disposable {
	return currentOrBackground().AfterRepeating(date, interval, leeway, block)
}

func (subscriptionScheduler) Now() time.Time { return currentOrBackground().Now() }

func (subscriptionScheduler) Name() string { return "subscription" }

func currentOrBackground() Scheduler {
	if s := Current(); s != nil {
		return s
	}
	return Background()
}

var (
	immediate    Scheduler = ImmediateScheduler{}
	subscription Scheduler = subscriptionScheduler{}
	currentQueue           = NewCurrentQueueScheduler()

	globalsOnce         sync.Once
	mainScheduler       *QueueScheduler
	backgroundScheduler *QueueScheduler
)

func initGlobals() {
	globalsOnce.Do(func() {
		settings := DefaultSettings()
		mainScheduler = NewQueueScheduler("main", settings)
		backgroundScheduler = NewQueueScheduler("background", settings)
	})
}

func Immediate() Scheduler { return immediate }

// CurrentQueue is the shared trampoline scheduler.
func CurrentQueue() *CurrentQueueScheduler { return currentQueue }

// Subscription is the scheduler every signal subscribes through.
func Subscription() Scheduler { return subscription }

// Main is the process-wide serial scheduler standing in for a UI main queue.
func Main() *QueueScheduler {
	initGlobals()
	return mainScheduler
}

// Background is the shared scheduler used when no current scheduler is known.
func Background() *QueueScheduler {
	initGlobals()
	return backgroundScheduler
}
