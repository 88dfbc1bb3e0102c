package rx

import (
	"time"

	"github.com/AnatoleLucet/rx/internal"
)

// Scheduler decides where and when a block runs. Blocks scheduled on the
// same scheduler run in submission order.
type Scheduler = internal.Scheduler

type (
	ImmediateScheduler    = internal.ImmediateScheduler
	QueueScheduler        = internal.QueueScheduler
	CurrentQueueScheduler = internal.CurrentQueueScheduler
	TestScheduler         = internal.TestScheduler
)

// Immediate runs blocks synchronously and never becomes the current scheduler.
func Immediate() Scheduler { return internal.Immediate() }

// CurrentQueue runs blocks synchronously, queueing reentrant ones until the
// running block returns.
func CurrentQueue() *CurrentQueueScheduler { return internal.CurrentQueue() }

// Main is the process-wide serial scheduler.
func Main() *QueueScheduler { return internal.Main() }

// Background is the shared scheduler subscriptions fall back to.
func Background() *QueueScheduler { return internal.Background() }

// Current returns the scheduler running the calling goroutine's block, or
// nil when there is none.
func Current() Scheduler { return internal.Current() }

// NewQueueScheduler starts a serial scheduler backed by its own goroutine.
// Stop it when done.
func NewQueueScheduler(name string) *QueueScheduler {
	return internal.NewQueueScheduler(name, internal.DefaultSettings())
}

// NewTestScheduler returns a scheduler driven by a virtual clock.
func NewTestScheduler() *TestScheduler {
	return internal.NewTestScheduler()
}

// AfterDelay schedules block on s once delay has passed.
func AfterDelay(s Scheduler, delay time.Duration, block func()) Disposable {
	return internal.AfterDelay(s, delay, block)
}

// ScheduleRecursive schedules block on s, handing it a function that
// schedules block again.
func ScheduleRecursive(s Scheduler, block func(reschedule func())) Disposable {
	return internal.ScheduleRecursive(s, block)
}
