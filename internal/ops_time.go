package internal

import (
	"sync"
	"time"
)

var (
	throttleOnce      sync.Once
	throttleScheduler *QueueScheduler
)

// privateScheduler backs time-based operators subscribed from goroutines no
// scheduler is tracking.
func privateScheduler() Scheduler {
	throttleOnce.Do(func() {
		throttleScheduler = NewQueueScheduler("throttle", DefaultSettings())
	})
	return throttleScheduler
}

// timerScheduler is the scheduler a time-based operator should deliver on:
// the current one when it can run timers, the private one otherwise.
func timerScheduler() Scheduler {
	switch s := Current().(type) {
	case nil, *CurrentQueueScheduler, ImmediateScheduler:
		return privateScheduler()
	default:
		return s
	}
}

// Throttle holds each value back for interval and drops it if another value
// arrives meanwhile, so only values followed by interval of silence get
// through. A held value is sent on the scheduler it arrived on. Completion
// first flushes the held value; errors pass straight through.
func Throttle(upstream Stream, interval time.Duration) *Signal {
	return ThrottleWhere(upstream, interval, func(any) bool { return true }).
		SetName("[%s] -throttle: %v", upstream.Name(), interval)
}

// ThrottleWhere throttles only the values passing predicate; the others are
// forwarded at once and discard any held value.
func ThrottleWhere(upstream Stream, interval time.Duration, predicate func(any) bool) *Signal {
	return Create(func(out Subscriber) Disposable {
		disposable := NewCompoundDisposable()
		timer := NewSerialDisposable(nil)
		disposable.Add(timer)

		var (
			mu       sync.Mutex
			held     any
			hasHeld  bool
			sequence int
		)

		// flush sends the held value, if any and if it is still the one
		// numbered seq. seq < 0 flushes whatever is held.
		flush := func(seq int, send bool) {
			mu.Lock()
			if !hasHeld || (seq >= 0 && seq != sequence) {
				mu.Unlock()
				return
			}
			value := held
			held, hasHeld = nil, false
			mu.Unlock()

			if send {
				out.SendNext(value)
			}
		}

		disposable.Add(upstream.Subscribe(follow(out, func(value any) {
			scheduler := timerScheduler()

			var throttle bool
			if !call(out, func() { throttle = predicate(value) }) {
				return
			}

			if !throttle {
				if prev := timer.Swap(nil); prev != nil {
					prev.Dispose()
				}
				flush(-1, false)
				out.SendNext(value)
				return
			}

			mu.Lock()
			sequence++
			seq := sequence
			held, hasHeld = value, true
			mu.Unlock()

			if prev := timer.Swap(AfterDelay(scheduler, interval, func() {
				flush(seq, true)
			})); prev != nil {
				prev.Dispose()
			}
		}, func(err error) {
			disposable.Dispose()
			out.SendError(err)
		}, func() {
			flush(-1, true)
			out.SendCompleted()
		})))

		return disposable
	}).SetName("[%s] -throttle: %v valuesPassingTest:", upstream.Name(), interval)
}

// Delay shifts values and completion by interval. Errors are not delayed.
func Delay(upstream Stream, interval time.Duration) *Signal {
	return Create(func(out Subscriber) Disposable {
		disposable := NewCompoundDisposable()

		schedule := func(block func()) {
			disposable.Add(AfterDelay(timerScheduler(), interval, block))
		}

		disposable.Add(upstream.Subscribe(follow(out, func(value any) {
			schedule(func() { out.SendNext(value) })
		}, func(err error) {
			disposable.Dispose()
			out.SendError(err)
		}, func() {
			schedule(out.SendCompleted)
		})))

		return disposable
	}).SetName("[%s] -delay: %v", upstream.Name(), interval)
}

// BufferWithTime groups values arriving within interval of the first one
// into a Tuple, sent on scheduler. Completion flushes the current group.
func BufferWithTime(upstream Stream, interval time.Duration, scheduler Scheduler) *Signal {
	return Create(func(out Subscriber) Disposable {
		disposable := NewCompoundDisposable()
		timer := NewSerialDisposable(nil)
		disposable.Add(timer)

		var (
			mu     sync.Mutex
			values []any
		)

		flush := func() {
			mu.Lock()
			batch := values
			values = nil
			mu.Unlock()

			if prev := timer.Swap(nil); prev != nil {
				prev.Dispose()
			}
			if len(batch) > 0 {
				out.SendNext(Pack(batch...))
			}
		}

		disposable.Add(upstream.Subscribe(follow(out, func(value any) {
			mu.Lock()
			first := len(values) == 0
			values = append(values, value)
			mu.Unlock()

			if first {
				timer.Set(AfterDelay(scheduler, interval, flush))
			}
		}, out.SendError, func() {
			flush()
			out.SendCompleted()
		})))

		return disposable
	}).SetName("[%s] -bufferWithTime: %v onScheduler: %s", upstream.Name(), interval, scheduler.Name())
}

// Timeout fails with ErrTimeout when interval passes on scheduler without
// any event. Every event restarts the clock.
func Timeout(upstream Stream, interval time.Duration, scheduler Scheduler) *Signal {
	return Create(func(out Subscriber) Disposable {
		disposable := NewCompoundDisposable()
		timer := NewSerialDisposable(nil)
		disposable.Add(timer)

		arm := func() {
			if prev := timer.Swap(AfterDelay(scheduler, interval, func() {
				disposable.Dispose()
				out.SendError(ErrTimeout)
			})); prev != nil {
				prev.Dispose()
			}
		}

		arm()
		disposable.Add(upstream.Subscribe(follow(out, func(value any) {
			arm()
			out.SendNext(value)
		}, func(err error) {
			disposable.Dispose()
			out.SendError(err)
		}, func() {
			disposable.Dispose()
			out.SendCompleted()
		})))

		return disposable
	}).SetName("[%s] -timeout: %v onScheduler: %s", upstream.Name(), interval, scheduler.Name())
}

// Interval sends scheduler's current time every interval, forever.
func Interval(interval time.Duration, scheduler Scheduler) *Signal {
	return Create(func(out Subscriber) Disposable {
		return scheduler.AfterRepeating(scheduler.Now().Add(interval), interval, 0, func() {
			out.SendNext(scheduler.Now())
		})
	}).SetName("+interval: %v onScheduler: %s", interval, scheduler.Name())
}

// DeliverOn sends every event on scheduler, leaving upstream's work where it was.
func DeliverOn(upstream Stream, scheduler Scheduler) *Signal {
	return Create(func(out Subscriber) Disposable {
		// out drops anything arriving after disposal, so the handles are not kept
		schedule := func(block func()) {
			scheduler.Schedule(block)
		}

		return upstream.Subscribe(follow(out, func(value any) {
			schedule(func() { out.SendNext(value) })
		}, func(err error) {
			schedule(func() { out.SendError(err) })
		}, func() {
			schedule(out.SendCompleted)
		}))
	}).SetName("[%s] -deliverOn: %s", upstream.Name(), scheduler.Name())
}

// SubscribeOn performs the subscription itself, and so upstream's side
// effects, on scheduler.
func SubscribeOn(upstream Stream, scheduler Scheduler) *Signal {
	return Create(func(out Subscriber) Disposable {
		disposable := NewCompoundDisposable()
		disposable.Add(scheduler.Schedule(func() {
			disposable.Add(upstream.Subscribe(out))
		}))

		return disposable
	}).SetName("[%s] -subscribeOn: %s", upstream.Name(), scheduler.Name())
}

// Sample sends upstream's latest value each time sampler sends. It
// completes when either completes.
func Sample(upstream Stream, sampler Stream) *Signal {
	return Create(func(out Subscriber) Disposable {
		var (
			mu       sync.Mutex
			latest   any
			hasValue bool
		)

		disposable := NewCompoundDisposable()
		disposable.Add(upstream.Subscribe(follow(out, func(value any) {
			mu.Lock()
			latest, hasValue = value, true
			mu.Unlock()
		}, out.SendError, out.SendCompleted)))

		disposable.Add(sampler.Subscribe(follow(out, func(any) {
			mu.Lock()
			value, ok := latest, hasValue
			mu.Unlock()

			if ok {
				out.SendNext(value)
			}
		}, out.SendError, out.SendCompleted)))

		return disposable
	}).SetName("[%s] -sample: %s", upstream.Name(), sampler.Name())
}
