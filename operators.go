package rx

import (
	"time"

	"github.com/AnatoleLucet/rx/internal"
)

func predicate[T any](fn func(T) bool) func(any) bool {
	return func(v any) bool { return fn(as[T](v)) }
}

// Filter forwards only the values passing fn.
func (s *Signal[T]) Filter(fn func(T) bool) *Signal[T] {
	return wrap[T](internal.Filter(s.s, predicate(fn)))
}

// Ignore drops values equal to value.
func (s *Signal[T]) Ignore(value T) *Signal[T] {
	return wrap[T](internal.Ignore(s.s, value))
}

// IgnoreValues drops every value, keeping the terminal event.
func (s *Signal[T]) IgnoreValues() *Signal[T] {
	return wrap[T](internal.IgnoreValues(s.s))
}

// DistinctUntilChanged drops values equal to the previous forwarded one.
func (s *Signal[T]) DistinctUntilChanged() *Signal[T] {
	return wrap[T](internal.DistinctUntilChanged(s.s, nil))
}

// DistinctUntilChangedFunc is DistinctUntilChanged comparing with equal.
func (s *Signal[T]) DistinctUntilChangedFunc(equal func(a, b T) bool) *Signal[T] {
	return wrap[T](internal.DistinctUntilChanged(s.s, func(a, b any) bool {
		return equal(as[T](a), as[T](b))
	}))
}

func (s *Signal[T]) Take(count int) *Signal[T] {
	return wrap[T](internal.Take(s.s, count))
}

func (s *Signal[T]) Skip(count int) *Signal[T] {
	return wrap[T](internal.Skip(s.s, count))
}

// TakeLast sends the last count values once s completes.
func (s *Signal[T]) TakeLast(count int) *Signal[T] {
	return wrap[T](internal.TakeLast(s.s, count))
}

func (s *Signal[T]) TakeWhile(fn func(T) bool) *Signal[T] {
	return wrap[T](internal.TakeWhile(s.s, predicate(fn)))
}

// TakeUntilFunc completes before the first value passing fn.
func (s *Signal[T]) TakeUntilFunc(fn func(T) bool) *Signal[T] {
	return wrap[T](internal.TakeUntilFunc(s.s, predicate(fn)))
}

func (s *Signal[T]) SkipWhile(fn func(T) bool) *Signal[T] {
	return wrap[T](internal.SkipWhile(s.s, predicate(fn)))
}

func (s *Signal[T]) SkipUntilFunc(fn func(T) bool) *Signal[T] {
	return wrap[T](internal.SkipUntilFunc(s.s, predicate(fn)))
}

// TakeUntil completes when trigger sends a value or completes.
func (s *Signal[T]) TakeUntil(trigger Source) *Signal[T] {
	return wrap[T](internal.TakeUntil(s.s, trigger.stream()))
}

// TakeUntilReplacement forwards s until replacement sends anything, then
// forwards replacement instead.
func (s *Signal[T]) TakeUntilReplacement(replacement *Signal[T]) *Signal[T] {
	return wrap[T](internal.TakeUntilReplacement(s.s, replacement.s))
}

// Sample sends the latest value of s whenever sampler sends a value.
func (s *Signal[T]) Sample(sampler Source) *Signal[T] {
	return wrap[T](internal.Sample(s.s, sampler.stream()))
}

// StartWith sends value before the values of s.
func (s *Signal[T]) StartWith(value T) *Signal[T] {
	return wrap[T](internal.StartWith(s.s, value))
}

// Concat subscribes to other once s completes.
func (s *Signal[T]) Concat(other *Signal[T]) *Signal[T] {
	return wrap[T](internal.Concat(s.s, other.s))
}

func (s *Signal[T]) DoNext(fn func(T)) *Signal[T] {
	return wrap[T](internal.DoNext(s.s, typedNext(fn)))
}

func (s *Signal[T]) DoError(fn func(error)) *Signal[T] {
	return wrap[T](internal.DoError(s.s, fn))
}

func (s *Signal[T]) DoCompleted(fn func()) *Signal[T] {
	return wrap[T](internal.DoCompleted(s.s, fn))
}

// Initially runs fn on every subscription, before subscribing to s.
func (s *Signal[T]) Initially(fn func()) *Signal[T] {
	return wrap[T](internal.Initially(s.s, fn))
}

// Finally runs fn after s terminates.
func (s *Signal[T]) Finally(fn func()) *Signal[T] {
	return wrap[T](internal.Finally(s.s, fn))
}

// Catch subscribes to the signal handler returns when s fails.
func (s *Signal[T]) Catch(handler func(error) *Signal[T]) *Signal[T] {
	return wrap[T](internal.Catch(s.s, func(err error) internal.Stream {
		return handler(err).s
	}))
}

// CatchTo subscribes to replacement when s fails.
func (s *Signal[T]) CatchTo(replacement *Signal[T]) *Signal[T] {
	return wrap[T](internal.CatchTo(s.s, replacement.s))
}

// Retry resubscribes to s on error, at most count times; 0 retries forever.
func (s *Signal[T]) Retry(count int) *Signal[T] {
	return wrap[T](internal.Retry(s.s, count))
}

// Repeat resubscribes to s every time it completes.
func (s *Signal[T]) Repeat() *Signal[T] {
	return wrap[T](internal.Repeat(s.s))
}

// Throttle sends a value only after interval passes without another one.
func (s *Signal[T]) Throttle(interval time.Duration) *Signal[T] {
	return wrap[T](internal.Throttle(s.s, interval))
}

// ThrottleWhere throttles only the values passing fn.
func (s *Signal[T]) ThrottleWhere(interval time.Duration, fn func(T) bool) *Signal[T] {
	return wrap[T](internal.ThrottleWhere(s.s, interval, predicate(fn)))
}

// Delay shifts values and completion by interval.
func (s *Signal[T]) Delay(interval time.Duration) *Signal[T] {
	return wrap[T](internal.Delay(s.s, interval))
}

// Timeout fails with ErrTimeout when no event arrives within interval, timed
// on scheduler.
func (s *Signal[T]) Timeout(interval time.Duration, scheduler Scheduler) *Signal[T] {
	return wrap[T](internal.Timeout(s.s, interval, scheduler))
}

// DeliverOn sends the events of s on scheduler.
func (s *Signal[T]) DeliverOn(scheduler Scheduler) *Signal[T] {
	return wrap[T](internal.DeliverOn(s.s, scheduler))
}

// SubscribeOn subscribes to s on scheduler.
func (s *Signal[T]) SubscribeOn(scheduler Scheduler) *Signal[T] {
	return wrap[T](internal.SubscribeOn(s.s, scheduler))
}

// Any reports whether some value passes fn.
func (s *Signal[T]) Any(fn func(T) bool) *Signal[bool] {
	return wrap[bool](internal.Any(s.s, predicate(fn)))
}

// All reports whether every value passes fn.
func (s *Signal[T]) All(fn func(T) bool) *Signal[bool] {
	return wrap[bool](internal.All(s.s, predicate(fn)))
}

// Collect sends every value of s as one slice once s completes.
func Collect[T any](s *Signal[T]) *Signal[[]T] {
	return Map(wrap[[]any](internal.Collect(s.s)), func(values []any) []T {
		out := make([]T, len(values))
		for i, v := range values {
			out[i] = as[T](v)
		}
		return out
	})
}

// Materialize sends every event of s, terminal ones included, as a value.
func (s *Signal[T]) Materialize() *Signal[Event] {
	return wrap[Event](internal.Materialize(s.s))
}

// Dematerialize turns the events sent by s back into events.
func Dematerialize[T any](s *Signal[Event]) *Signal[T] {
	return wrap[T](internal.Dematerialize(s.s))
}

// Map transforms every value with fn.
func Map[T, U any](s *Signal[T], fn func(T) U) *Signal[U] {
	return wrap[U](internal.Map(s.s, func(v any) any { return fn(as[T](v)) }))
}

// MapReplace replaces every value with value.
func MapReplace[T, U any](s *Signal[T], value U) *Signal[U] {
	return wrap[U](internal.MapReplace(s.s, value))
}

// TryMap transforms every value with fn, failing on its first error.
func TryMap[T, U any](s *Signal[T], fn func(T) (U, error)) *Signal[U] {
	return wrap[U](internal.TryMap(s.s, func(v any) (any, error) { return fn(as[T](v)) }))
}

// Scan sends the running accumulation of the values of s.
func Scan[T, A any](s *Signal[T], start A, fn func(running A, next T) A) *Signal[A] {
	return wrap[A](internal.Scan(s.s, start, func(running, next any) any {
		return fn(as[A](running), as[T](next))
	}))
}

func ScanWithIndex[T, A any](s *Signal[T], start A, fn func(running A, next T, index int) A) *Signal[A] {
	return wrap[A](internal.ScanWithIndex(s.s, start, func(running, next any, index int) any {
		return fn(as[A](running), as[T](next), index)
	}))
}

// Aggregate sends only the final accumulation, once s completes.
func Aggregate[T, A any](s *Signal[T], start A, fn func(running A, next T) A) *Signal[A] {
	return wrap[A](internal.Aggregate(s.s, start, func(running, next any) any {
		return fn(as[A](running), as[T](next))
	}))
}

// CombinePrevious combines each value with the one before it, start for the first.
func CombinePrevious[T, U any](s *Signal[T], start T, fn func(previous, current T) U) *Signal[U] {
	return wrap[U](internal.CombinePrevious(s.s, start, func(previous, current any) any {
		return fn(as[T](previous), as[T](current))
	}))
}

// ReduceEach maps each tuple of s with fn.
func ReduceEach[U any](s *Signal[Tuple], fn func(Tuple) U) *Signal[U] {
	return wrap[U](internal.ReduceEach(s.s, func(t Tuple) any { return fn(t) }))
}

// Not negates every value.
func Not(s *Signal[bool]) *Signal[bool] {
	return wrap[bool](internal.Not(s.s))
}

// And sends the conjunction of each tuple of bools.
func And(s *Signal[Tuple]) *Signal[bool] {
	return wrap[bool](internal.And(s.s))
}

// Or sends the disjunction of each tuple of bools.
func Or(s *Signal[Tuple]) *Signal[bool] {
	return wrap[bool](internal.Or(s.s))
}

// BufferWithTime groups the values arriving within interval into a tuple,
// sent on scheduler.
func BufferWithTime[T any](s *Signal[T], interval time.Duration, scheduler Scheduler) *Signal[Tuple] {
	return wrap[Tuple](internal.BufferWithTime(s.s, interval, scheduler))
}

// Interval sends the scheduler's time every interval.
func Interval(interval time.Duration, scheduler Scheduler) *Signal[time.Time] {
	return wrap[time.Time](internal.Interval(interval, scheduler))
}
