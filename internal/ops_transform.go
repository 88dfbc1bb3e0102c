package internal

import (
	"reflect"
	"sync"
)

// operate builds a signal that subscribes to upstream with the next handler
// returned by setup, forwarding terminal events unchanged. setup runs once
// per subscription, so per-subscription state lives in its closure.
func operate(upstream Stream, setup func(out Subscriber) func(value any)) *Signal {
	return Create(func(out Subscriber) Disposable {
		next := setup(out)
		return upstream.Subscribe(follow(out, next, out.SendError, out.SendCompleted))
	})
}

// call runs fn, sending a panic to out as an error. It reports whether fn returned normally.
func call(out Subscriber, fn func()) bool {
	if err := try(fn); err != nil {
		out.SendError(err)
		return false
	}
	return true
}

func valuesEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

func Map(upstream Stream, fn func(any) any) *Signal {
	return operate(upstream, func(out Subscriber) func(any) {
		return func(value any) {
			var mapped any
			if call(out, func() { mapped = fn(value) }) {
				out.SendNext(mapped)
			}
		}
	}).SetName("[%s] -map:", upstream.Name())
}

func MapReplace(upstream Stream, value any) *Signal {
	return Map(upstream, func(any) any { return value }).SetName("[%s] -mapReplace: %v", upstream.Name(), value)
}

// TryMap maps with a function that may fail; a failure ends the signal with its error.
func TryMap(upstream Stream, fn func(any) (any, error)) *Signal {
	return operate(upstream, func(out Subscriber) func(any) {
		return func(value any) {
			var (
				mapped any
				err    error
			)
			if !call(out, func() { mapped, err = fn(value) }) {
				return
			}
			if err != nil {
				out.SendError(err)
				return
			}
			out.SendNext(mapped)
		}
	}).SetName("[%s] -tryMap:", upstream.Name())
}

func Filter(upstream Stream, predicate func(any) bool) *Signal {
	return operate(upstream, func(out Subscriber) func(any) {
		return func(value any) {
			var keep bool
			if call(out, func() { keep = predicate(value) }) && keep {
				out.SendNext(value)
			}
		}
	}).SetName("[%s] -filter:", upstream.Name())
}

// Ignore drops values equal to value.
func Ignore(upstream Stream, value any) *Signal {
	return Filter(upstream, func(v any) bool { return !valuesEqual(v, value) }).
		SetName("[%s] -ignore: %v", upstream.Name(), value)
}

func IgnoreValues(upstream Stream) *Signal {
	return Filter(upstream, func(any) bool { return false }).SetName("[%s] -ignoreValues", upstream.Name())
}

// DistinctUntilChanged drops values equal to the last forwarded one. A nil
// equal compares with reflect.DeepEqual.
func DistinctUntilChanged(upstream Stream, equal func(a, b any) bool) *Signal {
	if equal == nil {
		equal = valuesEqual
	}

	return operate(upstream, func(out Subscriber) func(any) {
		var (
			last    any
			hasLast bool
		)
		return func(value any) {
			same := false
			if hasLast && !call(out, func() { same = equal(last, value) }) {
				return
			}
			if same {
				return
			}
			last, hasLast = value, true
			out.SendNext(value)
		}
	}).SetName("[%s] -distinctUntilChanged", upstream.Name())
}

// ScanWithIndex sends every intermediate result of folding the values into start.
func ScanWithIndex(upstream Stream, start any, reduce func(running, next any, index int) any) *Signal {
	return operate(upstream, func(out Subscriber) func(any) {
		running := start
		index := 0
		return func(value any) {
			if !call(out, func() { running = reduce(running, value, index) }) {
				return
			}
			index++
			out.SendNext(running)
		}
	}).SetName("[%s] -scanWithStart: %v reduceWithIndex:", upstream.Name(), start)
}

func Scan(upstream Stream, start any, reduce func(running, next any) any) *Signal {
	return ScanWithIndex(upstream, start, func(running, next any, _ int) any {
		return reduce(running, next)
	}).SetName("[%s] -scanWithStart: %v reduce:", upstream.Name(), start)
}

// Aggregate sends only the final fold, or start when upstream sent nothing.
func Aggregate(upstream Stream, start any, reduce func(running, next any) any) *Signal {
	return TakeLast(StartWith(Scan(upstream, start, reduce), start), 1).
		SetName("[%s] -aggregateWithStart: %v reduce:", upstream.Name(), start)
}

// CombinePrevious sends reduce(previous, current) for every value, with
// start standing in for the value before the first.
func CombinePrevious(upstream Stream, start any, reduce func(previous, current any) any) *Signal {
	return operate(upstream, func(out Subscriber) func(any) {
		previous := start
		return func(value any) {
			var combined any
			if !call(out, func() { combined = reduce(previous, value) }) {
				return
			}
			previous = value
			out.SendNext(combined)
		}
	}).SetName("[%s] -combinePreviousWithStart: %v reduce:", upstream.Name(), start)
}

// ReduceEach maps a signal of tuples through reduce.
func ReduceEach(upstream Stream, reduce func(Tuple) any) *Signal {
	return Map(upstream, func(value any) any {
		return reduce(value.(Tuple))
	}).SetName("[%s] -reduceEach:", upstream.Name())
}

func DoNext(upstream Stream, fn func(any)) *Signal {
	return operate(upstream, func(out Subscriber) func(any) {
		return func(value any) {
			if call(out, func() { fn(value) }) {
				out.SendNext(value)
			}
		}
	}).SetName("[%s] -doNext:", upstream.Name())
}

func DoError(upstream Stream, fn func(error)) *Signal {
	return Create(func(out Subscriber) Disposable {
		return upstream.Subscribe(follow(out, out.SendNext, func(err error) {
			if call(out, func() { fn(err) }) {
				out.SendError(err)
			}
		}, out.SendCompleted))
	}).SetName("[%s] -doError:", upstream.Name())
}

func DoCompleted(upstream Stream, fn func()) *Signal {
	return Create(func(out Subscriber) Disposable {
		return upstream.Subscribe(follow(out, out.SendNext, out.SendError, func() {
			if call(out, fn) {
				out.SendCompleted()
			}
		}))
	}).SetName("[%s] -doCompleted:", upstream.Name())
}

// Initially runs fn right before every subscription to upstream.
func Initially(upstream Stream, fn func()) *Signal {
	return Defer(func() Stream {
		fn()
		return upstream
	}).SetName("[%s] -initially:", upstream.Name())
}

// Finally runs fn once upstream errors or completes.
func Finally(upstream Stream, fn func()) *Signal {
	return DoCompleted(DoError(upstream, func(error) { fn() }), fn).
		SetName("[%s] -finally:", upstream.Name())
}

func StartWith(upstream Stream, value any) *Signal {
	return Concat(Return(value), upstream).SetName("[%s] -startWith: %v", upstream.Name(), value)
}

// FromSlice sends each value in order, then completes.
func FromSlice(values []any) *Signal {
	return Create(func(out Subscriber) Disposable {
		for _, value := range values {
			out.SendNext(value)
		}
		out.SendCompleted()
		return nil
	}).SetName("+fromSlice: %v", values)
}

// Materialize sends every event of upstream, terminal ones included, as an
// Event value, then completes.
func Materialize(upstream Stream) *Signal {
	return Create(func(out Subscriber) Disposable {
		return upstream.Subscribe(follow(out, func(value any) {
			out.SendNext(NextEvent(value))
		}, func(err error) {
			out.SendNext(ErrorEvent(err))
			out.SendCompleted()
		}, func() {
			out.SendNext(CompletedEvent())
			out.SendCompleted()
		}))
	}).SetName("[%s] -materialize", upstream.Name())
}

// Dematerialize turns Event values back into the events they describe.
func Dematerialize(upstream Stream) *Signal {
	return operate(upstream, func(out Subscriber) func(any) {
		return func(value any) {
			var e Event
			if call(out, func() { e = value.(Event) }) {
				e.sendTo(out)
			}
		}
	}).SetName("[%s] -dematerialize", upstream.Name())
}

// Collect sends a single slice of all values once upstream completes.
func Collect(upstream Stream) *Signal {
	return Create(func(out Subscriber) Disposable {
		var (
			mu     sync.Mutex
			values = []any{}
		)
		return upstream.Subscribe(follow(out, func(value any) {
			mu.Lock()
			values = append(values, value)
			mu.Unlock()
		}, out.SendError, func() {
			mu.Lock()
			collected := values
			mu.Unlock()

			out.SendNext(collected)
			out.SendCompleted()
		}))
	}).SetName("[%s] -collect", upstream.Name())
}
