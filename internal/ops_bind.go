package internal

import (
	"fmt"
	"sync"
)

// BindFunc maps one value to a signal to splice into the output. A nil
// signal or stop set to true ends the subscription to the receiver.
type BindFunc func(value any) (s Stream, stop bool)

// Bind is the primitive behind FlatMap: for every subscription it asks block
// for a fresh BindFunc, subscribes to each signal it returns, and completes
// once the receiver and all of those signals have completed.
func Bind(upstream Stream, block func() BindFunc) *Signal {
	return Create(func(out Subscriber) Disposable {
		bind := block()

		var (
			mu      sync.Mutex
			active  = 1 // the receiver itself
			stopped bool
		)
		disposable := NewCompoundDisposable()

		complete := func(finished Disposable) {
			mu.Lock()
			active--
			done := active == 0
			mu.Unlock()

			if done {
				out.SendCompleted()
				disposable.Dispose()
				return
			}
			disposable.Remove(finished)
			finished.Dispose()
		}

		fail := func(err error) {
			disposable.Dispose()
			out.SendError(err)
		}

		add := func(s Stream) {
			mu.Lock()
			active++
			mu.Unlock()

			serial := NewSerialDisposable(nil)
			disposable.Add(serial)
			serial.Set(s.Subscribe(follow(out, out.SendNext, fail, func() {
				complete(serial)
			})))
		}

		// stopSelf reports whether the receiver was still running
		stopSelf := func() bool {
			mu.Lock()
			defer mu.Unlock()

			if stopped {
				return false
			}
			stopped = true
			return true
		}

		self := NewSerialDisposable(nil)
		disposable.Add(self)
		self.Set(upstream.Subscribe(follow(out, func(value any) {
			mu.Lock()
			skip := stopped
			mu.Unlock()
			if skip || disposable.IsDisposed() {
				return
			}

			var (
				s    Stream
				stop bool
			)
			if err := try(func() { s, stop = bind(value) }); err != nil {
				fail(err)
				return
			}

			if s != nil {
				add(s)
			}
			if (s == nil || stop) && stopSelf() {
				self.Dispose()
				complete(self)
			}
		}, fail, func() {
			if stopSelf() {
				complete(self)
			}
		})))

		return disposable
	}).SetName("[%s] -bind:", upstream.Name())
}

// FlatMap maps each value to a signal and merges them all.
func FlatMap(upstream Stream, fn func(any) Stream) *Signal {
	return Bind(upstream, func() BindFunc {
		return func(value any) (Stream, bool) {
			s := fn(value)
			if s == nil {
				s = Empty()
			}
			return s, false
		}
	}).SetName("[%s] -flattenMap:", upstream.Name())
}

// Flatten merges a signal of signals, with at most maxConcurrent inner
// signals subscribed at once; 0 means no limit. Extra inner signals wait in
// arrival order.
func Flatten(upstream Stream, maxConcurrent int) *Signal {
	return Create(func(out Subscriber) Disposable {
		disposable := NewCompoundDisposable()

		var (
			mu            sync.Mutex
			active        int
			queued        []Stream
			selfCompleted bool
		)

		var subscribe func(s Stream)
		subscribe = func(s Stream) {
			serial := NewSerialDisposable(nil)
			disposable.Add(serial)

			serial.Set(s.Subscribe(follow(out, out.SendNext, out.SendError, func() {
				disposable.Remove(serial)
				serial.Dispose()

				mu.Lock()
				if len(queued) > 0 {
					next := queued[0]
					queued = queued[1:]
					mu.Unlock()

					subscribe(next)
					return
				}

				active--
				done := selfCompleted && active == 0
				mu.Unlock()

				if done {
					out.SendCompleted()
				}
			})))
		}

		disposable.Add(upstream.Subscribe(follow(out, func(value any) {
			s, ok := value.(Stream)
			if !ok {
				out.SendError(fmt.Errorf("rx: flatten received a %T, not a signal", value))
				return
			}

			mu.Lock()
			if maxConcurrent > 0 && active >= maxConcurrent {
				queued = append(queued, s)
				mu.Unlock()
				return
			}
			active++
			mu.Unlock()

			subscribe(s)
		}, out.SendError, func() {
			mu.Lock()
			selfCompleted = true
			done := active == 0
			mu.Unlock()

			if done {
				out.SendCompleted()
			}
		})))

		return disposable
	}).SetName("[%s] -flatten: %d", upstream.Name(), maxConcurrent)
}

func streamsToSignal(streams []Stream) *Signal {
	values := make([]any, len(streams))
	for i, s := range streams {
		values[i] = s
	}
	return FromSlice(values)
}

// Merge subscribes to every signal at once and completes when all have
// completed. No signals complete right away.
func Merge(streams ...Stream) *Signal {
	return Flatten(streamsToSignal(streams), 0).SetName("+merge: %d signals", len(streams))
}

// Concat subscribes to each signal only after the previous one completed.
func Concat(streams ...Stream) *Signal {
	return Flatten(streamsToSignal(streams), 1).SetName("+concat: %d signals", len(streams))
}

// Then ignores upstream's values and, once it completes, continues with the
// signal built by next.
func Then(upstream Stream, next func() Stream) *Signal {
	return Concat(IgnoreValues(upstream), Defer(next)).SetName("[%s] -then:", upstream.Name())
}

// SwitchToLatest forwards only the most recent inner signal of a signal of
// signals. It completes once the outer signal and the latest inner one have.
func SwitchToLatest(upstream Stream) *Signal {
	return Create(func(out Subscriber) Disposable {
		disposable := NewCompoundDisposable()
		inner := NewSerialDisposable(nil)
		disposable.Add(inner)

		var (
			mu             sync.Mutex
			generation     int
			innerActive    bool
			outerCompleted bool
		)

		disposable.Add(upstream.Subscribe(follow(out, func(value any) {
			s, ok := value.(Stream)
			if !ok {
				out.SendError(fmt.Errorf("rx: switchToLatest received a %T, not a signal", value))
				return
			}

			mu.Lock()
			generation++
			current := generation
			innerActive = true
			mu.Unlock()

			if prev := inner.Swap(nil); prev != nil {
				prev.Dispose()
			}

			d := s.Subscribe(follow(out, func(value any) {
				mu.Lock()
				stale := current != generation
				mu.Unlock()

				if !stale {
					out.SendNext(value)
				}
			}, out.SendError, func() {
				mu.Lock()
				if current != generation {
					mu.Unlock()
					return
				}
				innerActive = false
				done := outerCompleted
				mu.Unlock()

				if done {
					out.SendCompleted()
				}
			}))

			mu.Lock()
			stale := current != generation
			mu.Unlock()
			if stale {
				d.Dispose()
				return
			}
			inner.Set(d)
		}, out.SendError, func() {
			mu.Lock()
			outerCompleted = true
			done := !innerActive
			mu.Unlock()

			if done {
				out.SendCompleted()
			}
		})))

		return disposable
	}).SetName("[%s] -switchToLatest", upstream.Name())
}

// Switch picks, for each value of selector, the matching case (or
// defaultCase) and switches to it. A value with no case and no default fails.
func Switch(selector Stream, cases map[any]Stream, defaultCase Stream) *Signal {
	return SwitchToLatest(TryMap(selector, func(key any) (any, error) {
		if s, ok := cases[key]; ok {
			return s, nil
		}
		if defaultCase != nil {
			return defaultCase, nil
		}
		return nil, fmt.Errorf("rx: no case for %v and no default", key)
	})).SetName("+switch: %s", selector.Name())
}

// If follows then while condition last sent true, and otherwise otherwise.
func If(condition Stream, then Stream, otherwise Stream) *Signal {
	return SwitchToLatest(Map(condition, func(value any) any {
		if value.(bool) {
			return then
		}
		return otherwise
	})).SetName("+if: %s", condition.Name())
}
