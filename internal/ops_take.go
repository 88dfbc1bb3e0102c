package internal

import "sync"

func Take(upstream Stream, count int) *Signal {
	if count <= 0 {
		return Empty()
	}

	return operate(upstream, func(out Subscriber) func(any) {
		taken := 0
		return func(value any) {
			if taken >= count {
				return
			}
			taken++
			out.SendNext(value)
			if taken == count {
				out.SendCompleted()
			}
		}
	}).SetName("[%s] -take: %d", upstream.Name(), count)
}

func Skip(upstream Stream, count int) *Signal {
	return operate(upstream, func(out Subscriber) func(any) {
		skipped := 0
		return func(value any) {
			if skipped < count {
				skipped++
				return
			}
			out.SendNext(value)
		}
	}).SetName("[%s] -skip: %d", upstream.Name(), count)
}

// TakeLast sends the last count values once upstream completes.
func TakeLast(upstream Stream, count int) *Signal {
	return Create(func(out Subscriber) Disposable {
		var (
			mu     sync.Mutex
			values []any
		)
		return upstream.Subscribe(follow(out, func(value any) {
			if count <= 0 {
				return
			}

			mu.Lock()
			values = append(values, value)
			if len(values) > count {
				values = values[1:]
			}
			mu.Unlock()
		}, out.SendError, func() {
			mu.Lock()
			last := values
			mu.Unlock()

			for _, value := range last {
				out.SendNext(value)
			}
			out.SendCompleted()
		}))
	}).SetName("[%s] -takeLast: %d", upstream.Name(), count)
}

// TakeWhile forwards values while predicate holds, then completes.
func TakeWhile(upstream Stream, predicate func(any) bool) *Signal {
	return operate(upstream, func(out Subscriber) func(any) {
		return func(value any) {
			var ok bool
			if !call(out, func() { ok = predicate(value) }) {
				return
			}
			if !ok {
				out.SendCompleted()
				return
			}
			out.SendNext(value)
		}
	}).SetName("[%s] -takeWhileBlock:", upstream.Name())
}

// TakeUntilFunc forwards values until predicate first holds, then completes
// without forwarding that value.
func TakeUntilFunc(upstream Stream, predicate func(any) bool) *Signal {
	return TakeWhile(upstream, func(value any) bool { return !predicate(value) }).
		SetName("[%s] -takeUntilBlock:", upstream.Name())
}

// SkipWhile drops values while predicate holds, and forwards everything after.
func SkipWhile(upstream Stream, predicate func(any) bool) *Signal {
	return operate(upstream, func(out Subscriber) func(any) {
		skipping := true
		return func(value any) {
			if skipping && !call(out, func() { skipping = predicate(value) }) {
				return
			}
			if !skipping {
				out.SendNext(value)
			}
		}
	}).SetName("[%s] -skipWhileBlock:", upstream.Name())
}

func SkipUntilFunc(upstream Stream, predicate func(any) bool) *Signal {
	return SkipWhile(upstream, func(value any) bool { return !predicate(value) }).
		SetName("[%s] -skipUntilBlock:", upstream.Name())
}

// TakeUntil forwards upstream until trigger sends a value or completes.
func TakeUntil(upstream Stream, trigger Stream) *Signal {
	return Create(func(out Subscriber) Disposable {
		disposable := NewCompoundDisposable()
		stop := func() {
			disposable.Dispose()
			out.SendCompleted()
		}

		disposable.Add(trigger.Subscribe(follow(out, func(any) { stop() }, nil, stop)))
		disposable.Add(upstream.Subscribe(follow(out, out.SendNext, out.SendError, out.SendCompleted)))

		return disposable
	}).SetName("[%s] -takeUntil: %s", upstream.Name(), trigger.Name())
}

// TakeUntilReplacement forwards upstream until replacement sends its first
// event, then forwards replacement instead.
func TakeUntilReplacement(upstream Stream, replacement Stream) *Signal {
	return Create(func(out Subscriber) Disposable {
		self := NewSerialDisposable(nil)

		replacementDisposable := replacement.Subscribe(follow(out, func(value any) {
			self.Dispose()
			out.SendNext(value)
		}, func(err error) {
			self.Dispose()
			out.SendError(err)
		}, func() {
			self.Dispose()
			out.SendCompleted()
		}))

		if !self.IsDisposed() {
			self.Set(upstream.Subscribe(follow(out, out.SendNext, func(err error) {
				replacementDisposable.Dispose()
				out.SendError(err)
			}, func() {
				replacementDisposable.Dispose()
				out.SendCompleted()
			})))
		}

		return NewCompoundDisposable(self, replacementDisposable)
	}).SetName("[%s] -takeUntilReplacement: %s", upstream.Name(), replacement.Name())
}
