package internal

// Any sends true and completes on the first value passing predicate, or
// sends false when upstream completes without one.
func Any(upstream Stream, predicate func(any) bool) *Signal {
	return Create(func(out Subscriber) Disposable {
		return upstream.Subscribe(follow(out, func(value any) {
			var ok bool
			if call(out, func() { ok = predicate(value) }) && ok {
				out.SendNext(true)
				out.SendCompleted()
			}
		}, out.SendError, func() {
			out.SendNext(false)
			out.SendCompleted()
		}))
	}).SetName("[%s] -any:", upstream.Name())
}

// All sends false and completes on the first value failing predicate, or
// sends true when upstream completes without one.
func All(upstream Stream, predicate func(any) bool) *Signal {
	return Create(func(out Subscriber) Disposable {
		return upstream.Subscribe(follow(out, func(value any) {
			var ok bool
			if call(out, func() { ok = predicate(value) }) && !ok {
				out.SendNext(false)
				out.SendCompleted()
			}
		}, out.SendError, func() {
			out.SendNext(true)
			out.SendCompleted()
		}))
	}).SetName("[%s] -all:", upstream.Name())
}

// Not inverts a signal of bools.
func Not(upstream Stream) *Signal {
	return Map(upstream, func(value any) any {
		return !value.(bool)
	}).SetName("[%s] -not", upstream.Name())
}

// And reduces each tuple of bools to their conjunction.
func And(upstream Stream) *Signal {
	return ReduceEach(upstream, func(t Tuple) any {
		for _, v := range t.Values() {
			if !v.(bool) {
				return false
			}
		}
		return true
	}).SetName("[%s] -and", upstream.Name())
}

// Or reduces each tuple of bools to their disjunction.
func Or(upstream Stream) *Signal {
	return ReduceEach(upstream, func(t Tuple) any {
		for _, v := range t.Values() {
			if v.(bool) {
				return true
			}
		}
		return false
	}).SetName("[%s] -or", upstream.Name())
}
