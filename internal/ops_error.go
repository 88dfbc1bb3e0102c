package internal

import "sync"

// resubscriber runs subscribe again each time again is called, iteratively:
// a call made while subscribe is still running on any goroutine is picked up
// by the running loop instead of nesting.
type resubscriber struct {
	mu        sync.Mutex
	running   bool
	pending   bool
	subscribe func()
}

func (r *resubscriber) again() {
	r.mu.Lock()
	if r.running {
		r.pending = true
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	for {
		r.subscribe()

		r.mu.Lock()
		if !r.pending {
			r.running = false
			r.mu.Unlock()
			return
		}
		r.pending = false
		r.mu.Unlock()
	}
}

// Catch switches to the signal returned by handler when upstream fails.
func Catch(upstream Stream, handler func(error) Stream) *Signal {
	return Create(func(out Subscriber) Disposable {
		serial := NewSerialDisposable(nil)

		var (
			mu     sync.Mutex
			caught bool
		)

		d := upstream.Subscribe(follow(out, out.SendNext, func(err error) {
			mu.Lock()
			caught = true
			mu.Unlock()

			var replacement Stream
			if !call(out, func() { replacement = handler(err) }) {
				return
			}
			if replacement == nil {
				out.SendError(err)
				return
			}

			if prev := serial.Swap(nil); prev != nil {
				prev.Dispose()
			}
			serial.Set(replacement.Subscribe(out))
		}, out.SendCompleted))

		// the handler may already have installed the replacement
		mu.Lock()
		if !caught {
			serial.Set(d)
		}
		mu.Unlock()

		return serial
	}).SetName("[%s] -catch:", upstream.Name())
}

// CatchTo switches to replacement when upstream fails.
func CatchTo(upstream Stream, replacement Stream) *Signal {
	return Catch(upstream, func(error) Stream { return replacement }).
		SetName("[%s] -catchTo: %s", upstream.Name(), replacement.Name())
}

// Retry resubscribes to upstream when it fails, up to count more times, or
// without limit when count is 0. The count is per subscription.
func Retry(upstream Stream, count int) *Signal {
	return Create(func(out Subscriber) Disposable {
		serial := NewSerialDisposable(nil)
		// registered before looping, so disposal downstream stops a synchronous loop
		out.DidSubscribeWith(NewCompoundDisposable(serial))
		retries := 0

		r := &resubscriber{}
		r.subscribe = func() {
			if serial.IsDisposed() {
				return
			}

			if prev := serial.Swap(nil); prev != nil {
				prev.Dispose()
			}
			serial.Set(upstream.Subscribe(follow(out, out.SendNext, func(err error) {
				if count > 0 && retries >= count {
					out.SendError(err)
					return
				}
				retries++
				r.again()
			}, out.SendCompleted)))
		}
		r.again()

		return serial
	}).SetName("[%s] -retry: %d", upstream.Name(), count)
}

// Repeat resubscribes to upstream every time it completes. Errors end it.
func Repeat(upstream Stream) *Signal {
	return Create(func(out Subscriber) Disposable {
		serial := NewSerialDisposable(nil)
		out.DidSubscribeWith(NewCompoundDisposable(serial))

		r := &resubscriber{}
		r.subscribe = func() {
			if serial.IsDisposed() {
				return
			}

			if prev := serial.Swap(nil); prev != nil {
				prev.Dispose()
			}
			serial.Set(upstream.Subscribe(follow(out, out.SendNext, out.SendError, r.again)))
		}
		r.again()

		return serial
	}).SetName("[%s] -repeat", upstream.Name())
}
