package internal

import "sync/atomic"

// Subscriber receives the events of one subscription. At most one of
// SendError and SendCompleted takes effect, and nothing is delivered after it.
type Subscriber interface {
	SendNext(value any)
	SendError(err error)
	SendCompleted()

	// DidSubscribeWith ties the subscription's disposable to the subscriber,
	// so that a terminal event disposes the whole subscription.
	DidSubscribeWith(d *CompoundDisposable)
}

// liveSubscriber forwards events to callbacks, one at a time, and disposes
// its compound disposable on the first terminal event.
type liveSubscriber struct {
	lock recursiveMutex

	// cleared on disposal, without taking lock
	callbacks atomic.Pointer[callbacks]

	disposable *CompoundDisposable
}

type callbacks struct {
	next      func(any)
	err       func(error)
	completed func()
}

// NewSubscriber returns a subscriber calling the given callbacks. Any of them
// may be nil. An error with no error callback is dropped.
func NewSubscriber(next func(any), err func(error), completed func()) Subscriber {
	s := &liveSubscriber{
		disposable: NewCompoundDisposable(),
	}
	s.callbacks.Store(&callbacks{next: next, err: err, completed: completed})
	s.disposable.AddFunc(func() { s.callbacks.Store(nil) })

	return s
}

func (s *liveSubscriber) SendNext(value any) {
	s.lock.Lock()
	defer s.lock.Unlock()

	cb := s.callbacks.Load()
	if cb == nil || cb.next == nil {
		return
	}
	cb.next(value)
}

func (s *liveSubscriber) SendError(err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	cb := s.callbacks.Load()
	if cb == nil {
		return
	}
	s.disposable.Dispose()

	if cb.err == nil {
		defaultLogger().Debugf("dropping unhandled error: %v", err)
		return
	}
	cb.err(err)
}

func (s *liveSubscriber) SendCompleted() {
	s.lock.Lock()
	defer s.lock.Unlock()

	cb := s.callbacks.Load()
	if cb == nil {
		return
	}
	s.disposable.Dispose()

	if cb.completed != nil {
		cb.completed()
	}
}

func (s *liveSubscriber) DidSubscribeWith(other *CompoundDisposable) {
	if other.IsDisposed() {
		return
	}

	mine := s.disposable
	mine.Add(other)
	other.AddFunc(func() { mine.Remove(other) })
}

// passthroughSubscriber decorates the subscriber handed to a signal's
// subscribe function: once the subscription is disposed, events stop there.
type passthroughSubscriber struct {
	inner      Subscriber
	signal     Stream
	disposable *CompoundDisposable
}

func newPassthroughSubscriber(inner Subscriber, signal Stream, disposable *CompoundDisposable) Subscriber {
	p := &passthroughSubscriber{
		inner:      inner,
		signal:     signal,
		disposable: disposable,
	}
	inner.DidSubscribeWith(disposable)

	return p
}

func (p *passthroughSubscriber) SendNext(value any) {
	if p.disposable.IsDisposed() {
		return
	}
	p.inner.SendNext(value)
}

func (p *passthroughSubscriber) SendError(err error) {
	if p.disposable.IsDisposed() {
		return
	}
	p.inner.SendError(err)
}

func (p *passthroughSubscriber) SendCompleted() {
	if p.disposable.IsDisposed() {
		return
	}
	p.inner.SendCompleted()
}

func (p *passthroughSubscriber) DidSubscribeWith(d *CompoundDisposable) {
	if d == p.disposable || d.IsDisposed() {
		return
	}

	mine := p.disposable
	mine.Add(d)
	d.AddFunc(func() { mine.Remove(d) })
}

// follow returns the subscriber an operator hands to its upstream, bound to
// out: once out's subscription ends, the upstream subscription ends too,
// even while it is still being set up.
func follow(out Subscriber, next func(any), err func(error), completed func()) Subscriber {
	s := NewSubscriber(next, err, completed).(*liveSubscriber)
	out.DidSubscribeWith(s.disposable)
	return s
}
