package internal

import (
	"slices"
	"sync"
)

// observer is one subscriber attached to a subject. While a replaying
// subject hands it the backlog, live events wait in pending.
type observer struct {
	subscriber Subscriber
	disposable *CompoundDisposable

	mu        sync.Mutex
	replaying bool
	pending   []Event
}

func (o *observer) deliver(e Event) {
	o.mu.Lock()
	if o.replaying {
		o.pending = append(o.pending, e)
		o.mu.Unlock()
		return
	}
	o.mu.Unlock()

	e.sendTo(o.subscriber)
}

// finishReplay flushes events that arrived during the replay, then lets live
// events through directly.
func (o *observer) finishReplay() {
	for {
		o.mu.Lock()
		if len(o.pending) == 0 {
			o.replaying = false
			o.mu.Unlock()
			return
		}
		batch := o.pending
		o.pending = nil
		o.mu.Unlock()

		for _, e := range batch {
			e.sendTo(o.subscriber)
		}
	}
}

// Subject is a hot stream that is also a subscriber: every event it receives
// is broadcast to the subscribers attached at that moment. Once terminated it
// ignores further events and sends its final events to late subscribers.
type Subject struct {
	mu         sync.Mutex
	observers  []*observer
	terminated bool
	final      []Event

	// subscriptions feeding the subject, disposed on its terminal event
	disposable *CompoundDisposable

	name string
}

func NewSubject() *Subject {
	return &Subject{disposable: NewCompoundDisposable(), name: "+subject"}
}

func (s *Subject) Name() string { return s.name }

func (s *Subject) Subscribe(subscriber Subscriber) Disposable {
	o, final := s.attach(subscriber, false)
	for _, e := range final {
		e.sendTo(o.subscriber)
	}
	return o.disposable
}

// attach registers subscriber; with replaying set, live events are held back
// until finishReplay. On a terminated subject nothing is registered and the
// final events are returned instead.
func (s *Subject) attach(subscriber Subscriber, replaying bool) (*observer, []Event) {
	disposable := NewCompoundDisposable()
	o := &observer{
		disposable: disposable,
		replaying:  replaying,
	}
	o.subscriber = newPassthroughSubscriber(subscriber, s, disposable)

	s.mu.Lock()
	if s.terminated {
		final := s.final
		s.mu.Unlock()
		return o, final
	}
	s.observers = append(s.observers, o)
	s.mu.Unlock()

	disposable.AddFunc(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if i := slices.Index(s.observers, o); i >= 0 {
			s.observers = slices.Delete(s.observers, i, i+1)
		}
	})

	return o, nil
}

func (s *Subject) snapshot() []*observer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.observers)
}

func (s *Subject) SendNext(value any) {
	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return
	}
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	e := NextEvent(value)
	for _, o := range observers {
		o.deliver(e)
	}
}

func (s *Subject) SendError(err error) {
	s.finish(ErrorEvent(err))
}

func (s *Subject) SendCompleted() {
	s.finish(CompletedEvent())
}

// finish terminates the subject with final, which ends in a terminal event.
// Only the first call has any effect.
func (s *Subject) finish(final ...Event) {
	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return
	}
	s.terminated = true
	s.final = final
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	s.disposable.Dispose()
	for _, o := range observers {
		for _, e := range final {
			o.deliver(e)
		}
	}
}

func (s *Subject) DidSubscribeWith(d *CompoundDisposable) {
	if d.IsDisposed() {
		return
	}

	s.disposable.Add(d)
	d.AddFunc(func() { s.disposable.Remove(d) })
}

// ReplaySubject remembers the last capacity values, all of them when capacity
// is 0, and replays them to every new subscriber before live values. Once
// terminated it replays the terminal event as well.
type ReplaySubject struct {
	*Subject

	capacity int

	mu       sync.Mutex
	values   []any
	terminal *Event
}

func NewReplaySubject(capacity int) *ReplaySubject {
	s := &ReplaySubject{
		Subject:  NewSubject(),
		capacity: max(capacity, 0),
	}
	s.name = "+replaySubject"

	return s
}

func (s *ReplaySubject) Subscribe(subscriber Subscriber) Disposable {
	s.mu.Lock()
	backlog := slices.Clone(s.values)
	terminal := s.terminal
	var o *observer
	if terminal == nil {
		o, _ = s.attach(subscriber, true)
	}
	s.mu.Unlock()

	if terminal != nil {
		disposable := NewCompoundDisposable()
		subscriber = newPassthroughSubscriber(subscriber, s, disposable)
		for _, value := range backlog {
			subscriber.SendNext(value)
		}
		terminal.sendTo(subscriber)
		return disposable
	}

	for _, value := range backlog {
		if o.disposable.IsDisposed() {
			break
		}
		o.subscriber.SendNext(value)
	}
	o.finishReplay()

	return o.disposable
}

func (s *ReplaySubject) SendNext(value any) {
	s.mu.Lock()
	if s.terminal != nil {
		s.mu.Unlock()
		return
	}
	s.values = append(s.values, value)
	if s.capacity > 0 && len(s.values) > s.capacity {
		s.values = slices.Delete(s.values, 0, len(s.values)-s.capacity)
	}
	// taken under mu: observers attached later find value in the backlog
	observers := s.snapshot()
	s.mu.Unlock()

	for _, o := range observers {
		o.deliver(NextEvent(value))
	}
}

func (s *ReplaySubject) SendError(err error) {
	s.terminate(ErrorEvent(err))
}

func (s *ReplaySubject) SendCompleted() {
	s.terminate(CompletedEvent())
}

func (s *ReplaySubject) terminate(e Event) {
	s.mu.Lock()
	if s.terminal != nil {
		s.mu.Unlock()
		return
	}
	s.terminal = &e
	observers := s.snapshot()
	s.mu.Unlock()

	s.disposable.Dispose()
	for _, o := range observers {
		o.deliver(e)
	}
}

// BehaviorSubject replays its latest value, starting from a default, to
// every new subscriber.
type BehaviorSubject struct {
	*ReplaySubject
}

func NewBehaviorSubject(initial any) *BehaviorSubject {
	s := &BehaviorSubject{NewReplaySubject(1)}
	s.name = "+behaviorSubject"
	s.values = []any{initial}

	return s
}

// Value returns the latest value.
func (s *BehaviorSubject) Value() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[len(s.values)-1]
}

// PropertySubject is a BehaviorSubject holding a value that never fails.
// Sending it an error is a programming error and panics.
type PropertySubject struct {
	*BehaviorSubject
}

func NewPropertySubject(initial any) *PropertySubject {
	s := &PropertySubject{NewBehaviorSubject(initial)}
	s.name = "+property"

	return s
}

func (s *PropertySubject) SendError(err error) {
	panic("rx: property subjects cannot send errors: " + err.Error())
}

// AsyncSubject keeps only the last value and delivers it, followed by
// completion, once it completes itself. Late subscribers get the same.
type AsyncSubject struct {
	*Subject

	mu       sync.Mutex
	last     any
	hasValue bool
	done     bool
}

func NewAsyncSubject() *AsyncSubject {
	s := &AsyncSubject{Subject: NewSubject()}
	s.name = "+asyncSubject"

	return s
}

func (s *AsyncSubject) SendNext(value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.done {
		s.last, s.hasValue = value, true
	}
}

func (s *AsyncSubject) SendError(err error) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.done = true
	s.mu.Unlock()

	s.finish(ErrorEvent(err))
}

func (s *AsyncSubject) SendCompleted() {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.done = true
	last, hasValue := s.last, s.hasValue
	s.mu.Unlock()

	if hasValue {
		s.finish(NextEvent(last), CompletedEvent())
		return
	}
	s.finish(CompletedEvent())
}
