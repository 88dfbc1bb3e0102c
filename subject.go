package rx

import "github.com/AnatoleLucet/rx/internal"

// Subject is a hot signal fed by hand: every event sent to it is broadcast
// to the subscribers attached at that moment. It is also a Subscriber, so
// it can be subscribed to another signal.
type Subject[T any] struct {
	*Signal[T]
	inner internal.SubjectStream
}

func newSubject[T any](inner internal.SubjectStream) *Subject[T] {
	return &Subject[T]{wrap[T](inner), inner}
}

func NewSubject[T any]() *Subject[T] {
	return newSubject[T](internal.NewSubject())
}

func (s *Subject[T]) SendNext(value T)                       { s.inner.SendNext(value) }
func (s *Subject[T]) SendError(err error)                    { s.inner.SendError(err) }
func (s *Subject[T]) SendCompleted()                         { s.inner.SendCompleted() }
func (s *Subject[T]) DidSubscribeWith(d *CompoundDisposable) { s.inner.DidSubscribeWith(d) }
func (s *Subject[T]) raw() internal.Subscriber               { return s.inner }

// ReplaySubject replays the last capacity values, all of them for 0, to new
// subscribers, followed by the terminal event once there is one.
type ReplaySubject[T any] struct {
	*Subject[T]
}

func NewReplaySubject[T any](capacity int) *ReplaySubject[T] {
	return &ReplaySubject[T]{newSubject[T](internal.NewReplaySubject(capacity))}
}

// BehaviorSubject replays its latest value, initial until the first send, to
// new subscribers.
type BehaviorSubject[T any] struct {
	*Subject[T]
	behavior *internal.BehaviorSubject
}

func NewBehaviorSubject[T any](initial T) *BehaviorSubject[T] {
	inner := internal.NewBehaviorSubject(initial)
	return &BehaviorSubject[T]{newSubject[T](inner), inner}
}

// Value returns the latest value.
func (s *BehaviorSubject[T]) Value() T {
	return as[T](s.behavior.Value())
}

// PropertySubject is a BehaviorSubject that never fails. SendError panics.
type PropertySubject[T any] struct {
	*Subject[T]
	property *internal.PropertySubject
}

func NewPropertySubject[T any](initial T) *PropertySubject[T] {
	inner := internal.NewPropertySubject(initial)
	return &PropertySubject[T]{newSubject[T](inner), inner}
}

func (s *PropertySubject[T]) Value() T {
	return as[T](s.property.Value())
}

// AsyncSubject sends only its last value, then completes, once it completes.
// Late subscribers get the same.
type AsyncSubject[T any] struct {
	*Subject[T]
}

func NewAsyncSubject[T any]() *AsyncSubject[T] {
	return &AsyncSubject[T]{newSubject[T](internal.NewAsyncSubject())}
}
