package rx

import "github.com/AnatoleLucet/rx/internal"

// MulticastSubject is any of the subject types.
type MulticastSubject[T any] interface {
	Source
	Subscriber[T]
}

type subjectStream struct {
	internal.Stream
	internal.Subscriber
}

func toSubjectStream[T any](s MulticastSubject[T]) internal.SubjectStream {
	return subjectStream{s.stream(), toInternal[T](s)}
}

// Connection shares one subscription to a signal among the subscribers of
// its Signal. Nothing is sent until Connect.
type Connection[T any] struct {
	c *internal.MulticastConnection
}

// Connect subscribes to the source unless already connected. The returned
// disposable disconnects.
func (c *Connection[T]) Connect() Disposable {
	return c.c.Connect()
}

// Signal returns the shared signal.
func (c *Connection[T]) Signal() *Signal[T] {
	return wrap[T](c.c.Signal())
}

// AutoConnect returns a signal connecting on its first subscriber and
// disconnecting when the last one leaves. A later subscriber reconnects.
func (c *Connection[T]) AutoConnect() *Signal[T] {
	return wrap[T](c.c.AutoConnect())
}

// Publish shares s through a plain Subject.
func (s *Signal[T]) Publish() *Connection[T] {
	return &Connection[T]{internal.Publish(s.s)}
}

// Multicast shares s through subject.
func (s *Signal[T]) Multicast(subject MulticastSubject[T]) *Connection[T] {
	return &Connection[T]{internal.Multicast(s.s, toSubjectStream(subject))}
}

// Replay subscribes to s at once and replays everything it sent to every
// subscriber.
func (s *Signal[T]) Replay() *Signal[T] {
	return wrap[T](internal.Replay(s.s))
}

// ReplayLast is Replay keeping only the latest value.
func (s *Signal[T]) ReplayLast() *Signal[T] {
	return wrap[T](internal.ReplayLast(s.s))
}

// ReplayLazily is Replay subscribing to s on the first subscription only.
func (s *Signal[T]) ReplayLazily() *Signal[T] {
	return wrap[T](internal.ReplayLazily(s.s))
}

// StartLazily runs didSubscribe once, on the first subscription, and replays
// what it sends to every subscriber.
func StartLazily[T any](didSubscribe func(Subscriber[T]) Disposable) *Signal[T] {
	return wrap[T](internal.StartLazily(func(out internal.Subscriber) internal.Disposable {
		return didSubscribe(subscriber[T]{out})
	}))
}
