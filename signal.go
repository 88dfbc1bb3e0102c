package rx

import "github.com/AnatoleLucet/rx/internal"

// Subscriber receives the events of a signal: any number of values, then at
// most one error or completion. After a terminal event every call is a no-op.
type Subscriber[T any] interface {
	SendNext(value T)
	SendError(err error)
	SendCompleted()

	// DidSubscribeWith ties d to the subscriber: d is disposed when the
	// subscriber terminates or is disposed.
	DidSubscribeWith(d *CompoundDisposable)
}

// subscriber is the typed view of an engine subscriber.
type subscriber[T any] struct {
	inner internal.Subscriber
}

func (s subscriber[T]) SendNext(value T)                       { s.inner.SendNext(value) }
func (s subscriber[T]) SendError(err error)                    { s.inner.SendError(err) }
func (s subscriber[T]) SendCompleted()                         { s.inner.SendCompleted() }
func (s subscriber[T]) DidSubscribeWith(d *CompoundDisposable) { s.inner.DidSubscribeWith(d) }
func (s subscriber[T]) raw() internal.Subscriber               { return s.inner }

// untyped adapts a Subscriber implemented outside this package.
type untyped[T any] struct {
	Subscriber[T]
}

func (u untyped[T]) SendNext(value any) { u.Subscriber.SendNext(as[T](value)) }

type rawSubscriber interface {
	raw() internal.Subscriber
}

func toInternal[T any](s Subscriber[T]) internal.Subscriber {
	if r, ok := s.(rawSubscriber); ok {
		return r.raw()
	}
	return untyped[T]{s}
}

// NewSubscriber returns a subscriber calling the given functions. Any of
// them may be nil.
func NewSubscriber[T any](next func(T), err func(error), completed func()) Subscriber[T] {
	return subscriber[T]{internal.NewSubscriber(typedNext(next), err, completed)}
}

func typedNext[T any](next func(T)) func(any) {
	if next == nil {
		return nil
	}
	return func(v any) { next(as[T](v)) }
}

// Source is any signal, whatever its value type.
type Source interface {
	stream() internal.Stream
}

// Signal is a lazy stream of T values.
type Signal[T any] struct {
	s internal.Stream
}

func wrap[T any](s internal.Stream) *Signal[T] {
	return &Signal[T]{s}
}

func (s *Signal[T]) stream() internal.Stream { return s.s }

func streams[T any](signals []*Signal[T]) []internal.Stream {
	out := make([]internal.Stream, len(signals))
	for i, sig := range signals {
		out[i] = sig.s
	}
	return out
}

func sources(srcs []Source) []internal.Stream {
	out := make([]internal.Stream, len(srcs))
	for i, src := range srcs {
		out[i] = src.stream()
	}
	return out
}

// Create returns a cold signal running didSubscribe for every subscriber.
// The returned disposable, which may be nil, is disposed when the
// subscription ends.
func Create[T any](didSubscribe func(Subscriber[T]) Disposable) *Signal[T] {
	return wrap[T](internal.Create(func(out internal.Subscriber) internal.Disposable {
		return didSubscribe(subscriber[T]{out})
	}))
}

// Return sends value then completes.
func Return[T any](value T) *Signal[T] {
	return wrap[T](internal.Return(value))
}

// Empty completes at once.
func Empty[T any]() *Signal[T] {
	return wrap[T](internal.Empty())
}

// Error fails at once with err.
func Error[T any](err error) *Signal[T] {
	return wrap[T](internal.Error(err))
}

// Never sends nothing and never terminates.
func Never[T any]() *Signal[T] {
	return wrap[T](internal.Never())
}

// Defer builds the signal to subscribe to at subscription time.
func Defer[T any](factory func() *Signal[T]) *Signal[T] {
	return wrap[T](internal.Defer(func() internal.Stream { return factory().s }))
}

// FromSlice sends each value in order, then completes.
func FromSlice[T any](values ...T) *Signal[T] {
	anys := make([]any, len(values))
	for i, v := range values {
		anys[i] = v
	}
	return wrap[T](internal.FromSlice(anys))
}

// Name describes the signal. Operators only record their names when debug
// is enabled.
func (s *Signal[T]) Name() string { return s.s.Name() }

// SetName sets the signal's name when debug is enabled.
func (s *Signal[T]) SetName(format string, args ...any) *Signal[T] {
	if sig, ok := s.s.(*internal.Signal); ok {
		sig.SetName(format, args...)
	}
	return s
}

// Subscribe starts delivering events to sub. Without a current scheduler
// the subscription starts asynchronously on the background scheduler.
func (s *Signal[T]) Subscribe(sub Subscriber[T]) Disposable {
	return s.s.Subscribe(toInternal(sub))
}

// SubscribeFuncs subscribes with the given functions, any of which may be nil.
func (s *Signal[T]) SubscribeFuncs(next func(T), err func(error), completed func()) Disposable {
	return internal.SubscribeFuncs(s.s, typedNext(next), err, completed)
}

func (s *Signal[T]) SubscribeNext(next func(T)) Disposable {
	return s.SubscribeFuncs(next, nil, nil)
}

func (s *Signal[T]) SubscribeError(err func(error)) Disposable {
	return s.SubscribeFuncs(nil, err, nil)
}

func (s *Signal[T]) SubscribeCompleted(completed func()) Disposable {
	return s.SubscribeFuncs(nil, nil, completed)
}

func (s *Signal[T]) SubscribeNextError(next func(T), err func(error)) Disposable {
	return s.SubscribeFuncs(next, err, nil)
}

func (s *Signal[T]) SubscribeNextCompleted(next func(T), completed func()) Disposable {
	return s.SubscribeFuncs(next, nil, completed)
}

func (s *Signal[T]) SubscribeErrorCompleted(err func(error), completed func()) Disposable {
	return s.SubscribeFuncs(nil, err, completed)
}
