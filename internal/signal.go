package internal

import (
	"fmt"
	"sync/atomic"
)

// Stream is anything that can be subscribed to: signals and subjects.
type Stream interface {
	// Subscribe starts delivering events to subscriber and returns the
	// disposable that cancels the subscription.
	Subscribe(subscriber Subscriber) Disposable

	Name() string
}

type signalKind int

const (
	kindDynamic signalKind = iota
	kindReturn
	kindEmpty
	kindError
	kindNever
)

// Signal is a cold stream: each subscription runs its producing logic anew.
type Signal struct {
	kind signalKind
	name atomic.Pointer[string]

	value any
	err   error

	didSubscribe func(Subscriber) Disposable
}

// Create returns a signal running didSubscribe for every subscriber. The
// returned disposable, which may be nil, cleans up that subscription.
// A panic in didSubscribe is sent as a *CallbackError.
func Create(didSubscribe func(Subscriber) Disposable) *Signal {
	return &Signal{kind: kindDynamic, didSubscribe: didSubscribe}
}

// Return sends value and completes.
func Return(value any) *Signal {
	return &Signal{kind: kindReturn, value: value}
}

// Empty completes right away.
func Empty() *Signal {
	return &Signal{kind: kindEmpty}
}

// Error fails right away with err.
func Error(err error) *Signal {
	return &Signal{kind: kindError, err: err}
}

// Never sends nothing and never terminates.
func Never() *Signal {
	return &Signal{kind: kindNever}
}

// Defer calls factory on every subscription and subscribes to its result.
func Defer(factory func() Stream) *Signal {
	return Create(func(subscriber Subscriber) Disposable {
		var s Stream
		if err := try(func() { s = factory() }); err != nil {
			subscriber.SendError(err)
			return nil
		}
		return s.Subscribe(subscriber)
	}).named("+defer:")
}

func (s *Signal) Subscribe(subscriber Subscriber) Disposable {
	disposable := NewCompoundDisposable()
	subscriber = newPassthroughSubscriber(subscriber, s, disposable)

	if s.kind == kindNever || (s.kind == kindDynamic && s.didSubscribe == nil) {
		return disposable
	}

	if settings := DefaultSettings(); settings.Debug {
		log := defaultLogger().WithField("signal", s.Name())
		log.Debugf("subscribed")
		disposable.AddFunc(func() { log.Debugf("disposed") })
	}

	disposable.Add(Subscription().Schedule(func() {
		switch s.kind {
		case kindReturn:
			subscriber.SendNext(s.value)
			subscriber.SendCompleted()
		case kindEmpty:
			subscriber.SendCompleted()
		case kindError:
			subscriber.SendError(s.err)
		case kindDynamic:
			var inner Disposable
			if err := try(func() { inner = s.didSubscribe(subscriber) }); err != nil {
				subscriber.SendError(err)
			}
			disposable.Add(inner)
		}
	}))

	return disposable
}

func (s *Signal) Name() string {
	if name := s.name.Load(); name != nil {
		return *name
	}

	switch s.kind {
	case kindReturn:
		return fmt.Sprintf("+return: %v", s.value)
	case kindEmpty:
		return "+empty"
	case kindError:
		return fmt.Sprintf("+error: %v", s.err)
	case kindNever:
		return "+never"
	}
	return "+createSignal:"
}

// SetName names s for debugging and returns it. Names are only kept when
// Settings.Debug is on.
func (s *Signal) SetName(format string, args ...any) *Signal {
	if !DefaultSettings().Debug {
		return s
	}

	name := fmt.Sprintf(format, args...)
	s.name.Store(&name)
	return s
}

func (s *Signal) named(op string) *Signal {
	return s.SetName("%s", op)
}

// SubscribeFuncs subscribes with the given callbacks, any of which may be nil.
func SubscribeFuncs(s Stream, next func(any), err func(error), completed func()) Disposable {
	return s.Subscribe(NewSubscriber(next, err, completed))
}
