package internal

import "sync"

// SubjectStream is a stream that can also be fed events.
type SubjectStream interface {
	Stream
	Subscriber
}

// MulticastConnection shares one subscription to a source among the
// subscribers of a subject. Nothing flows until Connect.
type MulticastConnection struct {
	source  Stream
	factory func() SubjectStream

	mu         sync.Mutex
	subject    SubjectStream
	connection *CompoundDisposable
	connected  bool

	// AutoConnect bookkeeping
	refs int
}

// Multicast returns a connection broadcasting source through subject. The
// subject is used for every connection, so a terminated connection stays terminated.
func Multicast(source Stream, subject SubjectStream) *MulticastConnection {
	return &MulticastConnection{
		source:     source,
		factory:    func() SubjectStream { return subject },
		subject:    subject,
		connection: NewCompoundDisposable(),
	}
}

// MulticastFactory returns a connection that builds a fresh subject through
// factory whenever it reconnects after a disconnect.
func MulticastFactory(source Stream, factory func() SubjectStream) *MulticastConnection {
	return &MulticastConnection{
		source:     source,
		factory:    factory,
		subject:    factory(),
		connection: NewCompoundDisposable(),
	}
}

// Publish multicasts source through a plain Subject.
func Publish(source Stream) *MulticastConnection {
	return MulticastFactory(source, func() SubjectStream { return NewSubject() })
}

// Signal returns the stream subscribers attach to. Its subscribers follow
// whichever subject the connection currently uses.
func (c *MulticastConnection) Signal() *Signal {
	return Create(func(out Subscriber) Disposable {
		c.mu.Lock()
		subject := c.subject
		c.mu.Unlock()

		return subject.Subscribe(out)
	}).SetName("[%s] -multicast", c.source.Name())
}

// Connect subscribes the subject to the source if not already connected and
// returns the disposable that disconnects it. Calling it again returns the
// same disposable.
func (c *MulticastConnection) Connect() Disposable {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return c.connection
	}

	c.connected = true
	subject := c.subject
	connection := NewCompoundDisposable()
	c.connection = connection
	c.mu.Unlock()

	connection.AddFunc(func() { c.disconnected(connection) })
	connection.Add(c.source.Subscribe(subject))

	return connection
}

// disconnected resets the connection so the next Connect starts over with
// a new subject.
func (c *MulticastConnection) disconnected(connection *CompoundDisposable) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connection != connection {
		return
	}

	c.connected = false
	c.refs = 0
	c.subject = c.factory()
}

// AutoConnect returns a stream that connects on its first subscriber and
// disconnects when the last one goes away.
func (c *MulticastConnection) AutoConnect() *Signal {
	return Create(func(out Subscriber) Disposable {
		c.mu.Lock()
		subject := c.subject
		c.refs++
		first := c.refs == 1
		c.mu.Unlock()

		sub := subject.Subscribe(out)

		var connection *CompoundDisposable
		if first {
			c.Connect()
			c.mu.Lock()
			connection = c.connection
			c.mu.Unlock()
		} else {
			c.mu.Lock()
			connection = c.connection
			c.mu.Unlock()
		}

		return NewDisposable(func() {
			sub.Dispose()

			c.mu.Lock()
			c.refs--
			last := c.refs <= 0 && c.connection == connection
			c.mu.Unlock()

			if last {
				connection.Dispose()
			}
		})
	}).SetName("[%s] -autoconnect", c.source.Name())
}

// Replay connects source through an unbounded ReplaySubject immediately and
// returns the shared stream.
func Replay(source Stream) *Signal {
	c := Multicast(source, NewReplaySubject(0))
	c.Connect()
	return c.Signal().SetName("[%s] -replay", source.Name())
}

// ReplayLast is Replay keeping only the latest value.
func ReplayLast(source Stream) *Signal {
	c := Multicast(source, NewReplaySubject(1))
	c.Connect()
	return c.Signal().SetName("[%s] -replayLast", source.Name())
}

// ReplayLazily is Replay deferred until the first subscription.
func ReplayLazily(source Stream) *Signal {
	c := Multicast(source, NewReplaySubject(0))
	var once sync.Once

	return Defer(func() Stream {
		once.Do(func() { c.Connect() })
		return c.Signal()
	}).SetName("[%s] -replayLazily", source.Name())
}

// StartLazily runs didSubscribe once, on the first subscription, and replays
// everything it sent to every subscriber.
func StartLazily(didSubscribe func(Subscriber) Disposable) *Signal {
	return ReplayLazily(Create(didSubscribe)).named("+startLazily")
}
