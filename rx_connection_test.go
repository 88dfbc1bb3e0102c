package rx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// counted returns a signal counting its subscriptions and disposals. It
// sends the subscription number and stays open.
func counted() (s *Signal[int], subscriptions, disposals *int) {
	subscriptions, disposals = new(int), new(int)
	s = Create(func(out Subscriber[int]) Disposable {
		*subscriptions++
		out.SendNext(*subscriptions)
		return NewDisposable(func() { *disposals++ })
	})
	return s, subscriptions, disposals
}

func TestConnection(t *testing.T) {
	t.Run("publish shares one subscription", func(t *testing.T) {
		Run(func() {
			source, subscriptions, _ := counted()
			c := source.Publish()

			a, b := record(c.Signal()), record(c.Signal())
			assert.Zero(t, *subscriptions)

			d := c.Connect()
			assert.Same(t, d, c.Connect())

			assert.Equal(t, 1, *subscriptions)
			assert.Equal(t, []int{1}, a.Values())
			assert.Equal(t, []int{1}, b.Values())
		})
	})

	t.Run("disconnect", func(t *testing.T) {
		Run(func() {
			source, subscriptions, disposals := counted()
			c := source.Publish()

			c.Connect().Dispose()
			assert.Equal(t, 1, *disposals)

			c.Connect()
			assert.Equal(t, 2, *subscriptions)
		})
	})

	t.Run("multicast", func(t *testing.T) {
		Run(func() {
			c := FromSlice(1, 2, 3).Multicast(NewReplaySubject[int](2))
			c.Connect()

			r := record(c.Signal())
			assert.Equal(t, []int{2, 3}, r.Values())
			assert.True(t, r.Completed())
		})
	})

	t.Run("multicast through a terminated subject stays terminated", func(t *testing.T) {
		Run(func() {
			source, _, _ := counted()
			subject := NewSubject[int]()
			c := source.Multicast(subject)

			subject.SendCompleted()
			c.Connect().Dispose()
			c.Connect()

			r := record(c.Signal())
			subject.SendNext(9)

			assert.Empty(t, r.Values())
			assert.True(t, r.Completed())
		})
	})

	t.Run("auto connect", func(t *testing.T) {
		Run(func() {
			source, subscriptions, disposals := counted()
			s := source.Publish().AutoConnect()
			assert.Zero(t, *subscriptions)

			a := s.SubscribeNext(func(int) {})
			b := s.SubscribeNext(func(int) {})
			assert.Equal(t, 1, *subscriptions)

			a.Dispose()
			assert.Zero(t, *disposals)

			b.Dispose()
			assert.Equal(t, 1, *disposals)

			r := record(s)
			assert.Equal(t, 2, *subscriptions)
			assert.Equal(t, []int{2}, r.Values())
		})
	})

	t.Run("replay", func(t *testing.T) {
		Run(func() {
			var subscriptions int
			source := Defer(func() *Signal[int] {
				subscriptions++
				return FromSlice(1, 2, 3)
			})

			replayed := source.Replay()
			assert.Equal(t, 1, subscriptions)

			assert.Equal(t, []int{1, 2, 3}, record(replayed).Values())
			assert.Equal(t, []int{1, 2, 3}, record(replayed).Values())
			assert.Equal(t, 1, subscriptions)

			last := source.ReplayLast()
			assert.Equal(t, []int{3}, record(last).Values())
		})
	})

	t.Run("replay lazily", func(t *testing.T) {
		Run(func() {
			source, subscriptions, _ := counted()
			replayed := source.ReplayLazily()
			assert.Zero(t, *subscriptions)

			a, b := record(replayed), record(replayed)
			assert.Equal(t, 1, *subscriptions)
			assert.Equal(t, []int{1}, a.Values())
			assert.Equal(t, []int{1}, b.Values())
		})
	})

	t.Run("start lazily", func(t *testing.T) {
		Run(func() {
			var calls int
			s := StartLazily(func(out Subscriber[string]) Disposable {
				calls++
				out.SendNext("once")
				out.SendCompleted()
				return nil
			})
			assert.Zero(t, calls)

			assert.Equal(t, []string{"once"}, record(s).Values())
			assert.Equal(t, []string{"once"}, record(s).Values())
			assert.Equal(t, 1, calls)
		})
	})
}
