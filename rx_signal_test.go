package rx

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignal(t *testing.T) {
	t.Run("return", func(t *testing.T) {
		values, err := Return(1).ToSlice()
		require.NoError(t, err)
		assert.Equal(t, []int{1}, values)
	})

	t.Run("empty", func(t *testing.T) {
		values, err := Empty[int]().ToSlice()
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("error", func(t *testing.T) {
		_, err := Error[int](errBoom).ToSlice()
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("never", func(t *testing.T) {
		Run(func() {
			r := record(Never[int]())
			assert.Empty(t, r.Values())
			assert.False(t, r.Completed())
			assert.NoError(t, r.Err())
		})
	})

	t.Run("from slice", func(t *testing.T) {
		values, err := FromSlice("a", "b", "c").ToSlice()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, values)
	})

	t.Run("nothing after a terminal event", func(t *testing.T) {
		s := Create(func(out Subscriber[int]) Disposable {
			out.SendNext(1)
			out.SendCompleted()
			out.SendNext(2)
			out.SendError(errBoom)
			out.SendCompleted()
			return nil
		})

		Run(func() {
			r := record(s)
			assert.Equal(t, []int{1}, r.Values())
			assert.True(t, r.Completed())
			assert.NoError(t, r.Err())
			assert.Equal(t, 1, r.terminals)
		})
	})

	t.Run("cold re-execution", func(t *testing.T) {
		var subscriptions atomic.Int32
		s := Create(func(out Subscriber[int]) Disposable {
			subscriptions.Add(1)
			out.SendNext(int(subscriptions.Load()))
			out.SendCompleted()
			return nil
		})

		Run(func() {
			assert.Equal(t, []int{1}, record(s).Values())
			assert.Equal(t, []int{2}, record(s).Values())
		})
		assert.Equal(t, int32(2), subscriptions.Load())
	})

	t.Run("dispose stops delivery and cleans up", func(t *testing.T) {
		subject := NewSubject[int]()
		var cleaned bool
		s := Create(func(out Subscriber[int]) Disposable {
			d := subject.Subscribe(out)
			return NewDisposable(func() {
				cleaned = true
				d.Dispose()
			})
		})

		Run(func() {
			var values []int
			d := s.SubscribeNext(func(v int) { values = append(values, v) })

			subject.SendNext(1)
			d.Dispose()
			d.Dispose()
			subject.SendNext(2)

			assert.Equal(t, []int{1}, values)
			assert.True(t, cleaned)
		})
	})

	t.Run("terminal event disposes the subscription", func(t *testing.T) {
		var cleaned bool
		s := Create(func(out Subscriber[int]) Disposable {
			out.SendCompleted()
			return NewDisposable(func() { cleaned = true })
		})

		Run(func() {
			s.SubscribeCompleted(func() {})
			assert.True(t, cleaned)
		})
	})

	t.Run("panicking subscribe function", func(t *testing.T) {
		s := Create(func(out Subscriber[int]) Disposable {
			panic("bad")
		})

		err := s.WaitUntilCompleted()

		var cbErr *CallbackError
		require.ErrorAs(t, err, &cbErr)
		assert.Equal(t, "bad", cbErr.Value)
	})

	t.Run("panicking callback", func(t *testing.T) {
		var cleaned bool
		subject := NewSubject[int]()
		s := Create(func(out Subscriber[int]) Disposable {
			d := subject.Subscribe(out)
			return NewDisposable(func() {
				cleaned = true
				d.Dispose()
			})
		})

		Run(func() {
			r := record(Map(s, func(v int) int {
				if v == 2 {
					panic(errBoom)
				}
				return v
			}))

			subject.SendNext(1)
			subject.SendNext(2)
			subject.SendNext(3)

			assert.Equal(t, []int{1}, r.Values())
			assert.ErrorIs(t, r.Err(), errBoom)
			assert.True(t, cleaned)
		})
	})

	t.Run("subscribes on the background scheduler", func(t *testing.T) {
		current := make(chan Scheduler, 1)
		Create(func(out Subscriber[int]) Disposable {
			current <- Current()
			return nil
		}).SubscribeNext(func(int) {})

		assert.Same(t, Background(), <-current)
	})

	t.Run("defer", func(t *testing.T) {
		var calls int
		s := Defer(func() *Signal[int] {
			calls++
			return Return(calls)
		})

		Run(func() {
			assert.Equal(t, []int{1}, record(s).Values())
			assert.Equal(t, []int{2}, record(s).Values())
		})
	})

	t.Run("subscribe variants", func(t *testing.T) {
		Run(func() {
			var got []string
			FromSlice(1, 2).SubscribeNextCompleted(
				func(v int) { got = append(got, "next") },
				func() { got = append(got, "completed") },
			)
			Error[int](errBoom).SubscribeNextError(
				func(int) { got = append(got, "next") },
				func(err error) { got = append(got, err.Error()) },
			)
			Empty[int]().SubscribeErrorCompleted(
				func(error) { got = append(got, "error") },
				func() { got = append(got, "empty") },
			)
			Error[int](errBoom).SubscribeError(func(err error) { got = append(got, "error") })

			assert.Equal(t, []string{"next", "next", "completed", "boom", "empty", "error"}, got)
		})
	})

	t.Run("typed subscriber", func(t *testing.T) {
		var values []int
		var completed bool
		sub := NewSubscriber(func(v int) { values = append(values, v) }, nil, func() { completed = true })

		Run(func() {
			FromSlice(4, 5).Subscribe(sub)
		})

		assert.Equal(t, []int{4, 5}, values)
		assert.True(t, completed)
	})

	t.Run("nil values", func(t *testing.T) {
		values, err := FromSlice[error](nil, errBoom).ToSlice()
		require.NoError(t, err)
		assert.Nil(t, values[0])
		assert.True(t, errors.Is(values[1], errBoom))
	})
}
