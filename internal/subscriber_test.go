package internal

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriber(t *testing.T) {
	t.Run("nothing after a terminal event", func(t *testing.T) {
		var (
			values    []any
			errs      []error
			completed int
		)
		s := NewSubscriber(
			func(v any) { values = append(values, v) },
			func(err error) { errs = append(errs, err) },
			func() { completed++ },
		)

		s.SendNext(1)
		s.SendCompleted()
		s.SendNext(2)
		s.SendError(errors.New("late"))
		s.SendCompleted()

		assert.Equal(t, []any{1}, values)
		assert.Empty(t, errs)
		assert.Equal(t, 1, completed)
	})

	t.Run("terminal event disposes the subscription", func(t *testing.T) {
		s := NewSubscriber(nil, nil, nil)
		d := NewCompoundDisposable()
		s.DidSubscribeWith(d)

		s.SendError(errors.New("boom"))
		assert.True(t, d.IsDisposed())
	})

	t.Run("disposing the subscription silences it", func(t *testing.T) {
		var values []any
		s := NewSubscriber(func(v any) { values = append(values, v) }, nil, nil)
		d := NewCompoundDisposable()
		s.DidSubscribeWith(d)

		s.SendNext(1)
		s.(*liveSubscriber).disposable.Dispose()
		s.SendNext(2)

		assert.Equal(t, []any{1}, values)
	})

	t.Run("reentrant send", func(t *testing.T) {
		var values []any
		var s Subscriber
		s = NewSubscriber(func(v any) {
			values = append(values, v)
			if v == 1 {
				s.SendNext(2)
			}
		}, nil, nil)

		s.SendNext(1)
		assert.Equal(t, []any{1, 2}, values)
	})

	t.Run("serializes concurrent sends", func(t *testing.T) {
		var (
			count  int
			inside bool
			racy   bool
		)
		s := NewSubscriber(func(any) {
			if inside {
				racy = true
			}
			inside = true
			count++
			inside = false
		}, nil, nil)

		var wg sync.WaitGroup
		for range 16 {
			wg.Go(func() {
				for range 100 {
					s.SendNext(struct{}{})
				}
			})
		}
		wg.Wait()

		assert.False(t, racy)
		assert.Equal(t, 1600, count)
	})
}

func TestPassthroughSubscriber(t *testing.T) {
	var values []any
	inner := NewSubscriber(func(v any) { values = append(values, v) }, nil, nil)
	disposable := NewCompoundDisposable()
	p := newPassthroughSubscriber(inner, Never(), disposable)

	p.SendNext(1)
	disposable.Dispose()
	p.SendNext(2)

	assert.Equal(t, []any{1}, values)

	d := NewDisposable(nil)
	p.DidSubscribeWith(NewCompoundDisposable(d))
	assert.True(t, d.IsDisposed())
}
