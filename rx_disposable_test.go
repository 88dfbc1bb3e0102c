package rx

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisposable(t *testing.T) {
	t.Run("dispose is idempotent", func(t *testing.T) {
		var count atomic.Int32
		d := NewDisposable(func() { count.Add(1) })

		var wg sync.WaitGroup
		for range 100 {
			wg.Go(d.Dispose)
		}
		wg.Wait()
		d.Dispose()

		assert.Equal(t, int32(1), count.Load())
		assert.True(t, d.IsDisposed())
	})

	t.Run("compound add after dispose", func(t *testing.T) {
		c := NewCompoundDisposable()
		c.Dispose()

		var disposed bool
		c.Add(NewDisposable(func() { disposed = true }))

		assert.True(t, disposed)
	})

	t.Run("compound disposes every child once", func(t *testing.T) {
		var count atomic.Int32
		c := NewCompoundDisposable()
		for range 10 {
			c.AddFunc(func() { count.Add(1) })
		}

		var wg sync.WaitGroup
		for range 10 {
			wg.Go(c.Dispose)
		}
		wg.Wait()

		assert.Equal(t, int32(10), count.Load())
	})

	t.Run("serial", func(t *testing.T) {
		first := NewDisposable(nil)
		s := NewSerialDisposable(first)
		s.Swap(NewDisposable(nil)).Dispose()
		assert.True(t, first.IsDisposed())

		s.Dispose()
		assert.True(t, s.Inner() == nil)
		assert.True(t, s.IsDisposed())
	})

	t.Run("scoped", func(t *testing.T) {
		subject := NewSubject[int]()
		var got []int

		func() {
			d := NewScopedDisposable(subject.SubscribeNext(func(v int) { got = append(got, v) }))
			defer d.Close()

			subject.SendNext(1)
		}()
		subject.SendNext(2)

		assert.Equal(t, []int{1}, got)
	})
}
