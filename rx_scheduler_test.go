package rx

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// on runs fn as a block of s, now.
func on(s *TestScheduler, fn func()) {
	s.Schedule(fn)
	s.Advance(0)
}

func TestThrottle(t *testing.T) {
	t.Run("coalesces bursts", func(t *testing.T) {
		ts := NewTestScheduler()
		subject := NewSubject[int]()
		var r *recorder[int]

		on(ts, func() {
			r = record(subject.Throttle(100 * time.Millisecond))
			subject.SendNext(1)
			subject.SendNext(2)
			subject.SendNext(3)
		})
		assert.Empty(t, r.Values())

		ts.Advance(99 * time.Millisecond)
		assert.Empty(t, r.Values())

		ts.Advance(time.Millisecond)
		assert.Equal(t, []int{3}, r.Values())

		ts.Advance(time.Second)
		assert.Equal(t, []int{3}, r.Values())
	})

	t.Run("completion flushes the held value", func(t *testing.T) {
		ts := NewTestScheduler()
		subject := NewSubject[int]()
		var r *recorder[int]

		on(ts, func() {
			r = record(subject.Throttle(time.Second))
			subject.SendNext(1)
			subject.SendCompleted()
		})

		assert.Equal(t, []int{1}, r.Values())
		assert.True(t, r.Completed())
	})

	t.Run("errors are not delayed", func(t *testing.T) {
		ts := NewTestScheduler()
		subject := NewSubject[int]()
		var r *recorder[int]

		on(ts, func() {
			r = record(subject.Throttle(time.Second))
			subject.SendNext(1)
			subject.SendError(errBoom)
		})

		assert.Empty(t, r.Values())
		assert.ErrorIs(t, r.Err(), errBoom)

		ts.Advance(time.Second)
		assert.Empty(t, r.Values())
	})

	t.Run("where", func(t *testing.T) {
		ts := NewTestScheduler()
		subject := NewSubject[int]()
		var r *recorder[int]

		on(ts, func() {
			r = record(subject.ThrottleWhere(time.Second, func(v int) bool { return v%2 == 0 }))
			subject.SendNext(2)
			subject.SendNext(3)
			subject.SendNext(4)
		})
		assert.Equal(t, []int{3}, r.Values())

		ts.Advance(time.Second)
		assert.Equal(t, []int{3, 4}, r.Values())
	})

	t.Run("real time", func(t *testing.T) {
		subject := NewSubject[int]()
		done := make(chan []int)
		go func() {
			values, _ := subject.Throttle(50 * time.Millisecond).Take(1).ToSlice()
			done <- values
		}()

		time.Sleep(20 * time.Millisecond)
		for i := range 3 {
			subject.SendNext(i + 1)
		}

		assert.Equal(t, []int{3}, <-done)
	})
}

func TestTimeOperators(t *testing.T) {
	t.Run("delay", func(t *testing.T) {
		ts := NewTestScheduler()
		var r *recorder[int]

		on(ts, func() { r = record(FromSlice(1, 2).Delay(time.Second)) })
		assert.Empty(t, r.Values())

		ts.Advance(time.Second)
		assert.Equal(t, []int{1, 2}, r.Values())
		assert.True(t, r.Completed())
	})

	t.Run("timeout", func(t *testing.T) {
		ts := NewTestScheduler()
		subject := NewSubject[int]()
		var r *recorder[int]

		on(ts, func() { r = record(subject.Timeout(time.Second, ts)) })

		ts.Advance(900 * time.Millisecond)
		subject.SendNext(1)
		ts.Advance(900 * time.Millisecond)
		assert.NoError(t, r.Err(), "every event restarts the timer")

		ts.Advance(100 * time.Millisecond)
		assert.ErrorIs(t, r.Err(), ErrTimeout)
		assert.Equal(t, []int{1}, r.Values())
	})

	t.Run("timeout disposes the source", func(t *testing.T) {
		ts := NewTestScheduler()
		var disposed bool
		s := Create(func(out Subscriber[int]) Disposable {
			return NewDisposable(func() { disposed = true })
		})

		on(ts, func() { record(s.Timeout(time.Second, ts)) })
		ts.Advance(time.Second)

		assert.True(t, disposed)
	})

	t.Run("interval", func(t *testing.T) {
		ts := NewTestScheduler()
		start := ts.Now()
		var r *recorder[time.Time]

		on(ts, func() { r = record(Interval(time.Second, ts).Take(3)) })
		ts.Advance(5 * time.Second)

		assert.Equal(t, []time.Time{
			start.Add(time.Second),
			start.Add(2 * time.Second),
			start.Add(3 * time.Second),
		}, r.Values())
		assert.True(t, r.Completed())
		assert.Zero(t, ts.Pending())
	})

	t.Run("buffer with time", func(t *testing.T) {
		ts := NewTestScheduler()
		subject := NewSubject[int]()
		var r *recorder[Tuple]

		on(ts, func() {
			r = record(BufferWithTime(subject.Signal, time.Second, ts))
			subject.SendNext(1)
			subject.SendNext(2)
		})
		ts.Advance(time.Second)
		subject.SendNext(3)
		subject.SendCompleted()

		assertTuples(t, []Tuple{Pack(1, 2), Pack(3)}, r.Values())
		assert.True(t, r.Completed())
	})

	t.Run("deliver on", func(t *testing.T) {
		q := NewQueueScheduler("deliver")
		defer q.Stop()

		var (
			mu         sync.Mutex
			schedulers []Scheduler
		)
		err := FromSlice(1, 2).DeliverOn(q).DoNext(func(int) {
			mu.Lock()
			schedulers = append(schedulers, Current())
			mu.Unlock()
		}).WaitUntilCompleted()
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, schedulers, 2)
		for _, s := range schedulers {
			assert.Same(t, q, s)
		}
	})

	t.Run("subscribe on", func(t *testing.T) {
		q := NewQueueScheduler("subscribe")
		defer q.Stop()

		current := make(chan Scheduler, 1)
		s := Create(func(out Subscriber[int]) Disposable {
			current <- Current()
			out.SendCompleted()
			return nil
		})

		require.NoError(t, s.SubscribeOn(q).WaitUntilCompleted())
		assert.Same(t, q, <-current)
	})
}

func TestSchedulers(t *testing.T) {
	t.Run("run makes subscriptions synchronous", func(t *testing.T) {
		var got []int
		Run(func() {
			FromSlice(1, 2).SubscribeNext(func(v int) { got = append(got, v) })
			assert.Equal(t, []int{1, 2}, got)
			assert.Same(t, CurrentQueue(), Current())
		})
		assert.Nil(t, Current())
	})

	t.Run("main", func(t *testing.T) {
		current := make(chan Scheduler, 1)
		Main().Schedule(func() { current <- Current() })
		assert.Same(t, Main(), <-current)
	})

	t.Run("recursive", func(t *testing.T) {
		ts := NewTestScheduler()
		var count int
		ScheduleRecursive(ts, func(reschedule func()) {
			count++
			if count < 3 {
				reschedule()
			}
		})
		ts.StepAll()

		assert.Equal(t, 3, count)
	})

	t.Run("immediate", func(t *testing.T) {
		var ran bool
		Immediate().Schedule(func() { ran = true })
		assert.True(t, ran)
	})
}
