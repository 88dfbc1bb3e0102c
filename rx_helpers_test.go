package rx

import (
	"errors"
	"sync"
)

var errBoom = errors.New("boom")

// recorder is a Subscriber keeping every event it receives.
type recorder[T any] struct {
	mu         sync.Mutex
	values     []T
	err        error
	completed  bool
	terminals  int
	disposable *CompoundDisposable
}

func newRecorder[T any]() *recorder[T] {
	return &recorder[T]{disposable: NewCompoundDisposable()}
}

// record subscribes a new recorder to s.
func record[T any](s *Signal[T]) *recorder[T] {
	r := newRecorder[T]()
	s.Subscribe(r)
	return r
}

func (r *recorder[T]) SendNext(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.terminals == 0 {
		r.values = append(r.values, value)
	}
}

func (r *recorder[T]) SendError(err error) {
	r.mu.Lock()
	r.terminals++
	if r.terminals == 1 {
		r.err = err
	}
	r.mu.Unlock()

	r.disposable.Dispose()
}

func (r *recorder[T]) SendCompleted() {
	r.mu.Lock()
	r.terminals++
	if r.terminals == 1 {
		r.completed = true
	}
	r.mu.Unlock()

	r.disposable.Dispose()
}

func (r *recorder[T]) DidSubscribeWith(d *CompoundDisposable) {
	r.disposable.Add(d)
}

func (r *recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}

func (r *recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *recorder[T]) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed
}
