package internal

import (
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
)

// Disposable is a handle on cancelable work: a subscription, a scheduled
// block, a timer. Dispose is idempotent and safe from any goroutine.
type Disposable interface {
	Dispose()
	IsDisposed() bool
}

// ActionDisposable runs its action exactly once, on the first Dispose.
type ActionDisposable struct {
	disposed atomic.Bool
	action   func()
}

// NewDisposable returns a disposable running action when disposed.
// A nil action gives a plain cancellation flag.
func NewDisposable(action func()) *ActionDisposable {
	return &ActionDisposable{action: action}
}

func (d *ActionDisposable) Dispose() {
	if !d.disposed.CompareAndSwap(false, true) {
		return
	}

	if d.action != nil {
		d.action()
	}
}

func (d *ActionDisposable) IsDisposed() bool {
	return d.disposed.Load()
}

// CompoundDisposable owns a set of children and disposes all of them, once,
// when it is disposed. Children added afterwards are disposed right away.
type CompoundDisposable struct {
	mu       sync.Mutex
	disposed bool
	children []Disposable
}

func NewCompoundDisposable(children ...Disposable) *CompoundDisposable {
	c := &CompoundDisposable{}
	for _, child := range children {
		if child != nil {
			c.children = append(c.children, child)
		}
	}

	return c
}

func (c *CompoundDisposable) Add(child Disposable) {
	if child == nil {
		return
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		child.Dispose()
		return
	}
	c.children = append(c.children, child)
	c.mu.Unlock()
}

// AddFunc adds a disposable running fn and returns it.
func (c *CompoundDisposable) AddFunc(fn func()) Disposable {
	d := NewDisposable(fn)
	c.Add(d)
	return d
}

// Remove drops child from the set without disposing it.
func (c *CompoundDisposable) Remove(child Disposable) {
	if child == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := slices.Index(c.children, child); i >= 0 {
		c.children = slices.Delete(c.children, i, i+1)
	}
}

func (c *CompoundDisposable) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	children := c.children
	c.children = nil
	c.mu.Unlock()

	// children are disposed outside the lock, a child may reach back into c
	for _, child := range children {
		child.Dispose()
	}
}

func (c *CompoundDisposable) IsDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// SerialDisposable holds one replaceable inner disposable.
type SerialDisposable struct {
	mu       sync.Mutex
	disposed bool
	inner    Disposable
}

func NewSerialDisposable(inner Disposable) *SerialDisposable {
	return &SerialDisposable{inner: inner}
}

// Swap replaces the inner disposable and returns the previous one, which is
// not disposed. Once s is disposed, next is disposed immediately instead.
func (s *SerialDisposable) Swap(next Disposable) Disposable {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		if next != nil {
			next.Dispose()
		}
		return nil
	}

	prev := s.inner
	s.inner = next
	s.mu.Unlock()

	return prev
}

// Set replaces the inner disposable, dropping the previous one.
func (s *SerialDisposable) Set(next Disposable) {
	s.Swap(next)
}

func (s *SerialDisposable) Inner() Disposable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner
}

func (s *SerialDisposable) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	inner := s.inner
	s.inner = nil
	s.mu.Unlock()

	if inner != nil {
		inner.Dispose()
	}
}

func (s *SerialDisposable) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// ScopedDisposable disposes its inner disposable when Close is called, or
// when the scoped handle itself becomes unreachable.
type ScopedDisposable struct {
	state *scopedState
}

type scopedState struct {
	inner Disposable
}

func NewScopedDisposable(inner Disposable) *ScopedDisposable {
	state := &scopedState{inner: inner}
	d := &ScopedDisposable{state: state}

	runtime.AddCleanup(d, func(s *scopedState) {
		s.inner.Dispose()
	}, state)

	return d
}

// Close disposes the inner disposable. It suits defer statements.
func (d *ScopedDisposable) Close() error {
	d.state.inner.Dispose()
	return nil
}

func (d *ScopedDisposable) Dispose() {
	d.state.inner.Dispose()
}

func (d *ScopedDisposable) IsDisposed() bool {
	return d.state.inner.IsDisposed()
}
