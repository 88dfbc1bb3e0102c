package rx

import "github.com/AnatoleLucet/rx/internal"

// Disposable cancels a subscription or a scheduled block. Dispose is
// idempotent and safe from any goroutine.
type Disposable = internal.Disposable

type (
	ActionDisposable   = internal.ActionDisposable
	CompoundDisposable = internal.CompoundDisposable
	SerialDisposable   = internal.SerialDisposable
	ScopedDisposable   = internal.ScopedDisposable
)

// NewDisposable returns a disposable running action once, on first
// disposal. A nil action gives a plain flag.
func NewDisposable(action func()) *ActionDisposable {
	return internal.NewDisposable(action)
}

// NewCompoundDisposable groups children so they are disposed together.
// Children added after disposal are disposed at once.
func NewCompoundDisposable(children ...Disposable) *CompoundDisposable {
	return internal.NewCompoundDisposable(children...)
}

// NewSerialDisposable holds one replaceable inner disposable.
func NewSerialDisposable(inner Disposable) *SerialDisposable {
	return internal.NewSerialDisposable(inner)
}

// NewScopedDisposable disposes inner on Close, or when the returned value
// becomes unreachable.
//
//	d := rx.NewScopedDisposable(sig.SubscribeNext(handle))
//	defer d.Close()
func NewScopedDisposable(inner Disposable) *ScopedDisposable {
	return internal.NewScopedDisposable(inner)
}
