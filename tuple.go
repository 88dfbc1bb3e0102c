package rx

import "github.com/AnatoleLucet/rx/internal"

// Tuple is an immutable ordered list of values, the payload of
// multi-input combinators. Nil entries read back as nil.
type Tuple = internal.Tuple

// TupleNil stands for a nil entry inside a Tuple.
type TupleNil = internal.TupleNil

// Unit is the value of signals that only signal that something happened.
type Unit = internal.Unit

func Pack(values ...any) Tuple { return internal.Pack(values...) }

// Event is a materialized signal event.
type Event = internal.Event

type EventKind = internal.EventKind

const (
	EventNext      = internal.EventNext
	EventError     = internal.EventError
	EventCompleted = internal.EventCompleted
)

func NextEvent(value any) Event { return internal.NextEvent(value) }

func ErrorEvent(err error) Event { return internal.ErrorEvent(err) }

func CompletedEvent() Event { return internal.CompletedEvent() }
