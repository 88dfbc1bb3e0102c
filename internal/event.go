package internal

import "fmt"

type EventKind int

const (
	EventNext EventKind = iota
	EventError
	EventCompleted
)

func (k EventKind) String() string {
	switch k {
	case EventNext:
		return "next"
	case EventError:
		return "error"
	case EventCompleted:
		return "completed"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one reified signal event, as produced by Materialize.
type Event struct {
	Kind  EventKind
	Value any
	Err   error
}

func NextEvent(value any) Event { return Event{Kind: EventNext, Value: value} }

func ErrorEvent(err error) Event { return Event{Kind: EventError, Err: err} }

func CompletedEvent() Event { return Event{Kind: EventCompleted} }

// IsTerminal reports whether e ends a subscription.
func (e Event) IsTerminal() bool {
	return e.Kind != EventNext
}

func (e Event) String() string {
	switch e.Kind {
	case EventNext:
		return fmt.Sprintf("next %v", e.Value)
	case EventError:
		return fmt.Sprintf("error %v", e.Err)
	}
	return e.Kind.String()
}

func (e Event) sendTo(s Subscriber) {
	switch e.Kind {
	case EventNext:
		s.SendNext(e.Value)
	case EventError:
		s.SendError(e.Err)
	case EventCompleted:
		s.SendCompleted()
	}
}
