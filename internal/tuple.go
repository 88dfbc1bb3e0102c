package internal

import (
	"fmt"
	"reflect"
	"strings"
)

// TupleNil stands in for nil inside a Tuple, so a nil value is never
// confused with a missing one.
type TupleNil struct{}

func (TupleNil) String() string { return "nil" }

// Tuple is a fixed-size, immutable, ordered group of values.
type Tuple struct {
	values []any
}

// Pack builds a tuple, storing nil values as TupleNil.
func Pack(values ...any) Tuple {
	packed := make([]any, len(values))
	for i, v := range values {
		if v == nil {
			v = TupleNil{}
		}
		packed[i] = v
	}

	return Tuple{values: packed}
}

func (t Tuple) Len() int { return len(t.values) }

// At returns the value at i, with TupleNil turned back into nil. Out of
// range indexes return nil.
func (t Tuple) At(i int) any {
	if i < 0 || i >= len(t.values) {
		return nil
	}
	if _, ok := t.values[i].(TupleNil); ok {
		return nil
	}

	return t.values[i]
}

func (t Tuple) First() any  { return t.At(0) }
func (t Tuple) Second() any { return t.At(1) }
func (t Tuple) Third() any  { return t.At(2) }
func (t Tuple) Last() any   { return t.At(len(t.values) - 1) }

// Values returns the tuple's values with nils restored.
func (t Tuple) Values() []any {
	out := make([]any, len(t.values))
	for i := range t.values {
		out[i] = t.At(i)
	}

	return out
}

// Equal compares two tuples element by element.
func (t Tuple) Equal(other Tuple) bool {
	return reflect.DeepEqual(t.values, other.values)
}

func (t Tuple) String() string {
	parts := make([]string, len(t.values))
	for i, v := range t.values {
		parts[i] = fmt.Sprint(v)
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// Unit is the value of signals that only carry the fact that something happened.
type Unit struct{}
