package rx

import "github.com/AnatoleLucet/rx/internal"

// First blocks until s sends its first value. It fails with ErrNoValue when
// s completes empty. Calling it from a block of a scheduler s depends on
// deadlocks.
func (s *Signal[T]) First() (T, error) {
	v, err := internal.First(s.s)
	return as[T](v), err
}

// FirstOrDefault blocks until s sends its first value, returning
// defaultValue when it terminates without one.
func (s *Signal[T]) FirstOrDefault(defaultValue T) (value T, ok bool, err error) {
	v, ok, err := internal.FirstOrDefault(s.s, defaultValue)
	return as[T](v), ok, err
}

// WaitUntilCompleted blocks until s terminates and returns its error.
func (s *Signal[T]) WaitUntilCompleted() error {
	return internal.WaitUntilCompleted(s.s)
}

// ToSlice blocks until s completes and returns everything it sent.
func (s *Signal[T]) ToSlice() ([]T, error) {
	values, err := internal.ToSlice(s.s)
	if err != nil {
		return nil, err
	}

	out := make([]T, len(values))
	for i, v := range values {
		out[i] = as[T](v)
	}
	return out, nil
}
