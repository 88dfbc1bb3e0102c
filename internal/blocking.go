package internal

import "sync"

// The functions below block the calling goroutine until the signal
// terminates. They deadlock if the signal needs the scheduler the caller is
// running on.

// FirstOrDefault waits for the first value. ok is false when the signal
// completed or failed without one.
func FirstOrDefault(s Stream, defaultValue any) (value any, ok bool, err error) {
	var once sync.Once
	done := make(chan struct{})
	value = defaultValue

	d := Take(s, 1).Subscribe(NewSubscriber(func(v any) {
		once.Do(func() {
			value, ok = v, true
			close(done)
		})
	}, func(e error) {
		once.Do(func() {
			err = e
			close(done)
		})
	}, func() {
		once.Do(func() { close(done) })
	}))

	<-done
	d.Dispose()

	return value, ok, err
}

// First waits for the first value, failing with ErrNoValue on an empty signal.
func First(s Stream) (any, error) {
	value, ok, err := FirstOrDefault(s, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoValue
	}

	return value, nil
}

// WaitUntilCompleted waits for the signal to terminate and returns its error, if any.
func WaitUntilCompleted(s Stream) error {
	_, _, err := FirstOrDefault(Then(s, func() Stream { return Return(Unit{}) }), nil)
	return err
}

// ToSlice waits for the signal to complete and returns every value it sent.
func ToSlice(s Stream) ([]any, error) {
	value, err := First(Collect(s))
	if err != nil {
		return nil, err
	}

	return value.([]any), nil
}
