package rx

import "github.com/AnatoleLucet/rx/internal"

// CombineLatest sends a tuple of the latest value of every source each time
// one of them sends, starting once all of them have sent. No sources
// complete at once.
func CombineLatest(srcs ...Source) *Signal[Tuple] {
	return wrap[Tuple](internal.CombineLatest(sources(srcs)...))
}

// CombineLatestReduce is CombineLatest mapped through fn.
func CombineLatestReduce[U any](fn func(Tuple) U, srcs ...Source) *Signal[U] {
	return wrap[U](internal.CombineLatestReduce(func(t Tuple) any { return fn(t) }, sources(srcs)...))
}

// Zip sends the tuple of the nth values of every source, completing once any
// source runs out.
func Zip(srcs ...Source) *Signal[Tuple] {
	return wrap[Tuple](internal.Zip(sources(srcs)...))
}

// ZipReduce is Zip mapped through fn.
func ZipReduce[U any](fn func(Tuple) U, srcs ...Source) *Signal[U] {
	return wrap[U](internal.ZipReduce(func(t Tuple) any { return fn(t) }, sources(srcs)...))
}

// Merge forwards the values of all signals, completing when all have completed.
func Merge[T any](signals ...*Signal[T]) *Signal[T] {
	return wrap[T](internal.Merge(streams(signals)...))
}

// Concat subscribes to each signal after the previous one completes.
func Concat[T any](signals ...*Signal[T]) *Signal[T] {
	return wrap[T](internal.Concat(streams(signals)...))
}

func unwrapInner[T any](s *Signal[*Signal[T]]) internal.Stream {
	return internal.Map(s.s, func(v any) any { return v.(*Signal[T]).s })
}

// Flatten subscribes to the signals s sends, at most maxConcurrent at a
// time, 0 meaning no limit, and forwards their values.
func Flatten[T any](s *Signal[*Signal[T]], maxConcurrent int) *Signal[T] {
	return wrap[T](internal.Flatten(unwrapInner(s), maxConcurrent))
}

// FlatMap maps every value to a signal and merges them.
func FlatMap[T, U any](s *Signal[T], fn func(T) *Signal[U]) *Signal[U] {
	return wrap[U](internal.FlatMap(s.s, func(v any) internal.Stream { return fn(as[T](v)).s }))
}

// SwitchToLatest forwards the latest signal s sent, dropping the previous one.
func SwitchToLatest[T any](s *Signal[*Signal[T]]) *Signal[T] {
	return wrap[T](internal.SwitchToLatest(unwrapInner(s)))
}

// Then ignores the values of s and continues with next once it completes.
func Then[T, U any](s *Signal[T], next func() *Signal[U]) *Signal[U] {
	return wrap[U](internal.Then(s.s, func() internal.Stream { return next().s }))
}

// Switch forwards the case selected by the latest key, or defaultCase for
// unknown keys. With a nil defaultCase an unknown key fails the signal.
func Switch[K comparable, T any](selector *Signal[K], cases map[K]*Signal[T], defaultCase *Signal[T]) *Signal[T] {
	raw := make(map[any]internal.Stream, len(cases))
	for k, c := range cases {
		raw[k] = c.s
	}

	var def internal.Stream
	if defaultCase != nil {
		def = defaultCase.s
	}

	return wrap[T](internal.Switch(selector.s, raw, def))
}

// If forwards then while condition is true and otherwise while it is false.
func If[T any](condition *Signal[bool], then, otherwise *Signal[T]) *Signal[T] {
	return wrap[T](internal.If(condition.s, then.s, otherwise.s))
}
