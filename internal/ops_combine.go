package internal

// CombineLatest sends a Tuple of the latest value of every signal each time
// any of them sends, once all have sent at least once. It completes when all
// have completed, or as soon as one completes without ever sending. No
// signals complete right away.
func CombineLatest(streams ...Stream) *Signal {
	if len(streams) == 0 {
		return Empty().SetName("+combineLatest: 0 signals")
	}

	return Create(func(out Subscriber) Disposable {
		n := len(streams)
		disposable := NewCompoundDisposable()

		// recursive, so a subscriber reacting synchronously can feed an input
		var lock recursiveMutex
		latest := make([]any, n)
		sent := make([]bool, n)
		ready := 0
		completed := 0

		for i, s := range streams {
			disposable.Add(s.Subscribe(follow(out, func(value any) {
				lock.Lock()
				defer lock.Unlock()

				if !sent[i] {
					sent[i] = true
					ready++
				}
				latest[i] = value

				if ready == n {
					out.SendNext(Pack(latest...))
				}
			}, out.SendError, func() {
				lock.Lock()
				defer lock.Unlock()

				completed++
				if !sent[i] || completed == n {
					out.SendCompleted()
				}
			})))
		}

		return disposable
	}).SetName("+combineLatest: %d signals", len(streams))
}

// CombineLatestReduce is CombineLatest followed by ReduceEach.
func CombineLatestReduce(reduce func(Tuple) any, streams ...Stream) *Signal {
	return ReduceEach(CombineLatest(streams...), reduce)
}

// Zip pairs the nth values of every signal into a Tuple. It completes as soon
// as one signal has completed and every value it sent has been zipped. No
// signals complete right away.
func Zip(streams ...Stream) *Signal {
	if len(streams) == 0 {
		return Empty().SetName("+zip: 0 signals")
	}

	return Create(func(out Subscriber) Disposable {
		n := len(streams)
		disposable := NewCompoundDisposable()

		var lock recursiveMutex
		queues := make([][]any, n)
		completed := make([]bool, n)
		done := false

		// exhausted reports whether some completed signal has nothing left to pair.
		exhausted := func() bool {
			for i := range n {
				if completed[i] && len(queues[i]) == 0 {
					return true
				}
			}
			return false
		}

		flush := func() {
			for !done {
				for i := range n {
					if len(queues[i]) == 0 {
						if exhausted() {
							done = true
							out.SendCompleted()
						}
						return
					}
				}

				values := make([]any, n)
				for i := range n {
					values[i] = queues[i][0]
					queues[i][0] = nil
					queues[i] = queues[i][1:]
				}
				out.SendNext(Pack(values...))
			}
		}

		for i, s := range streams {
			disposable.Add(s.Subscribe(follow(out, func(value any) {
				lock.Lock()
				defer lock.Unlock()

				queues[i] = append(queues[i], value)
				flush()
			}, out.SendError, func() {
				lock.Lock()
				defer lock.Unlock()

				completed[i] = true
				flush()
			})))
		}

		return disposable
	}).SetName("+zip: %d signals", len(streams))
}

// ZipReduce is Zip followed by ReduceEach.
func ZipReduce(reduce func(Tuple) any, streams ...Stream) *Signal {
	return ReduceEach(Zip(streams...), reduce)
}
