package stream

// Map transforms every emission of src with f.
func Map[T, U any](src Stream[T], f func(T) U) Stream[U] {
	return mapped[T, U]{src: src, f: f}
}

type mapped[T, U any] struct {
	src Stream[T]
	f   func(T) U
}

func (s mapped[T, U]) Subscribe(ob Observer[U]) Subscription {
	return s.src.Subscribe(Observer[T]{
		Next:     func(v T) { ob.emit(s.f(v)) },
		Err:      func(err error) { ob.fail(err) },
		Complete: func() { ob.done() },
	})
}

// CombineLatest joins sources with a combine-latest policy: once every source
// has emitted at least once, the tuple of most recent values is re-emitted
// each time any source emits. A source completing before its first emission
// completes the whole stream, since the tuple can never be produced. The
// first error from any source cancels the rest and fails the stream.
//
// With zero sources the stream emits one empty tuple and completes, so callers
// never special-case arity.
func CombineLatest[T any](sources ...Stream[T]) Stream[[]T] {
	return combineLatest[T]{sources: sources}
}

type combineLatest[T any] struct {
	sources []Stream[T]
}

func (s combineLatest[T]) Subscribe(ob Observer[[]T]) Subscription {
	n := len(s.sources)
	if n == 0 {
		ob.emit([]T{})
		ob.done()
		return nopSubscription{}
	}

	st := &combineState[T]{
		latest:    make([]T, n),
		has:       make([]bool, n),
		completed: make([]bool, n),
		subs:      make([]Subscription, n),
	}

	for i := range s.sources {
		if st.done {
			break
		}
		i := i
		sub := s.sources[i].Subscribe(Observer[T]{
			Next: func(v T) {
				if st.done {
					return
				}
				if !st.has[i] {
					st.has[i] = true
					st.haveCount++
				}
				st.latest[i] = v
				if st.haveCount == n {
					tuple := make([]T, n)
					copy(tuple, st.latest)
					ob.emit(tuple)
				}
			},
			Err: func(err error) {
				if st.done {
					return
				}
				st.done = true
				st.unsubscribeAll()
				ob.fail(err)
			},
			Complete: func() {
				if st.done || st.completed[i] {
					return
				}
				st.completed[i] = true
				st.completedCount++
				if !st.has[i] {
					st.done = true
					st.unsubscribeAll()
					ob.done()
					return
				}
				if st.completedCount == n {
					st.done = true
					ob.done()
				}
			},
		})
		// The source may have terminated the whole stream from inside its own
		// Subscribe call, before this handle existed; unsubscribeAll could not
		// reach it then.
		if st.done {
			sub.Unsubscribe()
			break
		}
		st.subs[i] = sub
	}

	return subscriptionFunc(func() {
		if st.done {
			return
		}
		st.done = true
		st.unsubscribeAll()
	})
}

type combineState[T any] struct {
	latest         []T
	has            []bool
	completed      []bool
	subs           []Subscription
	haveCount      int
	completedCount int
	done           bool
}

func (st *combineState[T]) unsubscribeAll() {
	for _, sub := range st.subs {
		if sub != nil {
			sub.Unsubscribe()
		}
	}
}

// SwitchMap projects every emission of src into an inner stream and mirrors
// the most recent inner stream, cancelling the previous one on each outer
// emission. The result completes once both the outer stream and the current
// inner stream have completed; any error on either side fails the stream and
// cancels every live subscription.
func SwitchMap[T, U any](src Stream[T], project func(T) Stream[U]) Stream[U] {
	return switchMapped[T, U]{src: src, project: project}
}

type switchMapped[T, U any] struct {
	src     Stream[T]
	project func(T) Stream[U]
}

func (s switchMapped[T, U]) Subscribe(ob Observer[U]) Subscription {
	st := &switchState{}

	st.outerSub = s.src.Subscribe(Observer[T]{
		Next: func(v T) {
			if st.done {
				return
			}
			st.gen++
			gen := st.gen
			if st.innerSub != nil {
				st.innerSub.Unsubscribe()
				st.innerSub = nil
			}
			st.innerActive = true
			sub := s.project(v).Subscribe(Observer[U]{
				Next: func(u U) {
					if st.done || gen != st.gen {
						return
					}
					ob.emit(u)
				},
				Err: func(err error) {
					if st.done || gen != st.gen {
						return
					}
					st.done = true
					if st.outerSub != nil {
						st.outerSub.Unsubscribe()
					}
					ob.fail(err)
				},
				Complete: func() {
					if st.done || gen != st.gen {
						return
					}
					st.innerActive = false
					if st.outerDone {
						st.done = true
						ob.done()
					}
				},
			})
			// A stale subscription handle after synchronous termination or a
			// newer outer emission must not linger.
			if gen == st.gen && st.innerActive && !st.done {
				st.innerSub = sub
			} else {
				sub.Unsubscribe()
			}
		},
		Err: func(err error) {
			if st.done {
				return
			}
			st.done = true
			if st.innerSub != nil {
				st.innerSub.Unsubscribe()
			}
			ob.fail(err)
		},
		Complete: func() {
			if st.done {
				return
			}
			st.outerDone = true
			if !st.innerActive {
				st.done = true
				ob.done()
			}
		},
	})
	// A synchronous outer emission (behavior replay) whose inner stream
	// terminated everything leaves st.done set before the outer handle is
	// assigned; the Err path could not release it then.
	if st.done {
		st.outerSub.Unsubscribe()
	}

	return subscriptionFunc(func() {
		if st.done {
			return
		}
		st.done = true
		if st.innerSub != nil {
			st.innerSub.Unsubscribe()
		}
		if st.outerSub != nil {
			st.outerSub.Unsubscribe()
		}
	})
}

type switchState struct {
	outerSub    Subscription
	innerSub    Subscription
	gen         int
	innerActive bool
	outerDone   bool
	done        bool
}
