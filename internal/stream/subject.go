package stream

import "sync"

// Subject is a hot multicast stream fed imperatively through Next, Fail and
// Complete. A behavior subject additionally replays its latest value to every
// new subscriber.
type Subject[T any] struct {
	mu      sync.Mutex
	subs    map[int]Observer[T]
	nextID  int
	closed  bool
	err     error
	replay  bool
	hasLast bool
	last    T
}

// NewSubject creates a subject that delivers only values pushed after
// subscription.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{subs: make(map[int]Observer[T])}
}

// NewBehaviorSubject creates a subject seeded with initial; every subscriber
// immediately receives the most recently pushed value.
func NewBehaviorSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{
		subs:    make(map[int]Observer[T]),
		replay:  true,
		hasLast: true,
		last:    initial,
	}
}

func (s *Subject[T]) Subscribe(ob Observer[T]) Subscription {
	s.mu.Lock()
	if s.closed {
		err := s.err
		s.mu.Unlock()
		if err != nil {
			ob.fail(err)
		} else {
			ob.done()
		}
		return nopSubscription{}
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = ob
	doReplay := s.replay && s.hasLast
	replayed := s.last
	s.mu.Unlock()

	if doReplay {
		ob.emit(replayed)
	}
	return subscriptionFunc(func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	})
}

// Next pushes v to all current subscribers.
func (s *Subject[T]) Next(v T) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.last = v
	s.hasLast = true
	obs := s.snapshotLocked()
	s.mu.Unlock()

	for _, ob := range obs {
		ob.emit(v)
	}
}

// Fail terminates the subject with err.
func (s *Subject[T]) Fail(err error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.err = err
	obs := s.snapshotLocked()
	s.subs = nil
	s.mu.Unlock()

	for _, ob := range obs {
		ob.fail(err)
	}
}

// Complete terminates the subject normally.
func (s *Subject[T]) Complete() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	obs := s.snapshotLocked()
	s.subs = nil
	s.mu.Unlock()

	for _, ob := range obs {
		ob.done()
	}
}

// SubscriberCount reports the number of live subscriptions.
func (s *Subject[T]) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// snapshotLocked copies subscribers in registration order so delivery happens
// outside the lock and reentrant (un)subscription cannot corrupt iteration.
func (s *Subject[T]) snapshotLocked() []Observer[T] {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	// insertion order == ascending id
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	obs := make([]Observer[T], len(ids))
	for i, id := range ids {
		obs[i] = s.subs[id]
	}
	return obs
}
