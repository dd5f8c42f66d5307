// Package stream provides the push-based value stream primitive the query
// engine is built on: a minimal observable with combine-latest and switch-map
// combination and explicit cancellation.
//
// Delivery model: emissions are delivered synchronously on the goroutine that
// produces them, in production order. Operators hold no locks and assume a
// single cooperative producer goroutine; only Subject guards its subscriber
// list so that subscriptions may be created from other goroutines.
package stream

// Stream is a push-based, possibly infinite sequence of values over time.
type Stream[T any] interface {
	// Subscribe attaches ob and returns a handle that cancels the
	// subscription and everything it transitively subscribed to.
	Subscribe(ob Observer[T]) Subscription
}

// Observer receives stream signals. Any callback may be nil.
// After Err or Complete has been called, no further signals are delivered.
type Observer[T any] struct {
	Next     func(T)
	Err      func(error)
	Complete func()
}

func (ob Observer[T]) emit(v T) {
	if ob.Next != nil {
		ob.Next(v)
	}
}

func (ob Observer[T]) fail(err error) {
	if ob.Err != nil {
		ob.Err(err)
	}
}

func (ob Observer[T]) done() {
	if ob.Complete != nil {
		ob.Complete()
	}
}

// Subscription cancels an active subscription. Unsubscribe is idempotent.
type Subscription interface {
	Unsubscribe()
}

type subscriptionFunc func()

func (f subscriptionFunc) Unsubscribe() {
	if f != nil {
		f()
	}
}

type nopSubscription struct{}

func (nopSubscription) Unsubscribe() {}

// Just returns a stream that emits v once and completes.
func Just[T any](v T) Stream[T] { return just[T]{v} }

type just[T any] struct{ value T }

func (s just[T]) Subscribe(ob Observer[T]) Subscription {
	ob.emit(s.value)
	ob.done()
	return nopSubscription{}
}

// Fail returns a stream that errors with err on subscription.
func Fail[T any](err error) Stream[T] { return failed[T]{err} }

type failed[T any] struct{ err error }

func (s failed[T]) Subscribe(ob Observer[T]) Subscription {
	ob.fail(s.err)
	return nopSubscription{}
}

// Empty returns a stream that completes without emitting.
func Empty[T any]() Stream[T] { return empty[T]{} }

type empty[T any] struct{}

func (empty[T]) Subscribe(ob Observer[T]) Subscription {
	ob.done()
	return nopSubscription{}
}
