package stream

import (
	"context"
	"errors"
)

// ErrNoValue is returned by First when the stream completes without emitting.
var ErrNoValue = errors.New("stream: completed without a value")

// First blocks until s produces its first value, errors, completes, or ctx is
// cancelled, then unsubscribes. It is the bridge from the reactive engine to
// single-shot consumers such as the HTTP handler.
func First[T any](ctx context.Context, s Stream[T]) (T, error) {
	type outcome struct {
		value T
		err   error
	}
	ch := make(chan outcome, 1)
	sub := s.Subscribe(Observer[T]{
		Next: func(v T) {
			select {
			case ch <- outcome{value: v}:
			default:
			}
		},
		Err: func(err error) {
			select {
			case ch <- outcome{err: err}:
			default:
			}
		},
		Complete: func() {
			select {
			case ch <- outcome{err: ErrNoValue}:
			default:
			}
		},
	})
	defer sub.Unsubscribe()

	select {
	case out := <-ch:
		return out.value, out.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
