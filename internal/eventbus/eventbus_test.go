package eventbus

import (
	"context"
	"testing"
)

type ping struct{ n int }

func TestSubscribePublish(t *testing.T) {
	Use(New())
	defer Use(nil)

	var got []int
	unsub := Subscribe(func(_ context.Context, e ping) { got = append(got, e.n) })

	Publish(context.Background(), ping{1})
	Publish(context.Background(), ping{2})
	unsub()
	Publish(context.Background(), ping{3})

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("expected [1 2], got %v", got)
	}
}

func TestNilBusIsSilent(t *testing.T) {
	Use(nil)
	unsub := Subscribe(func(context.Context, ping) { t.Fatal("handler on nil bus") })
	Publish(context.Background(), ping{1})
	unsub()
}
