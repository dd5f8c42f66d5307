package executor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	schema "github.com/hanpama/reactivegraphql/internal/schema"
	stream "github.com/hanpama/reactivegraphql/internal/stream"
)

// Every emission of a live source recomputes the whole envelope.
func TestReactive_SourceReemission_RecomputesEnvelope(t *testing.T) {
	exec := NewExecutor(newShuttleSchema(t))
	doc := mustParseQuery(t, "{ launched { name } }")
	source := stream.NewSubject[any]()

	rec, _ := subscribeResults(exec.ExecuteRequest(doc, "", Bindings{"launched": source}, nil))
	source.Next([]any{map[string]any{"name": "columbia"}})
	source.Next([]any{
		map[string]any{"name": "columbia"},
		map[string]any{"name": "atlantis"},
	})

	if len(rec.envelopes) != 2 {
		t.Fatalf("expected 2 envelopes, got %d", len(rec.envelopes))
	}
	want := map[string]any{"data": map[string]any{
		"launched": []any{
			map[string]any{"name": "columbia"},
			map[string]any{"name": "atlantis"},
		},
	}}
	if diff := cmp.Diff(want, rec.latest(t)); diff != "" {
		t.Fatalf("latest envelope mismatch (-want +got):\n%s", diff)
	}
}

// A live argument update re-applies the filter against the latest source
// emission. The source is a behavior subject: each resolver re-invocation
// resubscribes it, and without replay the new subscription would stall until
// the next source push.
func TestReactive_LiveArgumentUpdate_Refilters(t *testing.T) {
	exec := NewExecutor(newShuttleSchema(t))
	doc := mustParseQuery(t, "query($name: String) { launched(name: $name) { name } }")
	source := stream.NewBehaviorSubject[any]([]any{
		map[string]any{"name": "apollo11"},
		map[string]any{"name": "challenger"},
	})
	name := stream.NewSubject[any]()

	rec, _ := subscribeResults(exec.ExecuteRequest(doc, "", Bindings{"launched": source, "name": name}, nil))
	name.Next("challenger")
	name.Next("apollo11")

	if len(rec.envelopes) != 2 {
		t.Fatalf("expected 2 envelopes, got %d", len(rec.envelopes))
	}
	first := map[string]any{"data": map[string]any{
		"launched": []any{map[string]any{"name": "challenger"}},
	}}
	if diff := cmp.Diff(first, rec.envelopes[0]); diff != "" {
		t.Fatalf("first envelope mismatch (-want +got):\n%s", diff)
	}
	second := map[string]any{"data": map[string]any{
		"launched": []any{map[string]any{"name": "apollo11"}},
	}}
	if diff := cmp.Diff(second, rec.envelopes[1]); diff != "" {
		t.Fatalf("second envelope mismatch (-want +got):\n%s", diff)
	}
}

// An initial value stream drives full recomputation through default
// resolution, with no resolvers involved.
func TestReactive_LiveInitialValue_Result(t *testing.T) {
	sdl := `
type Query {
  greeting: String
  count: Int
}
`
	exec := NewExecutor(mustBuildSchema(t, sdl, nil))
	doc := mustParseQuery(t, "{ greeting count }")
	root := stream.NewBehaviorSubject[any](map[string]any{"greeting": "hi", "count": 1})

	rec, _ := subscribeResults(exec.ExecuteRequest(doc, "", nil, root))
	root.Next(map[string]any{"greeting": "hello", "count": 2})

	// One root emission, one envelope: both sibling fields read the same root
	// value, so no envelope may mix fields from different root emissions.
	want := []map[string]any{
		{"data": map[string]any{"greeting": "hi", "count": 1}},
		{"data": map[string]any{"greeting": "hello", "count": 2}},
	}
	if diff := cmp.Diff(want, rec.envelopes); diff != "" {
		t.Fatalf("envelope sequence mismatch (-want +got):\n%s", diff)
	}
}

// Unsubscribing the result stream leaves no dangling subscription on any
// bound source or resolver-returned stream.
func TestReactive_Unsubscribe_CancelsEverything(t *testing.T) {
	resolverStream := stream.NewSubject[any]()
	sdl := `
type Query {
  ticker: String
  launched(name: String): [Shuttle]
}

type Shuttle {
  name: String
}
`
	s := mustBuildSchema(t, sdl, map[string]schema.ResolverFunc{
		"Query.ticker": func(any, map[string]any, map[string]any) (any, error) {
			return resolverStream, nil
		},
		"Query.launched": launchedResolver,
	})
	exec := NewExecutor(s)
	doc := mustParseQuery(t, "query($name: String) { ticker launched(name: $name) { name } }")
	source := stream.NewSubject[any]()
	name := stream.NewSubject[any]()

	rec, sub := subscribeResults(exec.ExecuteRequest(doc, "", Bindings{"launched": source, "name": name}, nil))
	if resolverStream.SubscriberCount() == 0 {
		t.Fatal("resolver stream should be subscribed while execution is live")
	}
	sub.Unsubscribe()

	if resolverStream.SubscriberCount() != 0 {
		t.Fatalf("resolver stream: %d dangling subscriptions", resolverStream.SubscriberCount())
	}
	if source.SubscriberCount() != 0 {
		t.Fatalf("source: %d dangling subscriptions", source.SubscriberCount())
	}
	if name.SubscriberCount() != 0 {
		t.Fatalf("variable: %d dangling subscriptions", name.SubscriberCount())
	}
	if rec.err != nil || rec.completed {
		t.Fatalf("no terminal signal expected after unsubscribe: err=%v completed=%v", rec.err, rec.completed)
	}
}

// A throwing resolver over a live root terminates the stream and releases the
// root subscription, with and without an explicit unsubscribe afterwards.
func TestReactive_ResolverErrorOnLiveRoot_ReleasesRoot(t *testing.T) {
	sdl := `
type Query {
  boom: String
}
`
	s := mustBuildSchema(t, sdl, map[string]schema.ResolverFunc{
		"Query.boom": func(any, map[string]any, map[string]any) (any, error) {
			return nil, errors.New("boom")
		},
	})
	exec := NewExecutor(s)
	doc := mustParseQuery(t, "{ boom }")
	root := stream.NewBehaviorSubject[any](map[string]any{})

	rec, sub := subscribeResults(exec.ExecuteRequest(doc, "", nil, root))
	if rec.err == nil {
		t.Fatal("expected resolver error")
	}
	sub.Unsubscribe()

	if root.SubscriberCount() != 0 {
		t.Fatalf("root source: %d dangling subscriptions after error", root.SubscriberCount())
	}
}

// A source that never emits stalls the first envelope without erroring; the
// merged object only exists once every field has a value.
func TestReactive_SilentSource_StallsFirstEnvelope(t *testing.T) {
	exec := NewExecutor(newShuttleSchema(t))
	doc := mustParseQuery(t, "{ launched { name } }")
	silent := stream.NewSubject[any]()

	rec, _ := subscribeResults(exec.ExecuteRequest(doc, "", Bindings{"launched": silent}, nil))
	if len(rec.envelopes) != 0 || rec.err != nil || rec.completed {
		t.Fatalf("expected no signals, got envelopes=%v err=%v completed=%v", rec.envelopes, rec.err, rec.completed)
	}
}

// An empty collection still produces an envelope: the per-element join of a
// zero-length list emits an empty list immediately.
func TestReactive_EmptyList_Result(t *testing.T) {
	exec := NewExecutor(newShuttleSchema(t))
	doc := mustParseQuery(t, "{ launched { name } }")
	source := stream.NewSubject[any]()

	rec, _ := subscribeResults(exec.ExecuteRequest(doc, "", Bindings{"launched": source}, nil))
	source.Next([]any{})

	want := map[string]any{"data": map[string]any{"launched": []any{}}}
	if diff := cmp.Diff(want, rec.latest(t)); diff != "" {
		t.Fatalf("envelope mismatch (-want +got):\n%s", diff)
	}
}
