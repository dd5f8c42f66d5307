package executor

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	schema "github.com/hanpama/reactivegraphql/internal/schema"
	stream "github.com/hanpama/reactivegraphql/internal/stream"
)

const shuttleSDL = `
type Query {
  launched(name: String): [Shuttle]
}

type Mutation {
  addShuttle(name: String!): [Shuttle]
}

type Shuttle {
  name: String
}
`

// launchedResolver filters the "launched" data source from the execution
// context by the optional name argument. An absent name applies no filter.
func launchedResolver(parent any, args map[string]any, ctx map[string]any) (any, error) {
	source, ok := ctx["launched"].(stream.Stream[any])
	if !ok {
		return nil, errors.New("no launched data source bound")
	}
	return stream.Map(source, func(v any) any {
		shuttles, _ := v.([]any)
		name, ok := args["name"].(string)
		if !ok || name == "" {
			return any(shuttles)
		}
		matched := []any{}
		for _, s := range shuttles {
			if m, _ := s.(map[string]any); m != nil && m["name"] == name {
				matched = append(matched, m)
			}
		}
		return any(matched)
	}), nil
}

func newShuttleSchema(t *testing.T) *schema.Schema {
	t.Helper()
	return mustBuildSchema(t, shuttleSDL, map[string]schema.ResolverFunc{
		"Query.launched": launchedResolver,
		"Mutation.addShuttle": func(parent any, args map[string]any, ctx map[string]any) (any, error) {
			return []any{
				map[string]any{"name": "discovery"},
				map[string]any{"name": args["name"]},
				map[string]any{"name": "endeavour"},
			}, nil
		},
	})
}

// Shuttles launched, no filter: the source's single emission becomes the
// single envelope.
func TestQuery_UnfilteredSource_Result(t *testing.T) {
	exec := NewExecutor(newShuttleSchema(t))
	doc := mustParseQuery(t, "{ launched { name } }")
	source := stream.NewSubject[any]()

	rec, _ := subscribeResults(exec.ExecuteRequest(doc, "", Bindings{"launched": source}, nil))
	source.Next([]any{map[string]any{"name": "discovery"}})

	want := map[string]any{"data": map[string]any{
		"launched": []any{map[string]any{"name": "discovery"}},
	}}
	if diff := cmp.Diff(want, rec.latest(t)); diff != "" {
		t.Fatalf("envelope mismatch (-want +got):\n%s", diff)
	}
	if rec.err != nil {
		t.Fatalf("unexpected error: %v", rec.err)
	}
}

// Filtering by a live variable keeps only the matching shuttle.
func TestQuery_LiveVariableFilter_Result(t *testing.T) {
	exec := NewExecutor(newShuttleSchema(t))
	doc := mustParseQuery(t, "query($name: String) { launched(name: $name) { name } }")
	source := stream.NewSubject[any]()
	name := stream.NewSubject[any]()

	rec, _ := subscribeResults(exec.ExecuteRequest(doc, "", Bindings{"launched": source, "name": name}, nil))
	name.Next("apollo11")
	source.Next([]any{
		map[string]any{"name": "apollo11"},
		map[string]any{"name": "challenger"},
	})

	want := map[string]any{"data": map[string]any{
		"launched": []any{map[string]any{"name": "apollo11"}},
	}}
	if diff := cmp.Diff(want, rec.latest(t)); diff != "" {
		t.Fatalf("envelope mismatch (-want +got):\n%s", diff)
	}
}

// A parent resolver's context mutation is observed by a descendant resolver.
func TestQuery_ContextMutationAcrossDepth_Result(t *testing.T) {
	sdl := `
type Query {
  nested: Nested
}

type Nested {
  firstFieldResolver: Nesting
}

type Nesting {
  noFieldResolver: String
  secondFieldResolver: String
}
`
	s := mustBuildSchema(t, sdl, map[string]schema.ResolverFunc{
		"Nested.firstFieldResolver": func(parent any, args map[string]any, ctx map[string]any) (any, error) {
			ctx["contextValue"] = " resolvers are great"
			return map[string]any{"noFieldResolver": "nested"}, nil
		},
		"Nesting.secondFieldResolver": func(parent any, args map[string]any, ctx map[string]any) (any, error) {
			p, _ := parent.(map[string]any)
			base, _ := p["noFieldResolver"].(string)
			suffix, _ := ctx["contextValue"].(string)
			return strings.ToUpper(base) + suffix, nil
		},
	})
	exec := NewExecutor(s)
	doc := mustParseQuery(t, "{ nested { firstFieldResolver { noFieldResolver secondFieldResolver } } }")

	rec, _ := subscribeResults(exec.ExecuteRequest(doc, "", nil, nil))

	want := map[string]any{"data": map[string]any{
		"nested": map[string]any{
			"firstFieldResolver": map[string]any{
				"noFieldResolver":     "nested",
				"secondFieldResolver": "NESTED resolvers are great",
			},
		},
	}}
	if diff := cmp.Diff(want, rec.latest(t)); diff != "" {
		t.Fatalf("envelope mismatch (-want +got):\n%s", diff)
	}
	if !rec.completed {
		t.Fatal("expected completion with constant sources")
	}
}

// Querying an undeclared field fails with the exact diagnostic listing the
// declared fields in declaration order.
func TestQuery_UndeclaredField_ExactError(t *testing.T) {
	sdl := `
type Query {
  plain: String
  item: Item
  nested: Item
  throwingResolver: String
}

type Item {
  id: String
}
`
	exec := NewExecutor(mustBuildSchema(t, sdl, nil))
	doc := mustParseQuery(t, "{ youDontKnowMe }")

	rec, _ := subscribeResults(exec.ExecuteRequest(doc, "", nil, nil))
	if rec.err == nil {
		t.Fatal("expected error")
	}
	wantMsg := "reactive-graphql: field 'youDontKnowMe' was not found on type 'Query'. " +
		"The only fields found in this Object are: plain,item,nested,throwingResolver."
	if rec.err.Error() != wantMsg {
		t.Fatalf("error message mismatch:\nwant %q\ngot  %q", wantMsg, rec.err.Error())
	}
	var notFound *FieldNotFoundError
	if !errors.As(rec.err, &notFound) {
		t.Fatalf("expected FieldNotFoundError, got %T", rec.err)
	}
	if len(rec.envelopes) != 0 {
		t.Fatalf("no envelope expected before the error, got %v", rec.envelopes)
	}
}

// A mutation resolver's list literal is reproduced verbatim, including the
// argument-derived element in position.
func TestMutation_ListWithArgumentElement_Result(t *testing.T) {
	exec := NewExecutor(newShuttleSchema(t))
	doc := mustParseQuery(t, `mutation { addShuttle(name: "atlantis") { name } }`)

	rec, _ := subscribeResults(exec.ExecuteRequest(doc, "", nil, nil))

	want := map[string]any{"data": map[string]any{
		"addShuttle": []any{
			map[string]any{"name": "discovery"},
			map[string]any{"name": "atlantis"},
			map[string]any{"name": "endeavour"},
		},
	}}
	if diff := cmp.Diff(want, rec.latest(t)); diff != "" {
		t.Fatalf("envelope mismatch (-want +got):\n%s", diff)
	}
	if !rec.completed {
		t.Fatal("expected completion with constant sources")
	}
}
