package executor

import (
	"testing"

	language "github.com/hanpama/reactivegraphql/internal/language"
	schema "github.com/hanpama/reactivegraphql/internal/schema"
	stream "github.com/hanpama/reactivegraphql/internal/stream"
)

// mustParseQuery parses a GraphQL query and fails the test on error.
func mustParseQuery(t *testing.T, q string) *language.QueryDocument {
	t.Helper()
	d, err := language.ParseQuery(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return d
}

// mustBuildSchema builds a schema from SDL and resolvers, failing the test on
// error.
func mustBuildSchema(t *testing.T, sdl string, resolvers map[string]schema.ResolverFunc) *schema.Schema {
	t.Helper()
	s, err := schema.BuildFromSDL(sdl, resolvers)
	if err != nil {
		t.Fatalf("schema error: %v", err)
	}
	return s
}

// resultRecorder captures every signal of a result stream, with envelopes
// flattened to plain nested maps for comparison.
type resultRecorder struct {
	envelopes []map[string]any
	err       error
	completed bool
}

func subscribeResults(s stream.Stream[*Result]) (*resultRecorder, stream.Subscription) {
	rec := &resultRecorder{}
	sub := s.Subscribe(stream.Observer[*Result]{
		Next:     func(r *Result) { rec.envelopes = append(rec.envelopes, map[string]any{"data": r.Data.ToMap()}) },
		Err:      func(err error) { rec.err = err },
		Complete: func() { rec.completed = true },
	})
	return rec, sub
}

func (r *resultRecorder) latest(t *testing.T) map[string]any {
	t.Helper()
	if len(r.envelopes) == 0 {
		t.Fatalf("no envelope emitted (err=%v, completed=%v)", r.err, r.completed)
	}
	return r.envelopes[len(r.envelopes)-1]
}
