package executor

import (
	"reflect"
	"strconv"
	"strings"

	language "github.com/hanpama/reactivegraphql/internal/language"
	stream "github.com/hanpama/reactivegraphql/internal/stream"
)

// liftValue lifts a resolver- or binding-supplied value into a stream: an
// already-live stream passes through, anything else becomes a single-emission
// constant stream.
func liftValue(v any) stream.Stream[any] {
	if s, ok := v.(stream.Stream[any]); ok {
		return s
	}
	return stream.Just(v)
}

// argumentValueStream returns the value stream for one argument node. A
// literal becomes a constant stream. A variable reference is resolved from the
// bindings: a bound stream propagates its live updates, a bound plain value
// becomes a constant stream, and an absent binding yields a constant nil so
// that filtering resolvers fall through to "no filter applied".
func argumentValueStream(bindings Bindings, value *language.Value) stream.Stream[any] {
	if value != nil && value.Kind == language.Variable {
		bound, ok := bindings[value.Raw]
		if !ok {
			return stream.Just[any](nil)
		}
		return liftValue(bound)
	}
	return stream.Just(astValueToGo(value))
}

// astValueToGo converts a constant AST value to a Go value.
func astValueToGo(value *language.Value) any {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case language.IntValue:
		iv, _ := strconv.Atoi(value.Raw)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue:
		return value.Raw
	case language.BooleanValue:
		return value.Raw == "true"
	case language.NullValue:
		return nil
	case language.EnumValue:
		return value.Raw
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = astValueToGo(c.Value)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any)
		for _, f := range value.Children {
			m[f.Name] = astValueToGo(f.Value)
		}
		return m
	default:
		return nil
	}
}

// extractProperty implements default resolution: read the same-named property
// off the parent value. Maps, result maps, and exported struct fields are
// supported; anything else resolves to nil.
func extractProperty(parent any, name string) any {
	switch p := parent.(type) {
	case nil:
		return nil
	case map[string]any:
		return p[name]
	case *ResultMap:
		v, _ := p.Get(name)
		return v
	}

	rv := reflect.ValueOf(parent)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		f := rv.FieldByNameFunc(func(n string) bool { return strings.EqualFold(n, name) })
		if f.IsValid() && f.CanInterface() {
			return f.Interface()
		}
	}
	return nil
}

// normalizeList converts any slice or array value into []any.
func normalizeList(v any) ([]any, bool) {
	if direct, ok := v.([]any); ok {
		return direct, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
