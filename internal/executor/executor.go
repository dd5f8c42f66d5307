package executor

import (
	"errors"
	"fmt"

	language "github.com/hanpama/reactivegraphql/internal/language"
	schema "github.com/hanpama/reactivegraphql/internal/schema"
	stream "github.com/hanpama/reactivegraphql/internal/stream"
)

// Bindings maps variable names to literal values or live value streams. The
// same map is handed to every resolver as the shared execution context, so
// resolvers may read and write arbitrary keys on it; a mutation made by one
// resolver is observed by every resolver invoked later in the traversal.
type Bindings = map[string]any

// Executor runs query and mutation documents against a schema, producing a
// result stream that re-emits a freshly computed envelope whenever any
// underlying data source changes.
type Executor struct {
	schema *schema.Schema
}

func NewExecutor(s *schema.Schema) *Executor {
	return &Executor{schema: s}
}

// execState is threaded through every recursive call of one operation.
type execState struct {
	schema   *schema.Schema
	bindings Bindings
}

// ExecuteRequest executes the selected operation of document and returns the
// stream of result envelopes. The stream emits exactly once and completes when
// every consulted source is single-shot; it keeps re-emitting while any source
// is live. The first error anywhere in the execution tree terminates the
// stream without an envelope. Unsubscribing cancels every subscription the
// execution created.
//
// initialValue seeds the root parent value; nil means an empty object. It may
// itself be a stream.Stream[any], in which case every emission recomputes the
// whole result.
func (e *Executor) ExecuteRequest(
	document *language.QueryDocument,
	operationName string,
	bindings Bindings,
	initialValue any,
) stream.Stream[*Result] {
	operation := getOperation(document, operationName)
	if operation == nil {
		return stream.Fail[*Result](errors.New("reactive-graphql: operation not found"))
	}

	var rootTypeName string
	switch operation.Operation {
	case language.Query:
		rootTypeName = e.schema.QueryType
	case language.Mutation:
		rootTypeName = e.schema.MutationType
	default:
		return stream.Fail[*Result](fmt.Errorf("reactive-graphql: unsupported operation type %q", operation.Operation))
	}
	if rootTypeName == "" || e.schema.Types[rootTypeName] == nil {
		return stream.Fail[*Result](fmt.Errorf("reactive-graphql: schema does not define a root type for %s operations", operation.Operation))
	}

	if bindings == nil {
		bindings = Bindings{}
	}
	st := &execState{schema: e.schema, bindings: bindings}

	var root any = map[string]any{}
	if initialValue != nil {
		root = initialValue
	}

	merged := executeSelectionSet(st, operation.SelectionSet, liftValue(root), rootTypeName)
	return stream.Map(merged, func(m *ResultMap) *Result { return &Result{Data: m} })
}

// getOperation retrieves the operation from the document.
func getOperation(document *language.QueryDocument, operationName string) *language.OperationDefinition {
	if operationName == "" && len(document.Operations) == 1 {
		return document.Operations[0]
	}
	return document.Operations.ForName(operationName)
}

// lookupField resolves a field definition on the named type.
func lookupField(s *schema.Schema, typeName, fieldName string) (*schema.Field, error) {
	t := s.Types[typeName]
	if t == nil {
		return nil, &FieldNotFoundError{TypeName: typeName, FieldName: fieldName}
	}
	if f := t.Field(fieldName); f != nil {
		return f, nil
	}
	return nil, &FieldNotFoundError{TypeName: typeName, FieldName: fieldName, DeclaredFields: t.FieldNames()}
}

// executeSelectionSet subscribes the parent stream exactly once and, for each
// parent emission, rebuilds one field stream per selection and merges them
// with combine-latest into an ordered result object keyed by alias. The
// single parent subscription is the glitch barrier: a parent shared by every
// sibling field produces exactly one merged re-emission per parent emission,
// never an intermediate object mixing values from different parent emissions.
// Within one parent generation the merged object re-emits whenever any field
// stream emits, carrying the latest known value for every other field, and
// first emits only once every field has produced a value.
func executeSelectionSet(
	st *execState,
	selectionSet language.SelectionSet,
	parent stream.Stream[any],
	typeName string,
) stream.Stream[*ResultMap] {
	fields := collectFields(selectionSet)
	aliases := make([]string, len(fields))
	for i, f := range fields {
		aliases[i] = responseName(f)
	}
	return stream.SwitchMap(parent, func(parentValue any) stream.Stream[*ResultMap] {
		sources := make([]stream.Stream[any], len(fields))
		for i, f := range fields {
			sources[i] = executeField(st, f, parentValue, typeName)
		}
		return stream.Map(stream.CombineLatest(sources...), func(values []any) *ResultMap {
			m := NewResultMap()
			for i, alias := range aliases {
				m.Set(alias, values[i])
			}
			return m
		})
	})
}

// executeField produces the stream of one field's value for one fixed parent
// value. The argument record stream drives resolution: each record emission
// switches to a fresh resolver value stream and cancels the previous one.
// Parent changes are handled a level up, where the whole field pipeline is
// rebuilt.
func executeField(
	st *execState,
	field *language.Field,
	parentValue any,
	typeName string,
) stream.Stream[any] {
	fieldDef, err := lookupField(st.schema, typeName, field.Name)
	if err != nil {
		return stream.Fail[any](err)
	}

	args := materializeArguments(st, field.Arguments)
	resolved := stream.SwitchMap(args, func(record map[string]any) stream.Stream[any] {
		return resolveFieldValue(st, fieldDef, field.Name, parentValue, record)
	})

	if len(field.SelectionSet) == 0 {
		return resolved
	}

	if fieldDef.Type.IsList() {
		elemTypeName := fieldDef.Type.GetNamedType()
		return stream.SwitchMap(resolved, func(value any) stream.Stream[any] {
			return executeListSelection(st, field, value, elemTypeName)
		})
	}

	nested := executeSelectionSet(st, field.SelectionSet, resolved, fieldDef.Type.GetNamedType())
	return stream.Map(nested, func(m *ResultMap) any { return any(m) })
}

// executeListSelection applies the field's selection set to every element of a
// resolved collection and joins the element streams order-preserving. The list
// length follows the latest parent emission: each re-emission rebuilds the
// element streams from scratch.
func executeListSelection(
	st *execState,
	field *language.Field,
	value any,
	elemTypeName string,
) stream.Stream[any] {
	if value == nil {
		return stream.Just[any](nil)
	}
	items, ok := normalizeList(value)
	if !ok {
		return stream.Fail[any](fmt.Errorf("reactive-graphql: field '%s' expected a list value, got %T", field.Name, value))
	}
	elements := make([]stream.Stream[any], len(items))
	for i, item := range items {
		elem := executeSelectionSet(st, field.SelectionSet, stream.Just(item), elemTypeName)
		elements[i] = stream.Map(elem, func(m *ResultMap) any { return any(m) })
	}
	return stream.Map(stream.CombineLatest(elements...), func(values []any) any {
		return any(values)
	})
}

// resolveFieldValue performs the single value-producing step for one combined
// (parent, arguments) emission. Without a declared resolver the same-named
// property is extracted from the parent value and arguments are ignored. A
// resolver's returned error or panic becomes an error-terminating stream; the
// returned stream never raises synchronously.
func resolveFieldValue(
	st *execState,
	fieldDef *schema.Field,
	fieldName string,
	parentValue any,
	args map[string]any,
) (out stream.Stream[any]) {
	if fieldDef.Resolver == nil {
		return stream.Just(extractProperty(parentValue, fieldName))
	}
	defer func() {
		if r := recover(); r != nil {
			out = stream.Fail[any](&ResolverThrowError{FieldName: fieldName, Cause: fmt.Sprint(r)})
		}
	}()
	value, err := fieldDef.Resolver(parentValue, args, st.bindings)
	if err != nil {
		return stream.Fail[any](&ResolverThrowError{FieldName: fieldName, Cause: err.Error()})
	}
	return liftValue(value)
}

// materializeArguments turns a field's argument list into the stream of its
// fully-resolved argument record. A field with no arguments yields a single
// constant empty record with no combination overhead; otherwise the argument
// value streams are joined with combine-latest so a live variable re-emits
// the record on every update.
func materializeArguments(st *execState, args language.ArgumentList) stream.Stream[map[string]any] {
	if len(args) == 0 {
		return stream.Just(map[string]any{})
	}
	names := make([]string, len(args))
	sources := make([]stream.Stream[any], len(args))
	for i, arg := range args {
		names[i] = arg.Name
		sources[i] = argumentValueStream(st.bindings, arg.Value)
	}
	return stream.Map(stream.CombineLatest(sources...), func(values []any) map[string]any {
		record := make(map[string]any, len(values))
		for i, name := range names {
			record[name] = values[i]
		}
		return record
	})
}
