package executor

import (
	"fmt"
	"strings"
)

// FieldNotFoundError reports a selection that names a field the current type
// does not declare. The message format is consumed by existing clients and
// must not change.
type FieldNotFoundError struct {
	TypeName       string
	FieldName      string
	DeclaredFields []string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf(
		"reactive-graphql: field '%s' was not found on type '%s'. The only fields found in this Object are: %s.",
		e.FieldName, e.TypeName, strings.Join(e.DeclaredFields, ","),
	)
}

// ResolverThrowError wraps a synchronous fault raised inside a resolver: a
// returned error or a panic. The message format is consumed by existing
// clients and must not change.
type ResolverThrowError struct {
	FieldName string
	Cause     string
}

func (e *ResolverThrowError) Error() string {
	return fmt.Sprintf("reactive-graphql: resolver '%s' throws this error: '%s'", e.FieldName, e.Cause)
}
