package schema

// ResolverFunc computes a field's value from its parent value, the resolved
// argument record, and the shared execution context. The context map is the
// same reference for every resolver invocation of one operation; mutations
// made by earlier resolvers are visible to resolvers invoked later in the
// traversal.
//
// A resolver may return a plain value or a stream.Stream[any]; the executor
// lifts plain values into single-emission streams. A returned error (or a
// panic) is treated as a synchronous resolver throw.
type ResolverFunc func(parent any, args map[string]any, ctx map[string]any) (any, error)

// Schema is the executable type graph: named types plus the root operation
// type bindings.
type Schema struct {
	QueryType    string
	MutationType string
	Types        map[string]*Type
	Description  string
}

// NewSchema creates an empty schema with the builtin scalars registered.
func NewSchema(description string) *Schema {
	s := &Schema{
		Types:       make(map[string]*Type),
		Description: description,
	}
	s.AddType(stringType).
		AddType(intType).
		AddType(floatType).
		AddType(booleanType).
		AddType(idType)
	return s
}

// GetQueryType returns the root query type (nil if absent).
func (s *Schema) GetQueryType() *Type { return s.Types[s.QueryType] }

// GetMutationType returns the root mutation type (nil if absent).
func (s *Schema) GetMutationType() *Type { return s.Types[s.MutationType] }

func (s *Schema) SetQueryType(name string) *Schema {
	s.QueryType = name
	return s
}

func (s *Schema) SetMutationType(name string) *Schema {
	s.MutationType = name
	return s
}

func (s *Schema) AddType(t *Type) *Schema {
	s.Types[t.Name] = t
	return s
}

// Type is a named GraphQL type.
type Type struct {
	Name        string
	Kind        TypeKind
	Description string
	Fields      []*Field      // OBJECT and INTERFACE; declaration order
	EnumValues  []*EnumValue  // ENUM
	InputFields []*InputValue // INPUT_OBJECT
}

// NewType creates a named type of the given kind.
func NewType(name string, kind TypeKind, description string) *Type {
	return &Type{Name: name, Kind: kind, Description: description}
}

func (t *Type) AddField(f *Field) *Type {
	t.Fields = append(t.Fields, f)
	return t
}

// Field reports the field definition with the given name, or nil.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// FieldNames returns the declared field names in declaration order.
func (t *Type) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// Field represents a field on an object or interface type. Resolver is nil
// for fields using default property resolution.
type Field struct {
	Name        string
	Description string
	Type        *TypeRef
	Arguments   []*InputValue
	Resolver    ResolverFunc
}

// TypeKind represents the kind of GraphQL type.
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// TypeRef is a (possibly wrapped) reference to a named type.
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef // List and NonNull
	Named  string   // named types
}

type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

func (t *TypeRef) IsNonNull() bool {
	return t != nil && t.Kind == TypeRefKindNonNull
}

// IsList reports whether the reference is a list type, looking through one
// Non-Null wrapper.
func (t *TypeRef) IsList() bool {
	if t == nil {
		return false
	}
	if t.Kind == TypeRefKindList {
		return true
	}
	return t.Kind == TypeRefKindNonNull && t.OfType != nil && t.OfType.Kind == TypeRefKindList
}

// Unwrap removes one layer of Non-Null or List wrapping.
func (t *TypeRef) Unwrap() *TypeRef {
	if t.Kind == TypeRefKindNonNull || t.Kind == TypeRefKindList {
		return t.OfType
	}
	return t
}

// GetNamedType returns the innermost named type.
func (t *TypeRef) GetNamedType() string {
	current := t
	for current != nil {
		if current.Named != "" {
			return current.Named
		}
		current = current.OfType
	}
	return ""
}

// ElemType returns the element type of a list reference, looking through
// Non-Null wrappers.
func (t *TypeRef) ElemType() *TypeRef {
	current := t
	for current != nil && current.Kind != TypeRefKindList {
		current = current.OfType
	}
	if current == nil {
		return nil
	}
	return current.OfType
}

type EnumValue struct {
	Name        string
	Description string
}

type InputValue struct {
	Name         string
	Description  string
	Type         *TypeRef
	DefaultValue any
}

func NonNullType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindNonNull, OfType: t} }
func ListType(t *TypeRef) *TypeRef    { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NamedType(name string) *TypeRef  { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }
