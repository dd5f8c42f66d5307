package schema

import (
	"fmt"
	"strconv"

	language "github.com/hanpama/reactivegraphql/internal/language"
)

// BuildFromSDL builds an executable schema from SDL source and a resolver map
// keyed "Type.field". Fields without an entry use default property resolution.
// A resolver key that does not match any declared field is an error.
func BuildFromSDL(sdl string, resolvers map[string]ResolverFunc) (*Schema, error) {
	doc, err := language.ParseSchema("schema", sdl)
	if err != nil {
		return nil, fmt.Errorf("parsing SDL: %w", err)
	}

	s := NewSchema("")
	s.SetQueryType("Query").SetMutationType("Mutation")
	for _, sd := range doc.Schema {
		for _, op := range sd.OperationTypes {
			switch op.Operation {
			case language.Query:
				s.SetQueryType(op.Type)
			case language.Mutation:
				s.SetMutationType(op.Type)
			}
		}
	}

	used := make(map[string]bool, len(resolvers))
	for _, def := range doc.Definitions {
		t, err := buildDefinition(def, resolvers, used)
		if err != nil {
			return nil, err
		}
		s.AddType(t)
	}

	for key := range resolvers {
		if !used[key] {
			return nil, fmt.Errorf("resolver %q does not match any declared field", key)
		}
	}
	return s, nil
}

func buildDefinition(def *language.Definition, resolvers map[string]ResolverFunc, used map[string]bool) (*Type, error) {
	switch def.Kind {
	case language.Object, language.Interface:
		kind := TypeKindObject
		if def.Kind == language.Interface {
			kind = TypeKindInterface
		}
		t := NewType(def.Name, kind, def.Description)
		for _, fd := range def.Fields {
			field, err := buildField(def.Name, fd, resolvers, used)
			if err != nil {
				return nil, err
			}
			t.AddField(field)
		}
		return t, nil

	case language.Scalar:
		return NewType(def.Name, TypeKindScalar, def.Description), nil

	case language.Union:
		// Unions parse but are not executable; the engine resolves object
		// types only.
		return NewType(def.Name, TypeKindUnion, def.Description), nil

	case language.Enum:
		t := NewType(def.Name, TypeKindEnum, def.Description)
		for _, ev := range def.EnumValues {
			t.EnumValues = append(t.EnumValues, &EnumValue{Name: ev.Name, Description: ev.Description})
		}
		return t, nil

	case language.InputObject:
		t := NewType(def.Name, TypeKindInputObject, def.Description)
		for _, fd := range def.Fields {
			t.InputFields = append(t.InputFields, &InputValue{
				Name:         fd.Name,
				Description:  fd.Description,
				Type:         typeRefFromAST(fd.Type),
				DefaultValue: literalToGo(fd.DefaultValue),
			})
		}
		return t, nil

	default:
		return nil, fmt.Errorf("unsupported definition kind %s for type %q", def.Kind, def.Name)
	}
}

func buildField(typeName string, fd *language.FieldDefinition, resolvers map[string]ResolverFunc, used map[string]bool) (*Field, error) {
	field := &Field{
		Name:        fd.Name,
		Description: fd.Description,
		Type:        typeRefFromAST(fd.Type),
	}
	for _, ad := range fd.Arguments {
		field.Arguments = append(field.Arguments, &InputValue{
			Name:         ad.Name,
			Description:  ad.Description,
			Type:         typeRefFromAST(ad.Type),
			DefaultValue: literalToGo(ad.DefaultValue),
		})
	}
	key := typeName + "." + fd.Name
	if r, ok := resolvers[key]; ok {
		field.Resolver = r
		used[key] = true
	}
	return field, nil
}

func typeRefFromAST(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return NonNullType(typeRefFromAST(&language.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return NamedType(t.NamedType)
	}
	if t.Elem != nil {
		return ListType(typeRefFromAST(t.Elem))
	}
	return nil
}

// literalToGo converts a constant AST value into a Go value. Variables do not
// occur in SDL default values.
func literalToGo(value *language.Value) any {
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
	case language.StringValue, language.BlockValue, language.EnumValue:
		return value.Raw
	case language.BooleanValue:
		return value.Raw == "true"
	case language.NullValue:
		return nil
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = literalToGo(c.Value)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any)
		for _, f := range value.Children {
			m[f.Name] = literalToGo(f.Value)
		}
		return m
	default:
		return nil
	}
}
