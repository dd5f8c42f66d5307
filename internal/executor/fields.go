package executor

import (
	language "github.com/hanpama/reactivegraphql/internal/language"
)

// collectFields gathers the executable field selections of one selection set,
// grouped by response name with first-seen order preserved. Fragment spreads
// and inline fragments are the front-end's job to expand before execution and
// are skipped here; for a duplicated response name the later field replaces
// the earlier one while keeping its position.
func collectFields(selectionSet language.SelectionSet) []*language.Field {
	ordered := make([]*language.Field, 0, len(selectionSet))
	index := make(map[string]int, len(selectionSet))
	for _, sel := range selectionSet {
		field, ok := sel.(*language.Field)
		if !ok {
			continue
		}
		name := responseName(field)
		if i, dup := index[name]; dup {
			ordered[i] = field
			continue
		}
		index[name] = len(ordered)
		ordered = append(ordered, field)
	}
	return ordered
}

// responseName is the output key for a field: its alias when present, else
// the field name. Schema lookup always uses the field name.
func responseName(f *language.Field) string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}
