package engine

import (
	"reflect"
	"sort"

	"github.com/leengari/recordstore/internal/domain/errors"
	"github.com/leengari/recordstore/internal/domain/schema"
)

// Filter maps field names to the value the field must equal.
// All entries must hold for a row to match.
type Filter map[string]any

type condition struct {
	field string
	want  any
}

// compile checks the fields against the schema and canonicalises the wanted
// values the same way inserted values are, so a time.Time matches the stored
// date string and int/float compare numerically
func (f Filter) compile(table string, s schema.Schema) ([]condition, error) {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	conds := make([]condition, 0, len(fields))
	for _, field := range fields {
		if _, ok := s.Lookup(field); !ok {
			return nil, &errors.ValidationError{Table: table, Field: field, Reason: "unknown field in filter"}
		}
		conds = append(conds, condition{field: field, want: schema.Canonical(f[field])})
	}
	return conds, nil
}

func matchAll(conds []condition, row map[string]any) bool {
	for _, c := range conds {
		if !valuesEqual(row[c.field], c.want) {
			return false
		}
	}
	return true
}

func valuesEqual(stored, want any) bool {
	switch s := stored.(type) {
	case int64:
		switch w := want.(type) {
		case int64:
			return s == w
		case float64:
			return float64(s) == w
		}
		return false
	case float64:
		switch w := want.(type) {
		case float64:
			return s == w
		case int64:
			return s == float64(w)
		}
		return false
	}
	return reflect.DeepEqual(stored, want)
}
