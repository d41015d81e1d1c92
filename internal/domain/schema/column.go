package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/leengari/recordstore/internal/domain/errors"
)

// Column is one (name, type) pair of a table's schema
type Column struct {
	Name string  `json:"name"`
	Type TypeTag `json:"type"`
}

// Schema is the ordered column list of a table, fixed at creation
type Schema []Column

// Validate rejects empty or duplicate column names and unknown type tags
func (s Schema) Validate() error {
	seen := make(map[string]bool, len(s))
	for i, col := range s {
		if strings.TrimSpace(col.Name) == "" {
			return errors.Validationf("column %d has an empty name", i)
		}
		if seen[col.Name] {
			return &errors.ValidationError{Field: col.Name, Reason: "duplicate column name"}
		}
		if !col.Type.Valid() {
			return &errors.ValidationError{
				Field:  col.Name,
				Reason: fmt.Sprintf("unknown column type %q", col.Type),
			}
		}
		seen[col.Name] = true
	}
	return nil
}

// Names returns the column names in declared order
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, col := range s {
		names[i] = col.Name
	}
	return names
}

// Lookup finds a column by name
func (s Schema) Lookup(name string) (Column, bool) {
	for _, col := range s {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

func (s Schema) Clone() Schema {
	if s == nil {
		return Schema{}
	}
	out := make(Schema, len(s))
	copy(out, s)
	return out
}

// CheckValues validates positional insert values against the schema and
// returns them in canonical form. Arity is checked first, then each field in
// declared order; the first failing field wins.
func (s Schema) CheckValues(table string, values []any) ([]any, error) {
	if len(values) != len(s) {
		return nil, errors.NewFieldCountMismatch(table, len(values), len(s))
	}

	out := make([]any, len(values))
	for i, col := range s {
		if !col.Type.Accepts(values[i]) {
			return nil, errors.NewTypeMismatch(table, col.Name, TypeName(values[i]), string(col.Type))
		}
		out[i] = Canonical(values[i])
	}
	return out, nil
}

// Decode normalises a value read back from a persisted unit.
// JSON numbers and BSON integers become int64 or float64 according to the
// column type. Dates stay strings: they are not parsed back into time.Time.
func (c Column) Decode(v any) (any, error) {
	switch c.Type {
	case TypeString, TypeDate:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case TypeBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case TypeInt:
		switch n := v.(type) {
		case json.Number:
			return n.Int64()
		case int64:
			return n, nil
		case int32:
			return int64(n), nil
		case float64:
			if n == math.Trunc(n) {
				return int64(n), nil
			}
		}
	case TypeFloat:
		switch n := v.(type) {
		case json.Number:
			return n.Float64()
		case float64:
			return n, nil
		case int64:
			return float64(n), nil
		case int32:
			return float64(n), nil
		}
	}
	return nil, fmt.Errorf("column %q: stored %T does not match type %s", c.Name, v, c.Type)
}
