package executor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/leengari/recordstore/internal/domain/errors"
	"github.com/leengari/recordstore/internal/domain/schema"
)

// convertLiteral turns a command-line word into a value of the column's type.
// Words that do not parse are kept as strings so the store reports the type
// mismatch itself.
func convertLiteral(raw string, tag schema.TypeTag) any {
	switch tag {
	case schema.TypeInt:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	case schema.TypeFloat:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case schema.TypeBool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	case schema.TypeDate:
		if d, err := time.Parse(schema.DateLayout, raw); err == nil {
			return d
		}
	}
	return raw
}

// convertValues converts positional insert arguments. Extra or missing
// arguments are passed through for the store's arity check.
func convertValues(columns schema.Schema, raw []string) []any {
	values := make([]any, len(raw))
	for i, word := range raw {
		if i < len(columns) {
			values[i] = convertLiteral(word, columns[i].Type)
		} else {
			values[i] = word
		}
	}
	return values
}

// parseColumns parses name:type pairs
func parseColumns(raw []string) (schema.Schema, error) {
	columns := make(schema.Schema, 0, len(raw))
	for _, word := range raw {
		name, typ, ok := strings.Cut(word, ":")
		if !ok {
			return nil, errors.Validationf("column %q must be written as name:type", word)
		}
		tag, err := schema.ParseTypeTag(typ)
		if err != nil {
			return nil, &errors.ValidationError{Field: name, Reason: err.Error()}
		}
		columns = append(columns, schema.Column{Name: name, Type: tag})
	}
	return columns, nil
}

// parseFilter parses field=value pairs, converting each value with the type
// of the named column. Unknown fields are kept as strings and rejected by the
// table.
func parseFilter(columns schema.Schema, raw []string) (map[string]any, error) {
	filter := make(map[string]any, len(raw))
	for _, word := range raw {
		field, value, ok := strings.Cut(word, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("filter %q must be written as field=value", word)
		}
		if col, found := columns.Lookup(field); found {
			filter[field] = convertLiteral(value, col.Type)
		} else {
			filter[field] = value
		}
	}
	return filter, nil
}
