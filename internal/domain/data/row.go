package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/leengari/recordstore/internal/domain/schema"
)

// Row is one materialized table row.
// Fields keep the schema order; values are in canonical stored form.
type Row struct {
	fields []string
	values map[string]any
}

// FromMap builds a row from a decoded document, ordered by fields
func FromMap(fields []string, m map[string]any) Row {
	return Row{fields: fields, values: m}
}

// Get returns the value of a field and whether the row has it
func (r Row) Get(field string) (any, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Fields returns the field names in schema order
func (r Row) Fields() []string {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	return out
}

func (r Row) Len() int {
	return len(r.fields)
}

// Map returns a copy of the row as a plain map
func (r Row) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

func (r Row) String(field string) (string, error) {
	v, err := r.lookup(field)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", typeError(field, v, "string")
	}
	return s, nil
}

func (r Row) Int(field string) (int64, error) {
	v, err := r.lookup(field)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int64)
	if !ok {
		return 0, typeError(field, v, "int")
	}
	return n, nil
}

func (r Row) Float(field string) (float64, error) {
	v, err := r.lookup(field)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	}
	return 0, typeError(field, v, "float")
}

func (r Row) Bool(field string) (bool, error) {
	v, err := r.lookup(field)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, typeError(field, v, "bool")
	}
	return b, nil
}

// Date parses a date field. Stored dates are ISO strings, so this is the
// only place they become time.Time again.
func (r Row) Date(field string) (time.Time, error) {
	v, err := r.lookup(field)
	if err != nil {
		return time.Time{}, err
	}
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		t, err := time.Parse(schema.DateLayout, d)
		if err != nil {
			return time.Time{}, fmt.Errorf("field %q: %w", field, err)
		}
		return t, nil
	}
	return time.Time{}, typeError(field, v, "date")
}

func (r Row) lookup(field string) (any, error) {
	v, ok := r.values[field]
	if !ok {
		return nil, fmt.Errorf("row has no field %q", field)
	}
	return v, nil
}

func typeError(field string, v any, want string) error {
	return fmt.Errorf("field %q holds %T, not %s", field, v, want)
}

// MarshalJSON writes the row as an object with keys in schema order
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[f])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
