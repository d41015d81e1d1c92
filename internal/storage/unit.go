package storage

import (
	"fmt"

	"github.com/leengari/recordstore/internal/domain/schema"
)

// TableUnit is the persisted document of one table: its columns and every row.
// Rows are keyed by column name.
type TableUnit struct {
	Columns []ColumnMeta
	Rows    []map[string]any
}

type ColumnMeta struct {
	Name string `json:"name" bson:"name"`
	Type string `json:"type" bson:"type"`
}

// NewUnit builds an empty unit for a freshly created table
func NewUnit(s schema.Schema) *TableUnit {
	cols := make([]ColumnMeta, len(s))
	for i, c := range s {
		cols[i] = ColumnMeta{Name: c.Name, Type: string(c.Type)}
	}
	return &TableUnit{
		Columns: cols,
		Rows:    []map[string]any{},
	}
}

// Schema parses the stored column list
func (u *TableUnit) Schema() (schema.Schema, error) {
	s := make(schema.Schema, len(u.Columns))
	for i, c := range u.Columns {
		tag, err := schema.ParseTypeTag(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		s[i] = schema.Column{Name: c.Name, Type: tag}
	}
	return s, nil
}

func (u *TableUnit) columnNames() []string {
	names := make([]string, len(u.Columns))
	for i, c := range u.Columns {
		names[i] = c.Name
	}
	return names
}
