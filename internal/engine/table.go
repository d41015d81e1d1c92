package engine

import (
	"fmt"

	"github.com/leengari/recordstore/internal/domain/errors"
	"github.com/leengari/recordstore/internal/domain/schema"
	"github.com/leengari/recordstore/internal/storage"
	"github.com/leengari/recordstore/internal/storage/loader"
	"github.com/leengari/recordstore/internal/storage/writer"
)

// Table is the store for one table. Its schema is fixed; rows live only in
// the persisted unit, which every call reads again.
//
// Tables take no locks. At most one writer may use a table at a time and no
// reader may run during a write; concurrent use from several handles or
// processes can lose inserts or read a torn unit.
type Table struct {
	db     *Database // only used to resolve storage location, codec and logger
	name   string
	path   string
	schema schema.Schema
}

// createTable writes a unit with the given columns and no rows
func createTable(db *Database, name string, columns schema.Schema) (*Table, error) {
	path := db.tablePath(name)

	exists, err := loader.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("failed to check table %q: %w", name, err)
	}
	if exists {
		return nil, errors.NewAlreadyExists("table", name)
	}

	if _, err := writer.SaveTable(path, db.codec, storage.NewUnit(columns), db.logger); err != nil {
		return nil, fmt.Errorf("failed to create table %s: %w", name, err)
	}

	return &Table{
		db:     db,
		name:   name,
		path:   path,
		schema: columns.Clone(),
	}, nil
}

// openTable reads the schema back from an existing unit
func openTable(db *Database, name string) (*Table, error) {
	path := db.tablePath(name)

	snap, err := loader.LoadTable(path, db.codec, db.logger)
	if err != nil {
		return nil, err
	}

	return &Table{
		db:     db,
		name:   name,
		path:   path,
		schema: snap.Schema,
	}, nil
}

func (t *Table) Name() string {
	return t.name
}

// Path is the location of the table's persisted unit
func (t *Table) Path() string {
	return t.path
}

// Describe returns the schema the table was created with
func (t *Table) Describe() schema.Schema {
	return t.schema.Clone()
}

func (t *Table) target() string {
	return t.db.name + "/" + t.name
}
