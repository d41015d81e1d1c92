package engine

import (
	stderrors "errors"
	"log/slog"
	"path/filepath"

	"github.com/leengari/recordstore/internal/domain/errors"
	"github.com/leengari/recordstore/internal/domain/operation"
	"github.com/leengari/recordstore/internal/domain/schema"
	"github.com/leengari/recordstore/internal/storage"
)

// Database is a handle on one database directory. It owns one Table per
// persisted unit, keyed by name, for as long as the handle lives.
type Database struct {
	observerSet
	name   string
	path   string // filesystem path to database directory
	codec  storage.Codec
	logger *slog.Logger
	tables map[string]*Table
	order  []string // discovery order, then creation order
}

func (db *Database) Name() string {
	return db.name
}

func (db *Database) Path() string {
	return db.path
}

func (db *Database) Codec() storage.Codec {
	return db.codec
}

// ListTables returns the known table names: discovered tables first, then
// tables created through this handle
func (db *Database) ListTables() []string {
	out := make([]string, len(db.order))
	copy(out, db.order)
	return out
}

// Table returns the handle for a known table
func (db *Database) Table(name string) (*Table, error) {
	t, ok := db.tables[name]
	if !ok {
		return nil, &errors.NotFoundError{Kind: "table", Name: name}
	}
	return t, nil
}

// CreateTable creates a table with a fixed schema and registers it.
// It fails with a ValidationError if the name is taken, either by a known
// table or by a unit that appeared on disk after this handle was opened.
func (db *Database) CreateTable(name string, columns schema.Schema) (*Table, error) {
	op := operation.Start(operation.KindCreateTable, db.name+"/"+name)

	if err := validateName("table", name); err != nil {
		return nil, err
	}
	if _, ok := db.tables[name]; ok {
		return nil, errors.NewAlreadyExists("table", name)
	}
	if err := columns.Validate(); err != nil {
		var ve *errors.ValidationError
		if stderrors.As(err, &ve) {
			ve.Table = name
		}
		return nil, err
	}

	table, err := createTable(db, name, columns)
	if err != nil {
		return nil, err
	}
	db.register(table)

	db.logger.Info("table created",
		slog.Any("op", op),
		slog.String("database", db.name),
		slog.String("table", name),
		slog.Int("columns", len(columns)),
		slog.String("path", table.path),
	)
	db.notify(Event{Type: EventCreateTable, OpID: op.ID, Database: db.name, Table: name, Data: len(columns)})

	return table, nil
}

func (db *Database) register(t *Table) {
	db.tables[t.name] = t
	db.order = append(db.order, t.name)
}

// tablePath derives the unit location of a table from the database location
func (db *Database) tablePath(name string) string {
	return filepath.Join(db.path, name+db.codec.Suffix())
}
