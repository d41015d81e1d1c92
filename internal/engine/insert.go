package engine

import (
	"fmt"
	"log/slog"

	"github.com/leengari/recordstore/internal/domain/operation"
	"github.com/leengari/recordstore/internal/storage/loader"
	"github.com/leengari/recordstore/internal/storage/writer"
)

// Insert appends one row given as positional values in schema order.
//
// The arity is checked first, then each value against its column in declared
// order; the first failure is returned as a ValidationError and nothing is
// written. On success the whole unit is read, extended and rewritten, so the
// cost grows with the number of rows already stored.
func (t *Table) Insert(values ...any) error {
	op := operation.Start(operation.KindInsert, t.target())
	logger := t.db.logger

	row, err := t.schema.CheckValues(t.name, values)
	if err != nil {
		logger.Debug("insert rejected",
			slog.Any("op", op),
			slog.String("table", t.name),
			slog.Any("error", err),
		)
		return err
	}

	snap, err := loader.LoadTable(t.path, t.db.codec, logger)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", t.name, err)
	}

	doc := make(map[string]any, len(t.schema))
	for i, col := range t.schema {
		doc[col.Name] = row[i]
	}
	snap.Unit.Rows = append(snap.Unit.Rows, doc)

	digest, err := writer.SaveTable(t.path, t.db.codec, snap.Unit, logger)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", t.name, err)
	}

	rowCount := len(snap.Unit.Rows)
	logger.Info("row inserted",
		slog.Any("op", op),
		slog.String("database", t.db.name),
		slog.String("table", t.name),
		slog.Int("row_count", rowCount),
		slog.Uint64("prev_digest", snap.Digest),
		slog.Uint64("digest", digest),
		slog.Duration("elapsed", op.Elapsed()),
	)
	t.db.notify(Event{Type: EventInsert, OpID: op.ID, Database: t.db.name, Table: t.name, Data: rowCount})

	return nil
}
