package engine

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/leengari/recordstore/internal/domain/data"
	"github.com/leengari/recordstore/internal/domain/operation"
	"github.com/leengari/recordstore/internal/storage/loader"
)

// All returns every row in insertion order.
//
// The unit is read when All is called; the returned sequence walks that
// snapshot lazily and can be ranged over any number of times. Rows inserted
// later only show up in a sequence from a later call.
func (t *Table) All() (iter.Seq[data.Row], error) {
	return t.scan(nil)
}

// Query returns the rows whose fields equal every value in filter, in
// insertion order, with the same snapshot semantics as All. An empty filter
// matches every row. Naming a field the table does not have is a
// ValidationError.
func (t *Table) Query(filter Filter) (iter.Seq[data.Row], error) {
	conds, err := filter.compile(t.name, t.schema)
	if err != nil {
		return nil, err
	}
	return t.scan(conds)
}

func (t *Table) scan(conds []condition) (iter.Seq[data.Row], error) {
	op := operation.Start(operation.KindScan, t.target())

	snap, err := loader.LoadTable(t.path, t.db.codec, t.db.logger)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", t.name, err)
	}
	rows := snap.Unit.Rows
	fields := t.schema.Names()

	t.db.logger.Debug("table scanned",
		slog.Any("op", op),
		slog.String("table", t.name),
		slog.Int("rows", len(rows)),
		slog.Int("filters", len(conds)),
	)
	t.db.notify(Event{
		Type:     EventScan,
		OpID:     op.ID,
		Database: t.db.name,
		Table:    t.name,
		Data:     map[string]interface{}{"rows": len(rows), "filters": len(conds)},
	})

	return func(yield func(data.Row) bool) {
		for _, r := range rows {
			if !matchAll(conds, r) {
				continue
			}
			if !yield(data.FromMap(fields, r)) {
				return
			}
		}
	}, nil
}

// Count returns the number of persisted rows. Row contents are not decoded.
func (t *Table) Count() (int, error) {
	op := operation.Start(operation.KindCount, t.target())

	n, err := loader.CountRows(t.path, t.db.codec)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", t.name, err)
	}

	t.db.notify(Event{Type: EventCount, OpID: op.ID, Database: t.db.name, Table: t.name, Data: n})
	return n, nil
}
