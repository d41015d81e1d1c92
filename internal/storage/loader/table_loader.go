package loader

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leengari/recordstore/internal/domain/errors"
	"github.com/leengari/recordstore/internal/domain/schema"
	"github.com/leengari/recordstore/internal/storage"
)

// Snapshot is the result of one read pass over a table unit.
// Rows are normalised against the stored schema.
type Snapshot struct {
	Schema schema.Schema
	Unit   *storage.TableUnit
	Digest uint64
	Size   int
}

// LoadTable reads and decodes the unit at path
func LoadTable(path string, codec storage.Codec, logger *slog.Logger) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table unit: %w", err)
	}

	unit, err := codec.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("table unit %s: %w", path, err)
	}

	s, err := unit.Schema()
	if err != nil {
		return nil, fmt.Errorf("table unit %s: %w", path, errors.Corruptf("%v", err))
	}

	for i, row := range unit.Rows {
		normalised := make(map[string]any, len(s))
		for _, col := range s {
			v, ok := row[col.Name]
			if !ok {
				return nil, fmt.Errorf("table unit %s: %w", path,
					errors.Corruptf("row %d missing field %q", i, col.Name))
			}
			nv, err := col.Decode(v)
			if err != nil {
				return nil, fmt.Errorf("table unit %s: %w", path, errors.Corruptf("row %d: %v", i, err))
			}
			normalised[col.Name] = nv
		}
		unit.Rows[i] = normalised
	}

	snap := &Snapshot{
		Schema: s,
		Unit:   unit,
		Digest: storage.Digest(raw),
		Size:   len(raw),
	}

	logger.Debug("table unit loaded",
		slog.String("path", path),
		slog.Int("rows", len(unit.Rows)),
		slog.Int("bytes", snap.Size),
	)

	return snap, nil
}

// CountRows counts the rows of the unit at path without normalising them
func CountRows(path string, codec storage.Codec) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read table unit: %w", err)
	}
	n, err := codec.CountRows(raw)
	if err != nil {
		return 0, fmt.Errorf("table unit %s: %w", path, err)
	}
	return n, nil
}

// Exists reports whether a unit is present at path
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
