package writer

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leengari/recordstore/internal/storage"
)

// SaveTable rewrites the whole unit at path and returns the digest of the
// bytes written. The new content goes to a temp file first and replaces the
// old unit by rename, so a failed write leaves the previous unit in place.
// There is no locking: concurrent writers can still lose updates.
func SaveTable(path string, codec storage.Codec, unit *storage.TableUnit, logger *slog.Logger) (uint64, error) {
	if unit == nil || path == "" {
		return 0, fmt.Errorf("cannot save table: nil unit or missing path")
	}

	payload, err := codec.Encode(unit)
	if err != nil {
		return 0, fmt.Errorf("failed to encode table unit %s: %w", path, err)
	}

	tmpPath := path + ".tmp"

	// Write to temp
	if err := os.WriteFile(tmpPath, payload, 0644); err != nil {
		return 0, fmt.Errorf("failed to write temp file for %s: %w", path, err)
	}

	// Replace
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to rename temp → %s: %w", path, err)
	}

	digest := storage.Digest(payload)

	logger.Debug("table unit saved",
		slog.String("path", path),
		slog.String("codec", codec.String()),
		slog.Int("row_count", len(unit.Rows)),
		slog.Int("bytes", len(payload)),
		slog.Uint64("digest", digest),
	)

	return digest, nil
}
