package loader

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/leengari/recordstore/internal/storage"
)

// DiscoverTables lists the table names whose units sit directly under dbPath.
// Only regular files carrying the codec suffix count; names come back sorted
// by file name.
func DiscoverTables(dbPath string, codec storage.Codec, logger *slog.Logger) ([]string, error) {
	entries, err := os.ReadDir(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read database directory: %w", err)
	}

	suffix := codec.Suffix()
	var tables []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, suffix) {
			continue
		}
		table := strings.TrimSuffix(name, suffix)
		if table == "" || strings.HasPrefix(table, ".") {
			continue
		}
		tables = append(tables, table)
	}

	logger.Debug("tables discovered",
		slog.String("path", dbPath),
		slog.String("suffix", suffix),
		slog.Int("table_count", len(tables)),
	)

	return tables, nil
}

// ListDatabases lists the database directories under basePath
func ListDatabases(basePath string) ([]string, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read base directory: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
