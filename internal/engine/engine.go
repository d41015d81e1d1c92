// Package engine is the record store: databases made of schema-checked,
// append-only tables that can be scanned and filtered by field equality.
//
// A database is a directory under the configured base directory and each
// table is one self-contained unit file in it. Nothing is cached between
// calls: every insert, scan and count goes back to the unit on disk.
//
// The engine takes no locks. Use one writer per table at a time and do not
// read a table while it is being written; callers that need more must
// serialise access themselves.
package engine

import (
	"log/slog"

	"github.com/leengari/recordstore/internal/config"
)

// CreateDatabase creates the named database under cfg.BaseDir and opens it
func CreateDatabase(cfg config.Config, name string) (*Database, error) {
	r, err := NewRegistryFromConfig(cfg, slog.Default())
	if err != nil {
		return nil, err
	}
	return r.Create(name)
}

// ConnectDatabase opens an existing database under cfg.BaseDir
func ConnectDatabase(cfg config.Config, name string) (*Database, error) {
	r, err := NewRegistryFromConfig(cfg, slog.Default())
	if err != nil {
		return nil, err
	}
	return r.Connect(name)
}
