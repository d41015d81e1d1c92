package engine

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leengari/recordstore/internal/config"
	"github.com/leengari/recordstore/internal/domain/errors"
	"github.com/leengari/recordstore/internal/domain/operation"
	"github.com/leengari/recordstore/internal/storage"
	"github.com/leengari/recordstore/internal/storage/loader"
)

// Registry creates and opens databases under one base directory.
// It keeps no cache: every Connect builds a fresh handle from disk.
type Registry struct {
	observerSet
	basePath string
	codec    storage.Codec
	logger   *slog.Logger
}

// NewRegistry creates a registry rooted at basePath
func NewRegistry(basePath string, codec storage.Codec, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		basePath: basePath,
		codec:    codec,
		logger:   logger,
	}
}

// NewRegistryFromConfig validates cfg and builds a registry from it
func NewRegistryFromConfig(cfg config.Config, logger *slog.Logger) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	codec, err := cfg.Codec()
	if err != nil {
		return nil, err
	}
	return NewRegistry(cfg.BaseDir, codec, logger), nil
}

func (r *Registry) BasePath() string {
	return r.basePath
}

func (r *Registry) Codec() storage.Codec {
	return r.codec
}

// Create makes an empty database directory and opens it.
// It fails with a ValidationError if the directory already exists.
func (r *Registry) Create(name string) (*Database, error) {
	op := operation.Start(operation.KindCreateDatabase, name)

	if err := validateName("database", name); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(r.basePath, name)
	exists, err := loader.Exists(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check database %q: %w", name, err)
	}
	if exists {
		return nil, errors.NewAlreadyExists("database", name)
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	r.logger.Info("database created",
		slog.Any("op", op),
		slog.String("database", name),
		slog.String("path", dbPath),
	)
	r.notify(Event{Type: EventCreateDatabase, OpID: op.ID, Database: name})

	return r.Connect(name)
}

// Connect opens an existing database, building one Table per unit found in
// its directory. A missing directory yields a NotFoundError.
func (r *Registry) Connect(name string) (*Database, error) {
	op := operation.Start(operation.KindOpenDatabase, name)

	if err := validateName("database", name); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(r.basePath, name)
	info, err := os.Stat(dbPath)
	if os.IsNotExist(err) {
		return nil, &errors.NotFoundError{Kind: "database", Name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", name, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("database path %s is not a directory", dbPath)
	}

	db := &Database{
		observerSet: r.snapshot(),
		name:        name,
		path:        dbPath,
		codec:       r.codec,
		logger:      r.logger,
		tables:      make(map[string]*Table),
	}

	names, err := loader.DiscoverTables(dbPath, r.codec, r.logger)
	if err != nil {
		return nil, err
	}
	for _, tableName := range names {
		table, err := openTable(db, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to load table %s: %w", tableName, err)
		}
		db.register(table)
	}

	r.logger.Info("database opened",
		slog.Any("op", op),
		slog.String("database", name),
		slog.String("path", dbPath),
		slog.Int("table_count", len(db.order)),
		slog.Duration("elapsed", op.Elapsed()),
	)
	db.notify(Event{Type: EventOpenDatabase, OpID: op.ID, Database: name, Data: len(db.order)})

	return db, nil
}

// List returns the names of the databases under the base directory
func (r *Registry) List() ([]string, error) {
	return loader.ListDatabases(r.basePath)
}

// validateName keeps database and table names usable as single path elements
func validateName(kind, name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.Validationf("%s name must not be empty", kind)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, os.PathSeparator):
		return errors.Validationf("invalid %s name %q: must not contain path separators", kind, name)
	case strings.HasPrefix(name, "."):
		return errors.Validationf("invalid %s name %q: must not start with a dot", kind, name)
	}
	return nil
}
