package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/leengari/recordstore/internal/config"
	domainerrors "github.com/leengari/recordstore/internal/domain/errors"
	"github.com/leengari/recordstore/internal/domain/schema"
	"github.com/leengari/recordstore/internal/engine"
	"github.com/leengari/recordstore/internal/logging"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid environment", "error", err)
		os.Exit(2)
	}

	logger, closeFn := logging.SetupLogger(cfg.Log)
	defer closeFn()
	slog.SetDefault(logger)

	logger.Info("Starting application...", "base_path", cfg.BaseDir)

	registry, err := engine.NewRegistryFromConfig(cfg, logger)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		closeFn()
		os.Exit(2)
	}
	registry.AddObserver(engine.NewLoggingObserver(logger))

	// 1. Open "shop", creating it on first run
	db, err := registry.Connect("shop")
	if errors.Is(err, domainerrors.ErrNotFound) {
		db, err = registry.Create("shop")
	}
	if err != nil {
		logger.Error("failed to open database", "error", err)
		closeFn()
		os.Exit(1)
	}

	// 2. Get or create the products table
	products, err := db.Table("products")
	if err != nil {
		products, err = db.CreateTable("products", schema.Schema{
			{Name: "title", Type: schema.TypeString},
			{Name: "price", Type: schema.TypeFloat},
		})
	}
	if err != nil {
		logger.Error("failed to create table", "error", err)
		closeFn()
		os.Exit(1)
	}

	// 3. Insert a valid row
	if err := products.Insert("Widget", 9.99); err != nil {
		logger.Error("failed to insert product", "error", err)
		closeFn()
		os.Exit(1)
	}

	// 4. An insert with a missing field is refused and leaves the table as it was
	if err := products.Insert("Widget"); err != nil {
		logger.Warn("insert refused", "error", err)
	}

	count, err := products.Count()
	if err != nil {
		logger.Error("failed to count products", "error", err)
		closeFn()
		os.Exit(1)
	}
	logger.Info("products stored", "count", count)

	// 5. Query by title
	widgets, err := products.Query(engine.Filter{"title": "Widget"})
	if err != nil {
		logger.Error("query failed", "error", err)
		closeFn()
		os.Exit(1)
	}
	for row := range widgets {
		logger.Info("found widget", "row", row.Map())
	}

	logger.Info("Application ready")
}
