package integration

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/leengari/recordstore/internal/config"
	"github.com/leengari/recordstore/internal/domain/schema"
	"github.com/leengari/recordstore/internal/engine"
	"github.com/leengari/recordstore/internal/storage"
	"github.com/leengari/recordstore/internal/testutil"
)

var allCodecs = []storage.Codec{
	{Format: storage.FormatJSON, Compression: storage.CompressionNone},
	{Format: storage.FormatJSON, Compression: storage.CompressionSnappy},
	{Format: storage.FormatJSON, Compression: storage.CompressionLZ4},
	{Format: storage.FormatBSON, Compression: storage.CompressionNone},
	{Format: storage.FormatBSON, Compression: storage.CompressionZstd},
}

func setupTestRegistry(t *testing.T, codec storage.Codec) *engine.Registry {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return engine.NewRegistry(t.TempDir(), codec, logger)
}

// TestCRUDOperations walks a table through create, insert, reopen and query
// for every unit codec
func TestCRUDOperations(t *testing.T) {
	for _, codec := range allCodecs {
		t.Run(codec.String(), func(t *testing.T) {
			reg := setupTestRegistry(t, codec)

			db, err := reg.Create("library")
			testutil.AssertNoError(t, err, "create database")

			books, err := db.CreateTable("books", schema.Schema{
				{Name: "title", Type: schema.TypeString},
				{Name: "year", Type: schema.TypeInt},
				{Name: "rating", Type: schema.TypeFloat},
				{Name: "lent", Type: schema.TypeBool},
				{Name: "added", Type: schema.TypeDate},
			})
			testutil.AssertNoError(t, err, "create table")

			added := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
			for i := 0; i < 10; i++ {
				err := books.Insert(fmt.Sprintf("book-%d", i), 1990+i%3, float64(i)/2, i%2 == 0, added)
				testutil.AssertNoError(t, err, "insert")
			}

			t.Run("Reopen", func(t *testing.T) {
				again, err := reg.Connect("library")
				testutil.AssertNoError(t, err, "connect")
				reopened, err := again.Table("books")
				testutil.AssertNoError(t, err, "table")
				if !reflect.DeepEqual(reopened.Describe(), books.Describe()) {
					t.Errorf("schema changed on reopen: %v", reopened.Describe())
				}
				n, err := reopened.Count()
				testutil.AssertNoError(t, err, "count")
				testutil.AssertRowCount(t, n, 10, "count after reopen")
			})

			t.Run("SelectAll", func(t *testing.T) {
				rows := testutil.CollectRows(t)(books.All())
				testutil.AssertRowCount(t, len(rows), 10, "all rows")
				for i, row := range rows {
					testutil.AssertFieldEquals(t, row, "title", fmt.Sprintf("book-%d", i), "insertion order")
					testutil.AssertFieldEquals(t, row, "year", int64(1990+i%3), "year")
					testutil.AssertFieldEquals(t, row, "added", "2023-05-01", "added")
				}
			})

			t.Run("SelectWhere", func(t *testing.T) {
				rows := testutil.CollectRows(t)(books.Query(engine.Filter{"year": 1991, "lent": true}))
				// i in {1, 4, 7} has year 1991; of those only 4 is even
				testutil.AssertRowCount(t, len(rows), 1, "year=1991 lent=true")
				testutil.AssertFieldEquals(t, rows[0], "title", "book-4", "match")

				rows = testutil.CollectRows(t)(books.Query(engine.Filter{"added": added}))
				testutil.AssertRowCount(t, len(rows), 10, "added by date")
			})

			t.Run("FailedInsertKeepsUnit", func(t *testing.T) {
				before, err := os.ReadFile(books.Path())
				testutil.AssertNoError(t, err, "read unit")

				err = books.Insert("broken", 2000, 1.0, true, "2023-05-01")
				testutil.AssertValidationError(t, err, "date as string")

				after, err := os.ReadFile(books.Path())
				testutil.AssertNoError(t, err, "read unit")
				if string(before) != string(after) {
					t.Error("unit changed after a rejected insert")
				}
			})
		})
	}
}

// TestCodecsDoNotSeeEachOther checks that discovery only picks up units
// written with the registry's own codec
func TestCodecsDoNotSeeEachOther(t *testing.T) {
	base := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	jsonReg := engine.NewRegistry(base, storage.DefaultCodec(), logger)
	bsonReg := engine.NewRegistry(base, storage.Codec{Format: storage.FormatBSON, Compression: storage.CompressionZstd}, logger)

	db, err := jsonReg.Create("shop")
	testutil.AssertNoError(t, err, "create")
	_, err = db.CreateTable("products", schema.Schema{{Name: "title", Type: schema.TypeString}})
	testutil.AssertNoError(t, err, "create json table")

	other, err := bsonReg.Connect("shop")
	testutil.AssertNoError(t, err, "connect bson")
	if len(other.ListTables()) != 0 {
		t.Fatalf("bson registry should see no tables, got %v", other.ListTables())
	}
	_, err = other.CreateTable("products", schema.Schema{{Name: "sku", Type: schema.TypeInt}})
	testutil.AssertNoError(t, err, "create bson table")

	for _, name := range []string{"products.json", "products.bson.zst"} {
		if _, err := os.Stat(filepath.Join(base, "shop", name)); err != nil {
			t.Errorf("expected unit %s: %v", name, err)
		}
	}
}

func TestConfigDrivenDatabase(t *testing.T) {
	cfg := config.Default()
	cfg.BaseDir = t.TempDir()
	cfg.Format = "bson"
	cfg.Compression = "lz4"

	db, err := engine.CreateDatabase(cfg, "shop")
	testutil.AssertNoError(t, err, "create")
	products, err := db.CreateTable("products", schema.Schema{
		{Name: "title", Type: schema.TypeString},
		{Name: "price", Type: schema.TypeFloat},
	})
	testutil.AssertNoError(t, err, "create table")
	testutil.AssertNoError(t, products.Insert("Widget", 9.99), "insert")

	again, err := engine.ConnectDatabase(cfg, "shop")
	testutil.AssertNoError(t, err, "connect")
	table, err := again.Table("products")
	testutil.AssertNoError(t, err, "table")
	rows := testutil.CollectRows(t)(table.Query(engine.Filter{"title": "Widget"}))
	testutil.AssertRowCount(t, len(rows), 1, "widget")
}
