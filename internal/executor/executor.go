// Package executor runs textual store commands against a Registry. It backs
// both the one-shot command line and the interactive shell.
package executor

import (
	"fmt"
	"strings"

	"github.com/leengari/recordstore/internal/domain/data"
	"github.com/leengari/recordstore/internal/domain/schema"
	"github.com/leengari/recordstore/internal/engine"
)

type Result struct {
	Columns schema.Schema
	Rows    []data.Row
	Message string
}

// Usage lists the supported commands
const Usage = `commands:
  databases
  create-db DB
  tables DB
  create-table DB TABLE name:type...
  describe DB TABLE
  insert DB TABLE value...
  query DB TABLE [field=value...]
  count DB TABLE`

// Execute runs one command given as its words, e.g.
// ["insert", "shop", "products", "Widget", "9.99"]
func Execute(reg *engine.Registry, args []string) (*Result, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no command given")
	}
	cmd, rest := strings.ToLower(args[0]), args[1:]

	switch cmd {
	case "databases", "ls":
		return executeDatabases(reg, rest)
	case "create-db":
		return executeCreateDatabase(reg, rest)
	case "tables":
		return executeTables(reg, rest)
	case "create-table":
		return executeCreateTable(reg, rest)
	case "describe":
		return executeDescribe(reg, rest)
	case "insert":
		return executeInsert(reg, rest)
	case "query", "select":
		return executeQuery(reg, rest)
	case "count":
		return executeCount(reg, rest)
	default:
		return nil, fmt.Errorf("unknown command %q", args[0])
	}
}

func expectArgs(cmd string, args []string, min int, usage string) error {
	if len(args) < min {
		return fmt.Errorf("usage: %s %s", cmd, usage)
	}
	return nil
}

func executeDatabases(reg *engine.Registry, args []string) (*Result, error) {
	names, err := reg.List()
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d database(s)", len(names))
	for _, name := range names {
		fmt.Fprintf(&b, "\n  - %s", name)
	}
	return &Result{Message: b.String()}, nil
}

func executeCreateDatabase(reg *engine.Registry, args []string) (*Result, error) {
	if err := expectArgs("create-db", args, 1, "DB"); err != nil {
		return nil, err
	}
	db, err := reg.Create(args[0])
	if err != nil {
		return nil, err
	}
	return &Result{Message: fmt.Sprintf("Database %s created at %s", db.Name(), db.Path())}, nil
}

func executeTables(reg *engine.Registry, args []string) (*Result, error) {
	if err := expectArgs("tables", args, 1, "DB"); err != nil {
		return nil, err
	}
	db, err := reg.Connect(args[0])
	if err != nil {
		return nil, err
	}
	tables := db.ListTables()
	var b strings.Builder
	fmt.Fprintf(&b, "%d table(s) in %s", len(tables), db.Name())
	for _, name := range tables {
		fmt.Fprintf(&b, "\n  - %s", name)
	}
	return &Result{Message: b.String()}, nil
}

func executeCreateTable(reg *engine.Registry, args []string) (*Result, error) {
	if err := expectArgs("create-table", args, 2, "DB TABLE name:type..."); err != nil {
		return nil, err
	}
	columns, err := parseColumns(args[2:])
	if err != nil {
		return nil, err
	}
	db, err := reg.Connect(args[0])
	if err != nil {
		return nil, err
	}
	table, err := db.CreateTable(args[1], columns)
	if err != nil {
		return nil, err
	}
	return &Result{
		Columns: table.Describe(),
		Message: fmt.Sprintf("Table %s created with %d column(s)", table.Name(), len(columns)),
	}, nil
}

func executeDescribe(reg *engine.Registry, args []string) (*Result, error) {
	table, err := openTable(reg, "describe", args)
	if err != nil {
		return nil, err
	}
	cols := table.Describe()
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)", table.Name(), table.Path())
	for _, c := range cols {
		fmt.Fprintf(&b, "\n  %s %s", c.Name, c.Type)
	}
	return &Result{Columns: cols, Message: b.String()}, nil
}

func executeInsert(reg *engine.Registry, args []string) (*Result, error) {
	table, err := openTable(reg, "insert", args)
	if err != nil {
		return nil, err
	}
	values := convertValues(table.Describe(), args[2:])
	if err := table.Insert(values...); err != nil {
		return nil, err
	}
	return &Result{Message: fmt.Sprintf("Inserted 1 row into %s", table.Name())}, nil
}

func executeQuery(reg *engine.Registry, args []string) (*Result, error) {
	table, err := openTable(reg, "query", args)
	if err != nil {
		return nil, err
	}
	filter, err := parseFilter(table.Describe(), args[2:])
	if err != nil {
		return nil, err
	}
	seq, err := table.Query(filter)
	if err != nil {
		return nil, err
	}

	var rows []data.Row
	for row := range seq {
		rows = append(rows, row)
	}
	return &Result{
		Columns: table.Describe(),
		Rows:    rows,
		Message: fmt.Sprintf("Returned %d rows", len(rows)),
	}, nil
}

func executeCount(reg *engine.Registry, args []string) (*Result, error) {
	table, err := openTable(reg, "count", args)
	if err != nil {
		return nil, err
	}
	n, err := table.Count()
	if err != nil {
		return nil, err
	}
	return &Result{Message: fmt.Sprintf("%d", n)}, nil
}

func openTable(reg *engine.Registry, cmd string, args []string) (*engine.Table, error) {
	if err := expectArgs(cmd, args, 2, "DB TABLE ..."); err != nil {
		return nil, err
	}
	db, err := reg.Connect(args[0])
	if err != nil {
		return nil, err
	}
	return db.Table(args[1])
}
