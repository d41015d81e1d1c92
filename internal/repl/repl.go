package repl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/google/shlex"

	"github.com/leengari/recordstore/internal/engine"
	"github.com/leengari/recordstore/internal/executor"
)

// Start reads commands line by line from in until EOF, "exit" or "\q".
// Words are split like a shell does, so quoted values may contain spaces:
//
//	insert shop products "Red Widget" 9.99
//
// It returns the read error that ended the session, if any.
func Start(registry *engine.Registry, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "Welcome to recordstore")
	fmt.Fprintln(out, "Type 'help' for commands, 'exit' or '\\q' to quit.")

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read command: %w", err)
			}
			return nil
		}
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		if line == "exit" || line == "\\q" {
			return nil
		}

		if line == "help" {
			fmt.Fprintln(out, executor.Usage)
			continue
		}

		words, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}

		result, err := executor.Execute(registry, words)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}

		PrintResult(out, result)
	}
}

// PrintResult renders rows as a table headed by column name and type
func PrintResult(w io.Writer, res *executor.Result) {
	if res.Message != "" {
		fmt.Fprintln(w, res.Message)
	}

	if len(res.Rows) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for i, col := range res.Columns {
		fmt.Fprintf(tw, "%s (%s)", col.Name, col.Type)
		if i < len(res.Columns)-1 {
			fmt.Fprintf(tw, "\t")
		}
	}
	fmt.Fprintln(tw)

	// Separator
	for i := range res.Columns {
		fmt.Fprintf(tw, "---")
		if i < len(res.Columns)-1 {
			fmt.Fprintf(tw, "\t")
		}
	}
	fmt.Fprintln(tw)

	for _, row := range res.Rows {
		for i, col := range res.Columns {
			val, ok := row.Get(col.Name)
			if !ok {
				fmt.Fprintf(tw, "NULL")
			} else {
				fmt.Fprintf(tw, "%v", val)
			}
			if i < len(res.Columns)-1 {
				fmt.Fprintf(tw, "\t")
			}
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

// PrintJSON writes the message, then one JSON object per row
func PrintJSON(w io.Writer, res *executor.Result) error {
	if len(res.Rows) == 0 {
		if res.Message != "" {
			fmt.Fprintln(w, res.Message)
		}
		return nil
	}
	enc := json.NewEncoder(w)
	for _, row := range res.Rows {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
