package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/leengari/recordstore/internal/config"
	"github.com/leengari/recordstore/internal/engine"
	"github.com/leengari/recordstore/internal/executor"
	"github.com/leengari/recordstore/internal/logging"
	"github.com/leengari/recordstore/internal/repl"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	fs := flag.NewFlagSet("recordstore", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: recordstore [flags] [command args...]")
		fmt.Fprintln(fs.Output(), "With no command an interactive shell is started.")
		fmt.Fprintln(fs.Output(), executor.Usage)
		fs.PrintDefaults()
	}
	cfg.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger, closeFn := logging.SetupLogger(cfg.Log)
	defer closeFn()
	slog.SetDefault(logger)

	registry, err := engine.NewRegistryFromConfig(cfg, logger)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return 2
	}
	registry.AddObserver(engine.NewLoggingObserver(logger))

	if fs.NArg() == 0 {
		if err := os.MkdirAll(cfg.BaseDir, 0755); err != nil {
			slog.Error("failed to create databases directory", "error", err)
			return 1
		}
		slog.Debug("starting shell", "base_path", cfg.BaseDir, "codec", registry.Codec().String())
		if err := repl.Start(registry, os.Stdin, os.Stdout); err != nil {
			slog.Error("shell stopped", "error", err)
			return 1
		}
		return 0
	}

	result, err := executor.Execute(registry, fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := repl.PrintJSON(os.Stdout, result); err != nil {
		slog.Error("failed to print result", "error", err)
		return 1
	}
	return 0
}
