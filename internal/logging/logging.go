package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	slogseq "github.com/sokkalf/slog-seq"

	"github.com/leengari/recordstore/internal/config"
)

// multiHandler forwards log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	// Enable if any handler is enabled for this level
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// SetupLogger builds the process logger from cfg and returns a cleanup function.
// The console handler is always present; Seq and the zap file sink are added
// when configured. A sink that cannot be opened is reported on stderr and skipped.
func SetupLogger(cfg config.Logging) (*slog.Logger, func()) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	// Console handler
	handlers := []slog.Handler{slog.NewTextHandler(os.Stderr, handlerOpts)}
	var closers []func()

	// Seq handler
	if cfg.SeqURL != "" {
		_, seqHandler := slogseq.NewLogger(
			cfg.SeqURL,
			slogseq.WithBatchSize(1),
			slogseq.WithFlushInterval(500*time.Millisecond),
			slogseq.WithHandlerOptions(handlerOpts),
		)
		if seqHandler != nil {
			handlers = append(handlers, seqHandler)
			closers = append(closers, func() { seqHandler.Close() })
		}
	}

	// File handler
	if cfg.File != "" {
		fileHandler, closeFile, err := NewFileHandler(cfg.File, level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging: file sink disabled: %v\n", err)
		} else {
			handlers = append(handlers, fileHandler)
			closers = append(closers, closeFile)
		}
	}

	closeFn := func() {
		for _, c := range closers {
			c()
		}
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), closeFn
	}
	return slog.New(&multiHandler{handlers: handlers}), closeFn
}
