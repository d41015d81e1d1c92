package logging

import (
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// NewZapHandler returns a slog.Handler that writes through core
func NewZapHandler(core zapcore.Core) slog.Handler {
	return zapslog.NewHandler(core)
}

// NewFileHandler opens a JSON log file through zap's production encoder
func NewFileHandler(path string, level slog.Level) (slog.Handler, func(), error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel(level))
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Sampling = nil
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}
	return NewZapHandler(logger.Core()), func() { _ = logger.Sync() }, nil
}

// zapLevel picks the zap level that lets through the same records as level
func zapLevel(level slog.Level) zapcore.Level {
	switch {
	case level < slog.LevelInfo:
		return zapcore.DebugLevel
	case level < slog.LevelWarn:
		return zapcore.InfoLevel
	case level < slog.LevelError:
		return zapcore.WarnLevel
	}
	return zapcore.ErrorLevel
}
