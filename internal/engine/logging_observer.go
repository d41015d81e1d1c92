package engine

import "log/slog"

// LoggingObserver logs every event at debug level
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a logging observer; a nil logger means slog.Default()
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnEvent implements the Observer interface
func (lo *LoggingObserver) OnEvent(event Event) {
	lo.logger.Debug("store_event",
		"event", event.Type,
		"op_id", event.OpID,
		"database", event.Database,
		"table", event.Table,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}
