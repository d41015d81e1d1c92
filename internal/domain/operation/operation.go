package operation

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// seqCounter orders operations within a process
var seqCounter uint64

// Kind names the engine call an operation belongs to
type Kind string

const (
	KindCreateDatabase Kind = "create_database"
	KindOpenDatabase   Kind = "open_database"
	KindCreateTable    Kind = "create_table"
	KindInsert         Kind = "insert"
	KindScan           Kind = "scan"
	KindCount          Kind = "count"
)

// Operation identifies one public engine call for logging and observers.
// It carries no isolation semantics.
type Operation struct {
	ID        string    // uuid, used as op_id in logs
	Seq       uint64    // process-local sequence number
	Kind      Kind
	Target    string    // database or db/table the call acts on
	StartTime time.Time
}

// Start creates a new operation with a unique ID
func Start(kind Kind, target string) *Operation {
	return &Operation{
		ID:        uuid.New().String(),
		Seq:       atomic.AddUint64(&seqCounter, 1),
		Kind:      kind,
		Target:    target,
		StartTime: time.Now(),
	}
}

// LogValue groups the operation's identity under one log attribute
func (op *Operation) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", op.ID),
		slog.Uint64("seq", op.Seq),
		slog.String("kind", string(op.Kind)),
		slog.String("target", op.Target),
	)
}

// Elapsed returns the time since the operation started
func (op *Operation) Elapsed() time.Duration {
	return time.Since(op.StartTime)
}
