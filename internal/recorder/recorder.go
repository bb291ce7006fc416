package recorder

import "time"

// EventRecord is one detected event as persisted.
type EventRecord struct {
	Symbol string
	Date   time.Time
	Kind   string
}

// BatchRecord summarizes one completed batch scan.
type BatchRecord struct {
	StartedAt   time.Time
	FinishedAt  time.Time
	Source      string
	Symbols     int
	Skipped     int
	Events      int
	Occurrences int
}

// Recorder persists scan results for later analysis. Implementations must be
// safe for concurrent use: workers record events while the scan runs.
type Recorder interface {
	RecordEvent(evt *EventRecord) error
	RecordBatch(b *BatchRecord) error
	Close() error
}
