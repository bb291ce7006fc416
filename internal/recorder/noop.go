package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordEvent(_ *EventRecord) error { return nil }
func (n *NoopRecorder) RecordBatch(_ *BatchRecord) error { return nil }
func (n *NoopRecorder) Close() error                     { return nil }
