package model

import "time"

// EventKind identifies what a detector found.
type EventKind string

const (
	EventGoldenCross     EventKind = "GOLDEN_CROSS"
	EventMACDSignalCross EventKind = "MACD_SIGNAL_CROSS"
	EventOverbought      EventKind = "OVERBOUGHT"
	EventOversold        EventKind = "OVERSOLD"
)

// Event records a single detection on one symbol. Immutable once produced.
type Event struct {
	Symbol string
	Date   time.Time
	Kind   EventKind
}
