package scanner

import (
	"sort"
	"time"

	"StockScout/internal/model"
	"StockScout/internal/output"
)

const timeRound = 10 * time.Millisecond

// WriteSummary sends the end-of-batch report through the listener as one
// block.
func WriteSummary(listener *output.Listener, s *BatchSummary) error {
	msg := output.NewMessage()
	msg.AddLine("==================== SCAN SUMMARY ====================")
	msg.Addf("Symbols scanned: %d (%d skipped)", s.Symbols, s.Skipped)
	msg.Addf("Elapsed: %v", s.Elapsed.Round(timeRound))

	if len(s.EventCounts) > 0 {
		msg.Addf("Events found: %d", s.TotalEvents())
		kinds := make([]model.EventKind, 0, len(s.EventCounts))
		for k := range s.EventCounts {
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
		for _, k := range kinds {
			msg.Addf("  %s: %d", k, s.EventCounts[k])
		}
	} else {
		msg.AddLine("Events found: 0")
	}

	if s.Occurrences != nil {
		msg.Addf("Oversold exits studied: %d", s.Occurrences.Occurrences)
		for _, day := range s.Occurrences.Days {
			msg.Addf("  day %d: P(up)=%.2f avg/occurrence=%.4f avg/change=%.4f (%d samples)",
				day.Day, day.ProbabilityOfIncrease, day.AvgChangePerOccurrence, day.AvgChangePerChange, day.Changes)
		}
	}

	if len(s.TopMovers) > 0 {
		msg.AddLine("Top movers:")
		for _, m := range s.TopMovers {
			msg.Addf("  %s %+.2f%%", m.Symbol, m.Change*100)
		}
		msg.AddLine("Bottom movers:")
		for _, m := range s.BottomMovers {
			msg.Addf("  %s %+.2f%%", m.Symbol, m.Change*100)
		}
	}

	msg.AddLine("======================================================")
	return listener.Send(msg)
}
