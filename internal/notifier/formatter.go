package notifier

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"StockScout/internal/model"
	"StockScout/internal/scanner"
)

// FormatBatchReport formats a completed batch scan into a Telegram message.
func FormatBatchReport(s *scanner.BatchSummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>StockScout scan</b> | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Symbols: %d (skipped %d)\n", s.Symbols, s.Skipped))
	b.WriteString(fmt.Sprintf("Elapsed: %v\n\n", s.Elapsed.Round(10*time.Millisecond)))

	if s.TotalEvents() == 0 {
		b.WriteString("No events found.\n")
	} else {
		b.WriteString(fmt.Sprintf("📈 <b>Events:</b> %d\n", s.TotalEvents()))
		kinds := make([]model.EventKind, 0, len(s.EventCounts))
		for k := range s.EventCounts {
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
		for _, k := range kinds {
			b.WriteString(fmt.Sprintf("  %s: %d\n", k, s.EventCounts[k]))
		}
	}

	if s.Occurrences != nil {
		b.WriteString(fmt.Sprintf("\n🔍 <b>Oversold exits:</b> %d\n", s.Occurrences.Occurrences))
		for _, day := range s.Occurrences.Days {
			b.WriteString(fmt.Sprintf("  day %d: P(up)=%.2f avg=%+.2f%%\n",
				day.Day, day.ProbabilityOfIncrease, day.AvgChangePerChange*100))
		}
	}

	if len(s.TopMovers) > 0 {
		b.WriteString("\n🚀 <b>Top movers:</b>\n")
		for _, m := range s.TopMovers {
			b.WriteString(fmt.Sprintf("  %s %+.2f%%\n", m.Symbol, m.Change*100))
		}
		b.WriteString("📉 <b>Bottom movers:</b>\n")
		for _, m := range s.BottomMovers {
			b.WriteString(fmt.Sprintf("  %s %+.2f%%\n", m.Symbol, m.Change*100))
		}
	}

	return b.String()
}
