package detector

import (
	"time"

	"StockScout/internal/indicator"
	"StockScout/internal/output"
	"StockScout/internal/source"
	"StockScout/internal/tracker"
)

// OversoldExitStudy searches [start, end] for runs of consecutive days with
// RSI at or below threshold that end with a close back above it. Each such
// exit is one occurrence; the price change from the exit day to each of the
// following 1..Horizon trading days (within the window) is recorded in the
// tracker. Progress and per-change details are reported through the
// listener, one contiguous block per occurrence.
//
// Returns the number of occurrences found for this symbol.
func OversoldExitStudy(src source.PriceSource, symbol string, start, end time.Time, period int, threshold float64, tr *tracker.ResultTracker, listener *output.Listener) (int, error) {
	series, err := fetchWindow(src, symbol, start, end, indicator.RSILookback(period))
	if err != nil {
		return 0, err
	}

	rsi, err := indicator.RSI(series, period)
	if err != nil {
		return 0, err
	}

	window := rsi.Slice(start, end)
	priceByDate := indicator.FromBars(series).ByDate()

	occurrences := 0
	msg := output.NewMessage()
	lastWasOversold := false

	for i, d := range window.Dates {
		if window.Values[i] <= threshold {
			lastWasOversold = true
			msg.AddLine("=====================================")
			msg.Addf("%s was oversold on %s", symbol, d.Format("2006-01-02"))
			msg.AddLine("=====================================")
			continue
		}
		if !lastWasOversold {
			continue
		}

		// First close back above the threshold ends the oversold run.
		lastWasOversold = false
		tr.RecordOccurrence()
		occurrences++

		base, ok := priceByDate[d]
		if ok && base != 0 {
			for j := i + 1; j <= i+tr.Horizon() && j < window.Len(); j++ {
				after, ok := priceByDate[window.Dates[j]]
				if !ok {
					continue
				}
				change := (after - base) / base
				msg.Addf("Recording change for %s of %.5f on day %d", symbol, change, j-i)
				tr.RecordChange(change, j-i)
			}
		}

		if err := listener.Send(msg); err != nil {
			return occurrences, err
		}
		msg.Reset()
	}

	if msg.Len() > 0 {
		// Window ended while still oversold: report the run, no occurrence.
		if err := listener.Send(msg); err != nil {
			return occurrences, err
		}
	}
	return occurrences, nil
}
