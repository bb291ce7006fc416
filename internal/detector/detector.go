// Package detector finds technical events in historical price series:
// moving-average crossovers, MACD signal crossovers, and RSI
// overbought/oversold periods. Detectors fetch their own price window with
// enough lookback for the indicators they use and only report events within
// the requested date range.
package detector

import (
	"time"

	"StockScout/internal/indicator"
	"StockScout/internal/model"
	"StockScout/internal/source"
)

// fetchWindow fetches [start - calendarBuffer(lookback), end] so that the
// indicator has defined values from start onward. The price source never
// needs to understand indicator lookback.
func fetchWindow(src source.PriceSource, symbol string, start, end time.Time, lookback int) (*model.PriceSeries, error) {
	fetchStart := start.AddDate(0, 0, -indicator.CalendarDays(lookback))
	return src.Fetch(symbol, fetchStart, end)
}

// crossDates returns the dates on which series a crosses above series b:
// a <= b on the previous day and a > b on the day itself, so a tie counts
// as "not yet crossed". The two series are aligned by date; day pairs where
// b is undefined produce no events.
func crossDates(a, b indicator.Series) []time.Time {
	bv := b.ByDate()
	var out []time.Time
	for i := 1; i < a.Len(); i++ {
		prevB, ok := bv[a.Dates[i-1]]
		if !ok {
			continue
		}
		curB, ok := bv[a.Dates[i]]
		if !ok {
			continue
		}
		if a.Values[i-1] <= prevB && a.Values[i] > curB {
			out = append(out, a.Dates[i])
		}
	}
	return out
}

func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}
