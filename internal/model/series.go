package model

import "time"

// PriceBar represents one trading day of adjusted price data.
type PriceBar struct {
	Date     time.Time
	AdjClose float64
}

// PriceSeries holds a date-ordered run of daily bars for one symbol.
// Bars are strictly increasing by date with no duplicates; a series is
// never mutated after the source returns it.
type PriceSeries struct {
	Symbol    string
	Bars      []PriceBar
	FetchedAt time.Time
}

// Len returns the number of bars in the series.
func (s *PriceSeries) Len() int { return len(s.Bars) }

// Closes returns the adjusted closing prices in date order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.AdjClose
	}
	return closes
}

// Dates returns the bar dates in order.
func (s *PriceSeries) Dates() []time.Time {
	dates := make([]time.Time, len(s.Bars))
	for i, b := range s.Bars {
		dates[i] = b.Date
	}
	return dates
}

// Slice returns a new series containing only bars within [start, end].
func (s *PriceSeries) Slice(start, end time.Time) *PriceSeries {
	out := &PriceSeries{Symbol: s.Symbol, FetchedAt: s.FetchedAt}
	for _, b := range s.Bars {
		if b.Date.Before(start) || b.Date.After(end) {
			continue
		}
		out.Bars = append(out.Bars, b)
	}
	return out
}
