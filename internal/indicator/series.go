package indicator

import (
	"time"

	"StockScout/internal/model"
)

// Series is a date-indexed column of indicator values. Dates and Values are
// parallel slices: every date present has a defined value, so warm-up rows
// that lack enough history are simply absent from the series.
type Series struct {
	Dates  []time.Time
	Values []float64
}

// Len returns the number of defined rows.
func (s Series) Len() int { return len(s.Dates) }

// Slice returns the rows of s whose dates fall within [start, end].
func (s Series) Slice(start, end time.Time) Series {
	var out Series
	for i, d := range s.Dates {
		if d.Before(start) || d.After(end) {
			continue
		}
		out.Dates = append(out.Dates, d)
		out.Values = append(out.Values, s.Values[i])
	}
	return out
}

// ByDate returns a lookup map from date to value. Used to align two series
// that may cover different date ranges.
func (s Series) ByDate() map[time.Time]float64 {
	m := make(map[time.Time]float64, len(s.Dates))
	for i, d := range s.Dates {
		m[d] = s.Values[i]
	}
	return m
}

// FromBars converts a price series into a plain Series of adjusted closes.
func FromBars(series *model.PriceSeries) Series {
	return Series{Dates: series.Dates(), Values: series.Closes()}
}
