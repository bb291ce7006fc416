package indicator

import (
	"time"

	"StockScout/internal/model"
)

const (
	macdFast       = 12
	macdSlow       = 26
	macdSignalSpan = 9
)

// MACDSeries holds the MACD line and its signal line. Signal covers a
// contiguous suffix of the MACD dates: the 9-day EMA warm-up rows of the
// signal line are trimmed, never zero-filled.
type MACDSeries struct {
	MACD   Series
	Signal Series
}

// MACD computes MACD = EMA(close,12) - EMA(close,26) and its signal line
// Signal = EMA(MACD,9). The MACD line is only defined where the 26-day EMA
// is, so the leading warm-up rows are dropped before the signal EMA is
// taken.
func MACD(series *model.PriceSeries) (MACDSeries, error) {
	closes := FromBars(series)

	fast, err := EMA(closes, macdFast)
	if err != nil {
		return MACDSeries{}, err
	}
	slow, err := EMA(closes, macdSlow)
	if err != nil {
		return MACDSeries{}, err
	}

	// Both EMAs are suffixes of the same bar dates; the slow one starts
	// later, so the MACD line inherits its dates.
	offset := fast.Len() - slow.Len()
	macd := Series{
		Dates:  make([]time.Time, slow.Len()),
		Values: make([]float64, slow.Len()),
	}
	for i := 0; i < slow.Len(); i++ {
		macd.Dates[i] = slow.Dates[i]
		macd.Values[i] = fast.Values[i+offset] - slow.Values[i]
	}

	signal, err := EMA(macd, macdSignalSpan)
	if err != nil {
		return MACDSeries{}, err
	}

	return MACDSeries{MACD: macd, Signal: signal}, nil
}
