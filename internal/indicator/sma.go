package indicator

import (
	"errors"
	"time"

	"StockScout/internal/model"
)

// SMA computes the n-day simple moving average of adjusted closes. The first
// defined row falls on the n-th bar's date.
func SMA(series *model.PriceSeries, n int) (Series, error) {
	if n <= 0 {
		return Series{}, errors.New("window must be positive")
	}
	bars := series.Bars
	if len(bars) < SMALookback(n) {
		return Series{}, ErrInsufficientData
	}

	out := Series{
		Dates:  make([]time.Time, 0, len(bars)-n+1),
		Values: make([]float64, 0, len(bars)-n+1),
	}
	sum := 0.0
	for i, b := range bars {
		sum += b.AdjClose
		if i >= n {
			sum -= bars[i-n].AdjClose
		}
		if i >= n-1 {
			out.Dates = append(out.Dates, b.Date)
			out.Values = append(out.Values, sum/float64(n))
		}
	}
	return out, nil
}
