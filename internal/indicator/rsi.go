package indicator

import (
	"errors"
	"time"

	"StockScout/internal/model"
)

// RSI computes the Wilder-smoothed Relative Strength Index over the given
// period. Per-day gain is max(close[i]-close[i-1], 0) and loss is the
// positive counterpart; the first average gain/loss is the simple mean of
// the first period values, and later averages use
//
//	avg[i] = ((period-1)*avg[i-1] + value[i]) / period
//
// RSI is 100 - 100/(1+avgGain/avgLoss), defined as exactly 100 when avgLoss
// is zero. Requires period+1 bars; the first defined row falls one day after
// the seed window.
func RSI(series *model.PriceSeries, period int) (Series, error) {
	if period <= 0 {
		return Series{}, errors.New("period must be positive")
	}
	bars := series.Bars
	if len(bars) < RSILookback(period) {
		return Series{}, ErrInsufficientData
	}

	gains := make([]float64, len(bars)-1)
	losses := make([]float64, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		diff := bars[i].AdjClose - bars[i-1].AdjClose
		if diff > 0 {
			gains[i-1] = diff
		} else {
			losses[i-1] = -diff
		}
	}

	var avgGain, avgLoss float64
	for i := 0; i < period; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	out := Series{
		Dates:  make([]time.Time, 0, len(bars)-period),
		Values: make([]float64, 0, len(bars)-period),
	}
	out.Dates = append(out.Dates, bars[period].Date)
	out.Values = append(out.Values, rsiValue(avgGain, avgLoss))

	for i := period; i < len(gains); i++ {
		avgGain = (avgGain*float64(period-1) + gains[i]) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + losses[i]) / float64(period)
		out.Dates = append(out.Dates, bars[i+1].Date)
		out.Values = append(out.Values, rsiValue(avgGain, avgLoss))
	}
	return out, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
