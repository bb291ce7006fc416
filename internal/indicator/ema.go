package indicator

import (
	"errors"
	"time"
)

// EMA computes the n-day exponential moving average of the given series.
// The seed value is the simple average of the first n points, placed on the
// n-th point's date; subsequent values use multiplier 2/(n+1):
//
//	ema[i] = v[i]*a + ema[i-1]*(1-a)
//
// At least n+1 points are required so that the output contains one real
// recursive value beyond the seed.
func EMA(s Series, n int) (Series, error) {
	if n <= 0 {
		return Series{}, errors.New("window must be positive")
	}
	if s.Len() < EMALookback(n) {
		return Series{}, ErrInsufficientData
	}

	alpha := 2.0 / float64(n+1)

	seed := 0.0
	for i := 0; i < n; i++ {
		seed += s.Values[i]
	}
	seed /= float64(n)

	out := Series{
		Dates:  make([]time.Time, 0, s.Len()-n+1),
		Values: make([]float64, 0, s.Len()-n+1),
	}
	out.Dates = append(out.Dates, s.Dates[n-1])
	out.Values = append(out.Values, seed)

	ema := seed
	for i := n; i < s.Len(); i++ {
		ema = s.Values[i]*alpha + ema*(1-alpha)
		out.Dates = append(out.Dates, s.Dates[i])
		out.Values = append(out.Values, ema)
	}
	return out, nil
}
