package indicator

import (
	"errors"
	"math"
)

// ErrInsufficientData is returned when a series has fewer rows than the
// indicator's lookback requires. Callers that over-fetch by CalendarDays
// avoid it in the common case; it surfaces genuine gaps such as new
// listings or trading halts.
var ErrInsufficientData = errors.New("not enough data for indicator lookback")

// Lookback requirements: the number of trading days needed before the first
// day an indicator can produce a value consumers can rely on.

// SMALookback returns the lookback for an n-day simple moving average.
func SMALookback(n int) int { return n }

// EMALookback returns the lookback for an n-day exponential moving average.
// One extra point beyond the seed window is required for the first real
// recursive value.
func EMALookback(n int) int { return n + 1 }

// RSILookback returns the lookback for an RSI of the given period. The extra
// day covers the first day's gain/loss computation.
func RSILookback(period int) int { return period + 1 }

// MACDLookback returns the lookback for MACD(12,26) plus its 9-day signal
// line: the long EMA warm-up, the signal warm-up, and one day.
func MACDLookback() int { return macdSlow + macdSignalSpan + 1 }

// CalendarDays converts a trading-day lookback into calendar days to subtract
// from a requested start date. Weekends and holidays take up somewhat less
// than 3/7ths of all days, so the buffer over-fetches rather than inverting
// the trading calendar exactly.
func CalendarDays(lookback int) int {
	return lookback + int(math.Ceil(float64(3*lookback)/7.0))
}
