// Package source provides price data backends behind a single interface.
package source

import (
	"errors"
	"time"

	"StockScout/internal/model"
)

// ErrDataAbsent is returned when a backend has no price data for a symbol.
// It is a per-symbol condition: callers log it and move on, never abort the
// batch.
var ErrDataAbsent = errors.New("no price data for symbol")

// PriceSource fetches a date-ordered daily price series for one symbol over
// [start, end]. Implementations must return bars strictly increasing by date
// with no duplicates, and ErrDataAbsent when nothing is available.
type PriceSource interface {
	Fetch(symbol string, start, end time.Time) (*model.PriceSeries, error)
	Name() string
}
