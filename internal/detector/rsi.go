package detector

import (
	"time"

	"StockScout/internal/indicator"
	"StockScout/internal/model"
	"StockScout/internal/source"
)

// OverboughtOversold classifies each day in [start, end] by its RSI reading:
// at or above high is overbought, at or below low is oversold. Days are
// classified independently; transition tracking is layered on by
// OversoldExitStudy.
func OverboughtOversold(src source.PriceSource, symbol string, start, end time.Time, period int, high, low float64) ([]model.Event, error) {
	series, err := fetchWindow(src, symbol, start, end, indicator.RSILookback(period))
	if err != nil {
		return nil, err
	}

	rsi, err := indicator.RSI(series, period)
	if err != nil {
		return nil, err
	}

	window := rsi.Slice(start, end)
	var events []model.Event
	for i, d := range window.Dates {
		switch {
		case window.Values[i] >= high:
			events = append(events, model.Event{Symbol: symbol, Date: d, Kind: model.EventOverbought})
		case window.Values[i] <= low:
			events = append(events, model.Event{Symbol: symbol, Date: d, Kind: model.EventOversold})
		}
	}
	return events, nil
}
