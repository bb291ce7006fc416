package detector

import (
	"time"

	"StockScout/internal/indicator"
	"StockScout/internal/model"
	"StockScout/internal/source"
)

// GoldenCross returns every date in [start, end] on which the shortN-day
// simple moving average crossed above the longN-day one. All crossing dates
// in range are reported, not just the most recent.
func GoldenCross(src source.PriceSource, symbol string, start, end time.Time, shortN, longN int) ([]model.Event, error) {
	series, err := fetchWindow(src, symbol, start, end, indicator.SMALookback(longN))
	if err != nil {
		return nil, err
	}

	shortAvg, err := indicator.SMA(series, shortN)
	if err != nil {
		return nil, err
	}
	longAvg, err := indicator.SMA(series, longN)
	if err != nil {
		return nil, err
	}

	var events []model.Event
	for _, d := range crossDates(shortAvg, longAvg) {
		if !inRange(d, start, end) {
			continue
		}
		events = append(events, model.Event{Symbol: symbol, Date: d, Kind: model.EventGoldenCross})
	}
	return events, nil
}
