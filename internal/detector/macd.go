package detector

import (
	"time"

	"StockScout/internal/indicator"
	"StockScout/internal/model"
	"StockScout/internal/source"
)

// trendWindow is the EMA length of the long-term trend filter applied to
// MACD signal crossovers.
const trendWindow = 200

// MACDSignalCross returns every date in [start, end] on which the MACD line
// crossed above its signal line while price sat above the 200-day EMA. The
// crossover test and the trend gate are joined by date: a date missing from
// any involved series produces no event.
func MACDSignalCross(src source.PriceSource, symbol string, start, end time.Time) ([]model.Event, error) {
	lookback := indicator.EMALookback(trendWindow)
	if mb := indicator.MACDLookback(); mb > lookback {
		lookback = mb
	}
	series, err := fetchWindow(src, symbol, start, end, lookback)
	if err != nil {
		return nil, err
	}

	macd, err := indicator.MACD(series)
	if err != nil {
		return nil, err
	}
	trend, err := indicator.EMA(indicator.FromBars(series), trendWindow)
	if err != nil {
		return nil, err
	}

	trendByDate := trend.ByDate()
	priceByDate := indicator.FromBars(series).ByDate()

	var events []model.Event
	for _, d := range crossDates(macd.MACD, macd.Signal) {
		if !inRange(d, start, end) {
			continue
		}
		price, ok := priceByDate[d]
		if !ok {
			continue
		}
		ema, ok := trendByDate[d]
		if !ok {
			continue
		}
		if price > ema {
			events = append(events, model.Event{Symbol: symbol, Date: d, Kind: model.EventMACDSignalCross})
		}
	}
	return events, nil
}
