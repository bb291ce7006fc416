package source

import (
	"time"

	"StockScout/internal/model"
)

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Series map[string]*model.PriceSeries
	Err    error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Fetch(symbol string, start, end time.Time) (*model.PriceSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.Series[symbol]
	if !ok {
		return nil, ErrDataAbsent
	}
	out := s.Slice(start, end)
	if out.Len() == 0 {
		return nil, ErrDataAbsent
	}
	return out, nil
}
