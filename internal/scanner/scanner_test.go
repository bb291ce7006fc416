package scanner

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"StockScout/internal/model"
	"StockScout/internal/output"
	"StockScout/internal/recorder"
	"StockScout/internal/source"
)

var testStart = time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC)

func seriesFrom(symbol string, closes []float64) *model.PriceSeries {
	s := &model.PriceSeries{Symbol: symbol}
	for i, c := range closes {
		s.Bars = append(s.Bars, model.PriceBar{
			Date:     testStart.AddDate(0, 0, i),
			AdjClose: c,
		})
	}
	return s
}

func goldenCfg() DetectorConfig {
	return DetectorConfig{GoldenCross: true, ShortWindow: 2, LongWindow: 3}
}

func TestRunBatch_CountsEventsAndSkips(t *testing.T) {
	// ACME carries one golden cross; MISSING has no data at all and every
	// enabled detector fails on it, so it must be counted as skipped.
	src := &source.MockSource{Series: map[string]*model.PriceSeries{
		"ACME": seriesFrom("ACME", []float64{10, 10, 10, 10, 11, 12}),
	}}
	var buf bytes.Buffer
	listener := output.NewListener(&buf)

	s, err := RunBatch(src, listener, recorder.NewNoopRecorder(),
		[]string{"ACME", "MISSING"}, testStart, testStart.AddDate(0, 0, 5), 2, goldenCfg())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Symbols != 2 {
		t.Errorf("expected 2 symbols, got %d", s.Symbols)
	}
	if s.Skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", s.Skipped)
	}
	if s.EventCounts[model.EventGoldenCross] != 1 {
		t.Errorf("expected 1 golden cross, got %d", s.EventCounts[model.EventGoldenCross])
	}
	if s.TotalEvents() != 1 {
		t.Errorf("expected 1 total event, got %d", s.TotalEvents())
	}

	report := buf.String()
	if !strings.Contains(report, "Checking ACME...") {
		t.Error("expected per-symbol progress line for ACME")
	}
	if !strings.Contains(report, "GOLDEN_CROSS found: ACME") {
		t.Error("expected golden cross report block")
	}
	if !strings.Contains(report, "Couldn't get data for MISSING") {
		t.Error("expected data-absent report block for MISSING")
	}
}

func TestRunBatch_RecordsEvents(t *testing.T) {
	src := &source.MockSource{Series: map[string]*model.PriceSeries{
		"ACME": seriesFrom("ACME", []float64{10, 10, 10, 10, 11, 12}),
	}}
	listener := output.NewListener(&bytes.Buffer{})
	rec := &captureRecorder{}

	if _, err := RunBatch(src, listener, rec,
		[]string{"ACME"}, testStart, testStart.AddDate(0, 0, 5), 1, goldenCfg()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.events) != 1 {
		t.Fatalf("expected 1 recorded event, got %d", len(rec.events))
	}
	if rec.events[0].Symbol != "ACME" || rec.events[0].Kind != "GOLDEN_CROSS" {
		t.Errorf("unexpected event record: %+v", rec.events[0])
	}
	if len(rec.batches) != 1 {
		t.Fatalf("expected 1 batch record, got %d", len(rec.batches))
	}
	if rec.batches[0].Events != 1 || rec.batches[0].Symbols != 1 {
		t.Errorf("unexpected batch record: %+v", rec.batches[0])
	}
}

func TestRunBatch_Validation(t *testing.T) {
	src := &source.MockSource{Series: map[string]*model.PriceSeries{}}
	listener := output.NewListener(&bytes.Buffer{})
	end := testStart.AddDate(0, 0, 5)

	tests := []struct {
		name    string
		workers int
		start   time.Time
		end     time.Time
		cfg     DetectorConfig
	}{
		{"zero workers", 0, testStart, end, goldenCfg()},
		{"end before start", 2, end, testStart, goldenCfg()},
		{"short >= long", 2, testStart, end, DetectorConfig{GoldenCross: true, ShortWindow: 3, LongWindow: 3}},
		{"negative window", 2, testStart, end, DetectorConfig{GoldenCross: true, ShortWindow: -1, LongWindow: 3}},
		{"bad rsi period", 2, testStart, end, DetectorConfig{RSI: true, RSIPeriod: 0, Overbought: 80, Oversold: 20}},
		{"inverted thresholds", 2, testStart, end, DetectorConfig{RSI: true, RSIPeriod: 14, Overbought: 20, Oversold: 80}},
		{"study without horizon", 2, testStart, end, DetectorConfig{OversoldStudy: true, RSIPeriod: 14, Overbought: 80, Oversold: 20}},
		{"no detectors", 2, testStart, end, DetectorConfig{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RunBatch(src, listener, recorder.NewNoopRecorder(), []string{"A"}, tt.start, tt.end, tt.workers, tt.cfg); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestRunBatch_OversoldStudyFeedsSummary(t *testing.T) {
	src := &source.MockSource{Series: map[string]*model.PriceSeries{
		"DIP": seriesFrom("DIP", []float64{10, 9, 8, 7, 6, 7, 8, 9, 10, 11, 12}),
	}}
	listener := output.NewListener(&bytes.Buffer{})

	cfg := DetectorConfig{
		OversoldStudy: true,
		RSIPeriod:     2,
		Overbought:    80,
		Oversold:      20,
		HorizonDays:   3,
	}
	s, err := RunBatch(src, listener, recorder.NewNoopRecorder(),
		[]string{"DIP"}, testStart, testStart.AddDate(0, 0, 10), 1, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Occurrences == nil {
		t.Fatal("expected study occurrences in the summary")
	}
	if s.Occurrences.Occurrences != 1 {
		t.Errorf("expected 1 occurrence, got %d", s.Occurrences.Occurrences)
	}
	if len(s.Occurrences.Days) != 3 {
		t.Errorf("expected 3 horizon days, got %d", len(s.Occurrences.Days))
	}
}

func TestRunBatch_Movers(t *testing.T) {
	src := &source.MockSource{Series: map[string]*model.PriceSeries{
		"WIN":  seriesFrom("WIN", []float64{10, 10, 10, 10, 11, 12}),
		"LOSE": seriesFrom("LOSE", []float64{20, 20, 20, 20, 19, 18}),
	}}
	listener := output.NewListener(&bytes.Buffer{})

	cfg := goldenCfg()
	cfg.Movers = 1
	s, err := RunBatch(src, listener, recorder.NewNoopRecorder(),
		[]string{"WIN", "LOSE"}, testStart, testStart.AddDate(0, 0, 5), 2, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.TopMovers) != 1 || s.TopMovers[0].Symbol != "WIN" {
		t.Fatalf("expected WIN as top mover, got %+v", s.TopMovers)
	}
	if len(s.BottomMovers) != 1 || s.BottomMovers[0].Symbol != "LOSE" {
		t.Fatalf("expected LOSE as bottom mover, got %+v", s.BottomMovers)
	}
	if s.TopMovers[0].Change <= 0 || s.BottomMovers[0].Change >= 0 {
		t.Errorf("unexpected mover changes: top %.4f bottom %.4f",
			s.TopMovers[0].Change, s.BottomMovers[0].Change)
	}
}

func TestRunBatch_ConcurrentWorkersProcessEverySymbolOnce(t *testing.T) {
	base := seriesFrom("X", []float64{10, 10, 10, 10, 11, 12})
	series := make(map[string]*model.PriceSeries, 200)
	symbols := make([]string, 0, 200)
	for i := 0; i < 200; i++ {
		sym := "SYM" + strings.Repeat("A", i%5) + string(rune('A'+i%26)) + string(rune('A'+(i/26)%26))
		if _, dup := series[sym]; dup {
			t.Fatalf("duplicate test symbol %s", sym)
		}
		copied := *base
		copied.Symbol = sym
		series[sym] = &copied
		symbols = append(symbols, sym)
	}
	src := &source.MockSource{Series: series}
	listener := output.NewListener(&bytes.Buffer{})

	s, err := RunBatch(src, listener, recorder.NewNoopRecorder(),
		symbols, testStart, testStart.AddDate(0, 0, 5), 8, goldenCfg())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Skipped != 0 {
		t.Errorf("expected no skips, got %d", s.Skipped)
	}
	// One golden cross per symbol; a double count or a dropped symbol would
	// show up here.
	if got := s.EventCounts[model.EventGoldenCross]; got != 200 {
		t.Errorf("expected 200 events, got %d", got)
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	listener := output.NewListener(&buf)

	s := &BatchSummary{
		Symbols: 5,
		Skipped: 1,
		EventCounts: map[model.EventKind]int{
			model.EventGoldenCross: 2,
			model.EventOversold:    3,
		},
		TopMovers:    []Mover{{Symbol: "WIN", Change: 0.25}},
		BottomMovers: []Mover{{Symbol: "LOSE", Change: -0.1}},
		Elapsed:      1500 * time.Millisecond,
	}
	if err := WriteSummary(listener, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := buf.String()
	for _, want := range []string{
		"Symbols scanned: 5 (1 skipped)",
		"Events found: 5",
		"GOLDEN_CROSS: 2",
		"OVERSOLD: 3",
		"WIN +25.00%",
		"LOSE -10.00%",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("summary missing %q\n%s", want, report)
		}
	}
}

type captureRecorder struct {
	events  []recorder.EventRecord
	batches []recorder.BatchRecord
}

func (c *captureRecorder) RecordEvent(evt *recorder.EventRecord) error {
	c.events = append(c.events, *evt)
	return nil
}

func (c *captureRecorder) RecordBatch(b *recorder.BatchRecord) error {
	c.batches = append(c.batches, *b)
	return nil
}

func (c *captureRecorder) Close() error { return nil }
