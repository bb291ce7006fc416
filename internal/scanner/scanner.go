// Package scanner runs the concurrent batch analysis: a fixed pool of
// workers drains a shared symbol queue, runs the configured detectors per
// symbol, reports through the output listener, and aggregates statistics.
package scanner

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"StockScout/internal/detector"
	"StockScout/internal/indicator"
	"StockScout/internal/model"
	"StockScout/internal/output"
	"StockScout/internal/queue"
	"StockScout/internal/recorder"
	"StockScout/internal/source"
	"StockScout/internal/tracker"
)

// DetectorConfig selects which detectors run and with what parameters.
type DetectorConfig struct {
	GoldenCross bool
	ShortWindow int
	LongWindow  int

	MACDCross bool

	RSI        bool
	RSIPeriod  int
	Overbought float64
	Oversold   float64

	// OversoldStudy tracks price outcomes after oversold periods end.
	OversoldStudy bool
	HorizonDays   int

	// Movers is how many top and bottom range movers to report; 0 disables.
	Movers int
}

// Validate rejects configurations that would misbehave at runtime. Called
// before any worker is spawned; a failure here is fatal, unlike per-symbol
// data problems.
func (c *DetectorConfig) Validate() error {
	if c.GoldenCross {
		if c.ShortWindow <= 0 || c.LongWindow <= 0 {
			return errors.New("moving-average windows must be positive")
		}
		if c.ShortWindow >= c.LongWindow {
			return errors.New("short window must be less than long window")
		}
	}
	if c.RSI || c.OversoldStudy {
		if c.RSIPeriod <= 0 {
			return errors.New("rsi period must be positive")
		}
		if c.Oversold < 0 || c.Overbought > 100 || c.Oversold >= c.Overbought {
			return errors.New("rsi thresholds must satisfy 0 <= oversold < overbought <= 100")
		}
	}
	if c.OversoldStudy && c.HorizonDays < 1 {
		return errors.New("horizon days must be at least 1")
	}
	if c.Movers < 0 {
		return errors.New("movers must not be negative")
	}
	if !c.GoldenCross && !c.MACDCross && !c.RSI && !c.OversoldStudy {
		return errors.New("no detectors enabled")
	}
	return nil
}

// Mover is one symbol's fractional price change over the scanned range.
type Mover struct {
	Symbol string
	Change float64
}

// BatchSummary is the final result of a batch scan.
type BatchSummary struct {
	Symbols     int
	Skipped     int
	EventCounts map[model.EventKind]int
	// Occurrences is the oversold-study snapshot; nil when the study was
	// disabled or recorded nothing.
	Occurrences  *tracker.Summary
	TopMovers    []Mover
	BottomMovers []Mover
	Elapsed      time.Duration
}

// TotalEvents returns the number of events across all kinds.
func (s *BatchSummary) TotalEvents() int {
	total := 0
	for _, n := range s.EventCounts {
		total += n
	}
	return total
}

// batch carries the shared state of one run.
type batch struct {
	src      source.PriceSource
	listener *output.Listener
	rec      recorder.Recorder
	start    time.Time
	end      time.Time
	cfg      DetectorConfig
	tracker  *tracker.ResultTracker

	mu          sync.Mutex
	skipped     int
	eventCounts map[model.EventKind]int
	movers      []Mover
}

// RunBatch analyzes all symbols over [start, end] using a fixed pool of
// workers and returns the aggregated summary. Per-symbol failures are
// reported through the listener and never abort the batch; only
// misconfiguration fails up front.
func RunBatch(src source.PriceSource, listener *output.Listener, rec recorder.Recorder, symbols []string, start, end time.Time, workers int, cfg DetectorConfig) (*BatchSummary, error) {
	if workers <= 0 {
		return nil, errors.New("worker count must be positive")
	}
	if end.Before(start) {
		return nil, errors.New("end date before start date")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("detector config: %w", err)
	}

	horizon := cfg.HorizonDays
	if horizon < 1 {
		horizon = 1
	}
	b := &batch{
		src:         src,
		listener:    listener,
		rec:         rec,
		start:       start,
		end:         end,
		cfg:         cfg,
		tracker:     tracker.NewResultTracker(horizon),
		eventCounts: make(map[model.EventKind]int),
	}

	q := queue.NewSymbolQueue(symbols)
	began := time.Now()
	log.Printf("[INFO] batch scan started: %d symbols, %d workers, source=%s", len(symbols), workers, src.Name())

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				symbol, ok := q.Pop()
				if !ok {
					return
				}
				b.processSymbol(symbol)
			}
		}()
	}
	wg.Wait()

	summary := b.summarize(len(symbols), time.Since(began))

	occurrences := 0
	if summary.Occurrences != nil {
		occurrences = summary.Occurrences.Occurrences
	}
	if err := rec.RecordBatch(&recorder.BatchRecord{
		StartedAt:   began,
		FinishedAt:  time.Now(),
		Source:      src.Name(),
		Symbols:     summary.Symbols,
		Skipped:     summary.Skipped,
		Events:      summary.TotalEvents(),
		Occurrences: occurrences,
	}); err != nil {
		log.Printf("[ERROR] record batch: %v", err)
	}

	log.Printf("[INFO] batch scan finished in %v: %d events, %d skipped", summary.Elapsed, summary.TotalEvents(), summary.Skipped)
	return summary, nil
}

// processSymbol runs every enabled detector for one symbol. This is the
// per-iteration error boundary: data gaps are reported and counted, nothing
// propagates out.
func (b *batch) processSymbol(symbol string) {
	msg := output.NewMessage()
	msg.Addf("Checking %s...", symbol)
	b.send(msg)
	msg.Reset()

	var events []model.Event
	failures := 0
	detectors := 0

	if b.cfg.GoldenCross {
		detectors++
		found, err := detector.GoldenCross(b.src, symbol, b.start, b.end, b.cfg.ShortWindow, b.cfg.LongWindow)
		if err != nil {
			failures++
			b.reportFailure(msg, symbol, err)
		}
		events = append(events, found...)
	}

	if b.cfg.MACDCross {
		detectors++
		found, err := detector.MACDSignalCross(b.src, symbol, b.start, b.end)
		if err != nil {
			failures++
			b.reportFailure(msg, symbol, err)
		}
		events = append(events, found...)
	}

	if b.cfg.RSI {
		detectors++
		found, err := detector.OverboughtOversold(b.src, symbol, b.start, b.end, b.cfg.RSIPeriod, b.cfg.Overbought, b.cfg.Oversold)
		if err != nil {
			failures++
			b.reportFailure(msg, symbol, err)
		}
		events = append(events, found...)
	}

	if b.cfg.OversoldStudy {
		detectors++
		if _, err := detector.OversoldExitStudy(b.src, symbol, b.start, b.end, b.cfg.RSIPeriod, b.cfg.Oversold, b.tracker, b.listener); err != nil {
			failures++
			b.reportFailure(msg, symbol, err)
		}
	}

	for _, evt := range events {
		msg.AddLine("============|============")
		msg.Addf("%s found: %s", evt.Kind, evt.Symbol)
		msg.Addf("On day %s", evt.Date.Format("2006-01-02"))
		msg.AddLine("============|============")
		if err := b.rec.RecordEvent(&recorder.EventRecord{Symbol: evt.Symbol, Date: evt.Date, Kind: string(evt.Kind)}); err != nil {
			log.Printf("[ERROR] record event for %s: %v", evt.Symbol, err)
		}
	}
	if msg.Len() > 0 {
		b.send(msg)
		msg.Reset()
	}

	if b.cfg.Movers > 0 {
		b.recordMover(symbol)
	}

	b.mu.Lock()
	if detectors > 0 && failures == detectors {
		b.skipped++
	}
	for _, evt := range events {
		b.eventCounts[evt.Kind]++
	}
	b.mu.Unlock()
}

// reportFailure turns a per-symbol error into a report block. Data gaps are
// expected for new listings and delistings; anything else is also logged.
func (b *batch) reportFailure(msg *output.Message, symbol string, err error) {
	msg.AddLine("******************************************************")
	switch {
	case errors.Is(err, source.ErrDataAbsent):
		msg.Addf("Couldn't get data for %s", symbol)
	case errors.Is(err, indicator.ErrInsufficientData):
		msg.Addf("Not enough history for %s", symbol)
	default:
		msg.Addf("Couldn't analyze %s: %v", symbol, err)
		log.Printf("[WARN] analyze %s: %v", symbol, err)
	}
	msg.AddLine("******************************************************")
}

// recordMover notes the symbol's fractional change across the scan range.
func (b *batch) recordMover(symbol string) {
	series, err := b.src.Fetch(symbol, b.start, b.end)
	if err != nil || series.Len() < 2 {
		return
	}
	first := series.Bars[0].AdjClose
	last := series.Bars[series.Len()-1].AdjClose
	if first == 0 {
		return
	}
	b.mu.Lock()
	b.movers = append(b.movers, Mover{Symbol: symbol, Change: (last - first) / first})
	b.mu.Unlock()
}

// summarize builds the final snapshot after all workers have joined.
func (b *batch) summarize(symbols int, elapsed time.Duration) *BatchSummary {
	s := &BatchSummary{
		Symbols:     symbols,
		Skipped:     b.skipped,
		EventCounts: b.eventCounts,
		Elapsed:     elapsed,
	}

	if b.cfg.OversoldStudy {
		snap, err := b.tracker.Summarize()
		if err != nil {
			if !errors.Is(err, tracker.ErrNoData) {
				log.Printf("[ERROR] summarize tracker: %v", err)
			}
		} else {
			s.Occurrences = snap
		}
	}

	if b.cfg.Movers > 0 && len(b.movers) > 0 {
		sorted := make([]Mover, len(b.movers))
		copy(sorted, b.movers)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Change > sorted[j].Change })

		x := b.cfg.Movers
		if x > len(sorted) {
			x = len(sorted)
		}
		s.TopMovers = append(s.TopMovers, sorted[:x]...)
		for i := 0; i < x; i++ {
			s.BottomMovers = append(s.BottomMovers, sorted[len(sorted)-1-i])
		}
	}
	return s
}

func (b *batch) send(msg *output.Message) {
	if err := b.listener.Send(msg); err != nil {
		log.Printf("[WARN] write report: %v", err)
	}
}
