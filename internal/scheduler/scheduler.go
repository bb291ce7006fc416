package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"StockScout/internal/config"
	"StockScout/internal/notifier"
	"StockScout/internal/output"
	"StockScout/internal/recorder"
	"StockScout/internal/scanner"
	"StockScout/internal/source"

	"github.com/robfig/cron/v3"
)

// Scheduler runs batch scans on a cron schedule and serves Telegram commands.
type Scheduler struct {
	Cron     *cron.Cron
	Source   source.PriceSource
	Listener *output.Listener
	Notifier *notifier.TelegramNotifier
	Recorder recorder.Recorder
	Config   *config.Config
	Symbols  []string
	Ctx      context.Context

	mu      sync.Mutex
	last    *scanner.BatchSummary
	lastRun time.Time
	running bool
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, src source.PriceSource, listener *output.Listener, tn *notifier.TelegramNotifier, rec recorder.Recorder, cfg *config.Config, symbols []string) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Source:   src,
		Listener: listener,
		Notifier: tn,
		Recorder: rec,
		Config:   cfg,
		Symbols:  symbols,
		Ctx:      ctx,
	}
}

// Register registers the scan task.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the scan task immediately (for manual trigger / one-shot start).
func (s *Scheduler) RunNow() {
	s.scanTask()
}

// DetectorConfig builds the scanner configuration from the loaded config.
func DetectorConfig(cfg *config.Config) scanner.DetectorConfig {
	return scanner.DetectorConfig{
		GoldenCross:   cfg.Detectors.GoldenCross.Enabled,
		ShortWindow:   cfg.Detectors.GoldenCross.Short,
		LongWindow:    cfg.Detectors.GoldenCross.Long,
		MACDCross:     cfg.Detectors.MACDCross.Enabled,
		RSI:           cfg.Detectors.RSI.Enabled,
		RSIPeriod:     cfg.Detectors.RSI.Period,
		Overbought:    cfg.Detectors.RSI.Overbought,
		Oversold:      cfg.Detectors.RSI.Oversold,
		OversoldStudy: cfg.Detectors.OversoldStudy.Enabled,
		HorizonDays:   cfg.Scan.HorizonDays,
		Movers:        cfg.Scan.Movers,
	}
}

func (s *Scheduler) scanTask() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Println("[WARN] scan already running, skipping trigger")
		return
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	log.Println("[INFO] running scheduled scan")
	start, end := s.Config.DateRange()

	summary, err := scanner.RunBatch(s.Source, s.Listener, s.Recorder,
		s.Symbols, start, end, s.Config.Scan.Workers, DetectorConfig(s.Config))
	if err != nil {
		log.Printf("[ERROR] scheduled scan: %v", err)
		s.trySend(fmt.Sprintf("❌ Scan failed: %v", err))
		return
	}

	if err := scanner.WriteSummary(s.Listener, summary); err != nil {
		log.Printf("[WARN] write scan summary: %v", err)
	}

	s.mu.Lock()
	s.last = summary
	s.lastRun = time.Now()
	s.mu.Unlock()

	s.trySend(notifier.FormatBatchReport(summary))
}

// LastSummary returns the most recent scan result, or nil before the first run.
func (s *Scheduler) LastSummary() *scanner.BatchSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/scan":
		go s.scanTask()
		return "Scan started."
	case "/summary":
		s.mu.Lock()
		last, when := s.last, s.lastRun
		s.mu.Unlock()
		if last == nil {
			return "No scan has completed yet."
		}
		return fmt.Sprintf("Last scan %s\n\n%s", when.Format("2006-01-02 15:04"), notifier.FormatBatchReport(last))
	case "/help":
		return "Commands:\n• /scan — run a scan now\n• /summary — last scan results\n• /help"
	default:
		return "Unknown command. Try /help."
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
