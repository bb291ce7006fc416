package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"StockScout/internal/config"
	"StockScout/internal/notifier"
	"StockScout/internal/output"
	"StockScout/internal/recorder"
	"StockScout/internal/scanner"
	"StockScout/internal/scheduler"
	"StockScout/internal/source"
	"StockScout/internal/symbols"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockScout starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init price source
	var src source.PriceSource
	switch cfg.DataSource.Provider {
	case "csv":
		src = source.NewCSVSource(cfg.DataSource.CSVDir)
	default:
		src = source.NewYahooSource(cfg.DataSource.Proxy)
	}
	log.Printf("[INFO] data source: %s", src.Name())

	// Resolve symbol list
	syms := cfg.Scan.Symbols
	if cfg.Scan.SymbolsFile != "" {
		loaded, err := symbols.LoadLineFile(cfg.Scan.SymbolsFile)
		if err != nil {
			log.Fatalf("[FATAL] load symbols: %v", err)
		}
		syms = append(syms, loaded...)
	}
	if cfg.Scan.ListingFile != "" {
		loaded, err := symbols.LoadListingFile(cfg.Scan.ListingFile)
		if err != nil {
			log.Fatalf("[FATAL] load listing: %v", err)
		}
		syms = append(syms, loaded...)
	}
	if len(syms) == 0 {
		log.Fatal("[FATAL] no symbols to scan")
	}
	log.Printf("[INFO] %d symbols to scan", len(syms))

	// Report sink
	var sink io.Writer = os.Stdout
	if cfg.Output.File != "" {
		f, err := os.Create(cfg.Output.File)
		if err != nil {
			log.Fatalf("[FATAL] open output file: %v", err)
		}
		defer f.Close()
		sink = f
	}
	listener := output.NewListener(sink)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// One-shot mode: run a single batch scan and exit
	if !cfg.Schedule.Enabled {
		start, end := cfg.DateRange()
		summary, err := scanner.RunBatch(src, listener, rec, syms, start, end,
			cfg.Scan.Workers, scheduler.DetectorConfig(cfg))
		if err != nil {
			log.Fatalf("[FATAL] scan: %v", err)
		}
		if err := scanner.WriteSummary(listener, summary); err != nil {
			log.Printf("[WARN] write summary: %v", err)
		}
		return
	}

	// Scheduled mode: cron scans plus Telegram commands
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.DataSource.Proxy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, src, listener, tn, rec, cfg, syms)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		go sched.RunNow()
	}

	log.Println("[INFO] StockScout is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] StockScout stopped")
}
