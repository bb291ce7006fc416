// Command pull downloads price history from Yahoo and saves it, one .csv
// file per symbol, into a cache directory that the csv data source can read
// back. Usage:
//
//	pull -dir data/prices -symbols symbols.txt [-start 2010-01-01] [-end 2024-12-31] [-workers 6]
package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"sync"
	"time"

	"StockScout/internal/output"
	"StockScout/internal/queue"
	"StockScout/internal/source"
	"StockScout/internal/symbols"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	dir := flag.String("dir", "data/prices", "destination directory for .csv files")
	symbolsFile := flag.String("symbols", "", "file with one symbol per line")
	startStr := flag.String("start", "2010-01-01", "start date (YYYY-MM-DD)")
	endStr := flag.String("end", "", "end date (YYYY-MM-DD), defaults to today")
	workers := flag.Int("workers", 6, "number of concurrent downloads")
	flag.Parse()

	if *symbolsFile == "" {
		log.Fatal("[FATAL] -symbols is required")
	}
	start, err := time.Parse("2006-01-02", *startStr)
	if err != nil {
		log.Fatalf("[FATAL] parse start date: %v", err)
	}
	end := time.Now().UTC().Truncate(24 * time.Hour)
	if *endStr != "" {
		if end, err = time.Parse("2006-01-02", *endStr); err != nil {
			log.Fatalf("[FATAL] parse end date: %v", err)
		}
	}

	syms, err := symbols.LoadLineFile(*symbolsFile)
	if err != nil {
		log.Fatalf("[FATAL] load symbols: %v", err)
	}
	log.Printf("[INFO] pulling %d symbols into %s", len(syms), *dir)

	yahoo := source.NewYahooSource(os.Getenv("HTTPS_PROXY"))
	cache := source.NewCSVSource(*dir)
	listener := output.NewListener(os.Stdout)
	q := queue.NewSymbolQueue(syms)

	began := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg := output.NewMessage()
			for {
				symbol, ok := q.Pop()
				if !ok {
					return
				}
				msg.Reset()
				msg.Addf("Saving %s...", symbol)
				if err := listener.Send(msg); err != nil {
					log.Printf("[WARN] write report: %v", err)
				}
				msg.Reset()

				series, err := yahoo.Fetch(symbol, start, end)
				if err != nil {
					msg.AddLine("*****************************")
					if errors.Is(err, source.ErrDataAbsent) {
						msg.Addf("No data for %s", symbol)
					} else {
						msg.Addf("Error fetching %s: %v", symbol, err)
					}
					msg.AddLine("*****************************")
					if err := listener.Send(msg); err != nil {
						log.Printf("[WARN] write report: %v", err)
					}
					continue
				}
				if err := cache.Save(series); err != nil {
					log.Printf("[ERROR] save %s: %v", symbol, err)
				}
			}
		}()
	}
	wg.Wait()

	log.Printf("[INFO] pull finished in %v", time.Since(began))
}
