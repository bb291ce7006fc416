package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"StockScout/internal/model"
)

// CSVSource implements PriceSource over a directory of locally cached price
// files, one <SYMBOL>.csv per symbol with at least "Date" and "Adj Close"
// (or "Close") columns. See the pull command for populating such a cache.
type CSVSource struct {
	Dir string
}

// NewCSVSource creates a source reading from the given directory.
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{Dir: dir}
}

func (s *CSVSource) Name() string { return "csv" }

// Fetch reads the symbol's cached file and returns bars within [start, end].
func (s *CSVSource) Fetch(symbol string, start, end time.Time) (*model.PriceSeries, error) {
	f, err := os.Open(filepath.Join(s.Dir, symbol+".csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrDataAbsent
		}
		return nil, fmt.Errorf("open csv for %s: %w", symbol, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header for %s: %w", symbol, err)
	}

	dateCol, closeCol := -1, -1
	for i, name := range header {
		switch name {
		case "Date":
			dateCol = i
		case "Adj Close":
			closeCol = i
		case "Close":
			if closeCol == -1 {
				closeCol = i
			}
		}
	}
	if dateCol == -1 || closeCol == -1 {
		return nil, fmt.Errorf("csv for %s missing Date/Adj Close columns", symbol)
	}

	series := &model.PriceSeries{Symbol: symbol, FetchedAt: time.Now()}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row for %s: %w", symbol, err)
		}
		date, err := time.Parse("2006-01-02", record[dateCol])
		if err != nil {
			continue // header-like or malformed row
		}
		close, err := strconv.ParseFloat(record[closeCol], 64)
		if err != nil || close == 0 {
			continue
		}
		series.Bars = append(series.Bars, model.PriceBar{Date: date, AdjClose: close})
	}
	if len(series.Bars) == 0 {
		return nil, ErrDataAbsent
	}

	sort.Slice(series.Bars, func(i, j int) bool { return series.Bars[i].Date.Before(series.Bars[j].Date) })

	out := series.Slice(start, end)
	if out.Len() == 0 {
		return nil, ErrDataAbsent
	}
	return out, nil
}

// Save writes a fetched series into the cache directory in the same format
// Fetch reads back.
func (s *CSVSource) Save(series *model.PriceSeries) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	f, err := os.Create(filepath.Join(s.Dir, series.Symbol+".csv"))
	if err != nil {
		return fmt.Errorf("create csv for %s: %w", series.Symbol, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Date", "Adj Close"}); err != nil {
		return err
	}
	for _, b := range series.Bars {
		if err := w.Write([]string{b.Date.Format("2006-01-02"), strconv.FormatFloat(b.AdjClose, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
