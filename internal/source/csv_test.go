package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"StockScout/internal/model"
)

func TestCSVSource_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := NewCSVSource(dir)

	base := time.Date(2019, 6, 3, 0, 0, 0, 0, time.UTC)
	series := &model.PriceSeries{Symbol: "ACME"}
	for i, c := range []float64{10, 10.5, 11, 10.8} {
		series.Bars = append(series.Bars, model.PriceBar{Date: base.AddDate(0, 0, i), AdjClose: c})
	}
	if err := src.Save(series); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := src.Fetch("ACME", base, base.AddDate(0, 0, 10))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got.Len() != 4 {
		t.Fatalf("expected 4 bars, got %d", got.Len())
	}
	if got.Bars[1].AdjClose != 10.5 {
		t.Errorf("expected 10.5, got %v", got.Bars[1].AdjClose)
	}

	// Range truncation.
	got, err = src.Fetch("ACME", base.AddDate(0, 0, 1), base.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("fetch truncated: %v", err)
	}
	if got.Len() != 2 {
		t.Errorf("expected 2 bars in truncated range, got %d", got.Len())
	}
}

func TestCSVSource_MissingSymbol(t *testing.T) {
	src := NewCSVSource(t.TempDir())
	if _, err := src.Fetch("NOPE", time.Now().AddDate(0, 0, -5), time.Now()); !errors.Is(err, ErrDataAbsent) {
		t.Fatalf("expected ErrDataAbsent, got %v", err)
	}
}

func TestCSVSource_CloseColumnFallback(t *testing.T) {
	dir := t.TempDir()
	content := "Date,Close\n2019-06-03,12.5\n2019-06-04,13.0\n"
	if err := os.WriteFile(filepath.Join(dir, "FALL.csv"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	src := NewCSVSource(dir)
	got, err := src.Fetch("FALL", time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2019, 6, 30, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got.Len() != 2 || got.Bars[0].AdjClose != 12.5 {
		t.Errorf("unexpected series: %+v", got.Bars)
	}
}
