package symbols

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadLineFile(t *testing.T) {
	path := writeFile(t, "symbols.txt", "AAPL\nmsft\n\n  GOOG  \nBRK.B\nTEST$\n123\n")

	got, err := LoadLineFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"AAPL", "MSFT", "GOOG"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestLoadLineFile_Missing(t *testing.T) {
	if _, err := LoadLineFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadListingFile(t *testing.T) {
	content := "Nasdaq Traded|Symbol|Security Name|Test Issue\n" +
		"Y|AAPL|Apple Inc.|N\n" +
		"Y|BRK.A|Berkshire Class A|N\n" +
		"Y|TSLA|Tesla Inc.|N\n" +
		"Y|ZTEST$|Test issue|Y\n"
	path := writeFile(t, "nasdaqtraded.txt", content)

	got, err := LoadListingFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"AAPL", "TSLA"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestLoadListingFile_NoSymbolColumn(t *testing.T) {
	path := writeFile(t, "bad.txt", "Ticker|Name\nAAPL|Apple\n")
	if _, err := LoadListingFile(path); err == nil {
		t.Error("expected error for missing Symbol column")
	}
}
