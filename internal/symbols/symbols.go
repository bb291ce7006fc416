// Package symbols loads stock symbol lists from files.
package symbols

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// isPlainSymbol reports whether s consists only of letters. Exchange listing
// files carry test issues, units and warrants with ".", "$" or "^" in the
// ticker; those fetch poorly and are filtered out.
func isPlainSymbol(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// LoadLineFile reads a plain symbol list, one symbol per line. Blank lines
// and symbols containing non-letter characters are skipped.
func LoadLineFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbol list: %w", err)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		sym := strings.TrimSpace(scanner.Text())
		if !isPlainSymbol(sym) {
			continue
		}
		out = append(out, strings.ToUpper(sym))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read symbol list: %w", err)
	}
	return out, nil
}

// LoadListingFile reads a pipe-delimited exchange listing file (the
// nasdaqtraded.txt format) and returns the values of its "Symbol" column,
// filtered the same way as LoadLineFile.
func LoadListingFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open listing file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read listing file: %w", err)
		}
		return nil, fmt.Errorf("listing file %s is empty", path)
	}

	header := strings.Split(scanner.Text(), "|")
	col := -1
	for i, name := range header {
		if strings.TrimSpace(name) == "Symbol" {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("listing file %s has no Symbol column", path)
	}

	var out []string
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "|")
		if col >= len(fields) {
			continue
		}
		sym := strings.TrimSpace(fields[col])
		if !isPlainSymbol(sym) {
			continue
		}
		out = append(out, strings.ToUpper(sym))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read listing file: %w", err)
	}
	return out, nil
}
