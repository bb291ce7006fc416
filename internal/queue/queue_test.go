package queue

import (
	"fmt"
	"sync"
	"testing"
)

func TestPop_FIFO(t *testing.T) {
	q := NewSymbolQueue([]string{"AAPL", "MSFT", "GOOG"})
	for _, want := range []string{"AAPL", "MSFT", "GOOG"} {
		got, ok := q.Pop()
		if !ok {
			t.Fatalf("queue exhausted early, wanted %s", want)
		}
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Error("expected exhausted queue to return false")
	}
	if _, ok := q.Pop(); ok {
		t.Error("exhausted queue must stay exhausted")
	}
}

func TestPop_ExactlyOnceUnderConcurrency(t *testing.T) {
	const n = 2000
	const workers = 8

	symbols := make([]string, n)
	for i := range symbols {
		symbols[i] = fmt.Sprintf("SYM%04d", i)
	}
	q := NewSymbolQueue(symbols)

	var mu sync.Mutex
	seen := make(map[string]int, n)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				s, ok := q.Pop()
				if !ok {
					return
				}
				mu.Lock()
				seen[s]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Fatalf("expected %d distinct symbols delivered, got %d", n, len(seen))
	}
	for s, count := range seen {
		if count != 1 {
			t.Errorf("symbol %s delivered %d times", s, count)
		}
	}
	if q.Remaining() != 0 {
		t.Errorf("expected empty queue, %d remaining", q.Remaining())
	}
}

func TestNewSymbolQueue_CopiesInput(t *testing.T) {
	src := []string{"A", "B"}
	q := NewSymbolQueue(src)
	src[0] = "MUTATED"
	got, _ := q.Pop()
	if got != "A" {
		t.Errorf("queue must own its symbols; got %s", got)
	}
}
