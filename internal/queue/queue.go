// Package queue provides the shared symbol queue drained by scan workers.
package queue

import "sync"

// SymbolQueue is a pop-only FIFO of stock symbols shared by all workers.
// Each symbol is delivered to exactly one caller; once empty, Pop returns
// false forever. Nothing is ever added after construction.
type SymbolQueue struct {
	mu      sync.Mutex
	symbols []string
	head    int
}

// NewSymbolQueue builds a queue holding a copy of the given symbols.
func NewSymbolQueue(symbols []string) *SymbolQueue {
	q := &SymbolQueue{symbols: make([]string, len(symbols))}
	copy(q.symbols, symbols)
	return q
}

// Pop removes and returns the next symbol. The second return is false when
// the queue is exhausted, which is the normal worker-termination signal.
func (q *SymbolQueue) Pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.head >= len(q.symbols) {
		return "", false
	}
	s := q.symbols[q.head]
	q.head++
	return s, true
}

// Remaining returns the number of symbols not yet popped.
func (q *SymbolQueue) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.symbols) - q.head
}
