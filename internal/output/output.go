// Package output serializes multi-line reports from concurrent workers into
// non-interleaved blocks on a shared text sink.
package output

import (
	"fmt"
	"io"
	"sync"
)

// Message is an ordered, resettable buffer of report lines. It is owned by a
// single worker at a time and is never shared; workers build a message, hand
// it whole to a Listener, then reset it for reuse.
type Message struct {
	lines []string
}

// NewMessage returns an empty message.
func NewMessage() *Message { return &Message{} }

// AddLine appends one line to the message.
func (m *Message) AddLine(line string) {
	m.lines = append(m.lines, line)
}

// Addf appends one formatted line to the message.
func (m *Message) Addf(format string, args ...any) {
	m.lines = append(m.lines, fmt.Sprintf(format, args...))
}

// Len returns the number of buffered lines.
func (m *Message) Len() int { return len(m.lines) }

// Lines returns a copy of the buffered lines.
func (m *Message) Lines() []string {
	out := make([]string, len(m.lines))
	copy(out, m.lines)
	return out
}

// Reset empties the message for reuse.
func (m *Message) Reset() { m.lines = m.lines[:0] }

// Listener writes messages to a sink. A single mutex held for the listener's
// lifetime guarantees that concurrent Send calls never interleave their
// lines: each message appears as one contiguous block, blocks totally
// ordered by lock acquisition.
type Listener struct {
	mu sync.Mutex
	w  io.Writer
}

// NewListener returns a listener writing to w.
func NewListener(w io.Writer) *Listener {
	return &Listener{w: w}
}

// Send writes every line of the message, in order, as one block. The lock is
// held only for the duration of the writes, never across the computation
// that produced the message.
func (l *Listener) Send(m *Message) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range m.lines {
		if _, err := fmt.Fprintln(l.w, line); err != nil {
			return fmt.Errorf("write line: %w", err)
		}
	}
	return nil
}
