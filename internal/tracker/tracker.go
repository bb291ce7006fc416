// Package tracker accumulates statistics relating detected events to the
// price changes that follow them.
package tracker

import (
	"errors"
	"sync"
)

// ErrNoData is returned by Summarize when no occurrences were recorded;
// the averages would otherwise divide by zero.
var ErrNoData = errors.New("no occurrences recorded")

// ResultTracker records, across many symbols and many workers, how often a
// statistical event occurred and how price moved 1..N trading days after
// each occurrence. Every operation is a single short critical section, so
// workers may call it freely while holding no other locks.
type ResultTracker struct {
	mu             sync.Mutex
	occurrences    int
	changeSums     []float64
	changeCounts   []int
	increaseCounts []int
}

// NewResultTracker builds a tracker covering horizons of 1..days trading
// days after an occurrence.
func NewResultTracker(days int) *ResultTracker {
	if days < 1 {
		days = 1
	}
	return &ResultTracker{
		changeSums:     make([]float64, days),
		changeCounts:   make([]int, days),
		increaseCounts: make([]int, days),
	}
}

// Horizon returns the number of forward days this tracker covers.
func (t *ResultTracker) Horizon() int { return len(t.changeSums) }

// RecordOccurrence notes one occurrence of the tracked event.
func (t *ResultTracker) RecordOccurrence() {
	t.mu.Lock()
	t.occurrences++
	t.mu.Unlock()
}

// RecordChange notes that price had changed by the given fraction (0.05 for
// +5%) on the day-th trading day after an occurrence. Days outside 1..Horizon
// are ignored. The sum, count, and increase tally move together under one
// lock so readers never see a partial update.
func (t *ResultTracker) RecordChange(change float64, day int) {
	if day < 1 || day > len(t.changeSums) {
		return
	}
	t.mu.Lock()
	t.changeSums[day-1] += change
	t.changeCounts[day-1]++
	if change > 0 {
		t.increaseCounts[day-1]++
	}
	t.mu.Unlock()
}

// DayStats summarizes outcomes for one forward horizon. When Changes is
// zero, AvgChangePerChange is meaningless and reported as zero rather than
// NaN; callers should check Changes before quoting it.
type DayStats struct {
	Day                   int
	ProbabilityOfIncrease float64
	// AvgChangePerOccurrence normalizes by total occurrences, penalizing
	// horizons with fewer recorded changes near series boundaries.
	AvgChangePerOccurrence float64
	// AvgChangePerChange normalizes by the number of recorded changes,
	// directly averaging the observed moves.
	AvgChangePerChange float64
	Changes            int
	Increases          int
}

// Summary is a read-only snapshot of tracker state, taken after all workers
// have joined.
type Summary struct {
	Occurrences int
	Days        []DayStats
}

// Summarize computes the snapshot. Returns ErrNoData when nothing was
// recorded.
func (t *ResultTracker) Summarize() (*Summary, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.occurrences == 0 {
		return nil, ErrNoData
	}

	s := &Summary{
		Occurrences: t.occurrences,
		Days:        make([]DayStats, len(t.changeSums)),
	}
	for i := range t.changeSums {
		d := DayStats{
			Day:                    i + 1,
			ProbabilityOfIncrease:  float64(t.increaseCounts[i]) / float64(t.occurrences),
			AvgChangePerOccurrence: t.changeSums[i] / float64(t.occurrences),
			Changes:                t.changeCounts[i],
			Increases:              t.increaseCounts[i],
		}
		if t.changeCounts[i] > 0 {
			d.AvgChangePerChange = t.changeSums[i] / float64(t.changeCounts[i])
		}
		s.Days[i] = d
	}
	return s, nil
}
