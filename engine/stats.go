package engine

import "time"

// Stats summarises tick execution and game progress.
type Stats struct {
	Ticks        int64
	MinDuration  time.Duration
	MaxDuration  time.Duration
	AvgDuration  time.Duration
	LastDuration time.Duration
	TotalTime    time.Duration

	PiecesLocked int
	RowsCleared  int
	Holds        int
	HardDrops    int
	// Deferred is the number of queued actions not yet run.
	Deferred int
}

type tickStats struct {
	count         int64
	minDuration   time.Duration
	maxDuration   time.Duration
	totalDuration time.Duration
	lastDuration  time.Duration
}

func (s *tickStats) record(d time.Duration) {
	if s.count == 0 || d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
	s.count++
	s.lastDuration = d
	s.totalDuration += d
}

// Stats returns a copy of the current statistics.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	avg := time.Duration(0)
	if e.ticks.count > 0 {
		avg = e.ticks.totalDuration / time.Duration(e.ticks.count)
	}
	return Stats{
		Ticks:        e.ticks.count,
		MinDuration:  e.ticks.minDuration,
		MaxDuration:  e.ticks.maxDuration,
		AvgDuration:  avg,
		LastDuration: e.ticks.lastDuration,
		TotalTime:    e.ticks.totalDuration,
		PiecesLocked: e.piecesLocked,
		RowsCleared:  e.rowsCleared,
		Holds:        e.holds,
		HardDrops:    e.hardDrops,
		Deferred:     e.later.pending,
	}
}
