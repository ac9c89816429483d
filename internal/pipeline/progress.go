package pipeline

import "sync/atomic"

// Snapshot is a point-in-time view of run progress.
type Snapshot struct {
	Total   int `json:"total"`
	Done    int `json:"done"`
	Scored  int `json:"scored"`
	Nulls   int `json:"nulls"`
	Pending int `json:"pending"`
}

// Tracker keeps run counters. Done starts at the number of outcomes
// already in the store so a resumed run picks up where the bar left
// off instead of starting from zero.
type Tracker struct {
	total  atomic.Int64
	done   atomic.Int64
	scored atomic.Int64
	nulls  atomic.Int64
}

// Begin resets the counters for a run.
func (t *Tracker) Begin(total, alreadyDone int) {
	t.total.Store(int64(total))
	t.done.Store(int64(alreadyDone))
	t.scored.Store(0)
	t.nulls.Store(0)
}

// Record counts one terminal outcome.
func (t *Tracker) Record(scored bool) {
	t.done.Add(1)
	if scored {
		t.scored.Add(1)
	} else {
		t.nulls.Add(1)
	}
}

// Snapshot returns the current counters.
func (t *Tracker) Snapshot() Snapshot {
	total := int(t.total.Load())
	done := int(t.done.Load())

	pending := total - done
	if pending < 0 {
		pending = 0
	}

	return Snapshot{
		Total:   total,
		Done:    done,
		Scored:  int(t.scored.Load()),
		Nulls:   int(t.nulls.Load()),
		Pending: pending,
	}
}
