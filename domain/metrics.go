package domain

import "time"

// SweepReport is the outcome of one eviction cycle.
type SweepReport struct {
	StartedAt  time.Time
	FinishedAt time.Time
	RemovedIDs []string // evicted as stale
	SkippedIDs []string // records the sweep could not judge, kept in place
	Remaining  int      // records left in the store after the sweep
	SizeBytes  int      // approximate store size after the sweep
}

// Duration is the wall time spent in the cycle.
func (r SweepReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// MetricsSnapshot is the process-wide registry state published after every sweep.
type MetricsSnapshot struct {
	StartTime      time.Time
	ProbesRemoved  int // removed by the last sweep
	ProbeCount     int
	StoreSizeBytes int
	SweepDuration  time.Duration // last sweep
	Uptime         time.Duration // LastSweepAt - StartTime
	LastSweepAt    time.Time     // zero until the first sweep

	SweepsTotal        int
	ProbesRemovedTotal int
}
