package service

import (
	"sync"
	"time"

	"proberegistry/domain"
	"proberegistry/interfaces"
)

// metricsHolder implements interfaces.MetricsHolder. Written by the sweeper after each cycle,
// read by the /metrics handlers and the Prometheus collector.
type metricsHolder struct {
	mu       sync.RWMutex
	snapshot domain.MetricsSnapshot
}

// NewMetricsHolder creates a holder whose uptime is measured from startTime.
func NewMetricsHolder(startTime time.Time) interfaces.MetricsHolder {
	return &metricsHolder{
		snapshot: domain.MetricsSnapshot{StartTime: startTime},
	}
}

func (m *metricsHolder) Publish(report domain.SweepReport) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := len(report.RemovedIDs)
	m.snapshot.ProbesRemoved = removed
	m.snapshot.ProbeCount = report.Remaining
	m.snapshot.StoreSizeBytes = report.SizeBytes
	m.snapshot.SweepDuration = report.Duration()
	m.snapshot.LastSweepAt = report.FinishedAt
	m.snapshot.Uptime = report.FinishedAt.Sub(m.snapshot.StartTime)
	m.snapshot.SweepsTotal++
	m.snapshot.ProbesRemovedTotal += removed
}

func (m *metricsHolder) Snapshot() domain.MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
