package interfaces

import "proberegistry/domain"

// MetricsHolder keeps the latest MetricsSnapshot. The sweeper is the only writer.
//
//go:generate moq -stub -out mock/metrics_holder.go -pkg mock . MetricsHolder
type MetricsHolder interface {
	// Publish folds a finished sweep into the snapshot.
	Publish(report domain.SweepReport)

	// Snapshot returns the current metrics without triggering a sweep.
	Snapshot() domain.MetricsSnapshot
}
