package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"proberegistry/domain"
	"proberegistry/helpers"
	"proberegistry/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// DefaultSweepInterval is used when the configured interval is not positive.
const DefaultSweepInterval = 60 * time.Second

// mirrorTimeout bounds each mirror delete issued after a sweep.
const mirrorTimeout = 5 * time.Second

// Sweeper periodically evicts probes that did not re-register within their keepalive.
// Each cycle takes one reading of the clock, runs ProbeStore.SweepExpired under the store lock,
// publishes the result to the metrics holder and then, outside the lock, drops evicted ids from
// the mirror.
type Sweeper struct {
	store        interfaces.ProbeStore
	mirror       interfaces.Cache[domain.ProbeRecord]
	metrics      interfaces.MetricsHolder
	timeProvider interfaces.TimeProvider
	interval     time.Duration
	logger       log.Logger
}

// NewSweeper creates a Sweeper. Panics on nil dependencies.
//
// Called from cmd/main; Run is started in its own goroutine.
func NewSweeper(
	store interfaces.ProbeStore,
	mirror interfaces.Cache[domain.ProbeRecord],
	metrics interfaces.MetricsHolder,
	timeProvider interfaces.TimeProvider,
	interval time.Duration,
	logger log.Logger,
) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		store:        helpers.NilPanic(store, "service.sweeper.go: store is required"),
		mirror:       helpers.NilPanic(mirror, "service.sweeper.go: mirror is required"),
		metrics:      helpers.NilPanic(metrics, "service.sweeper.go: metrics is required"),
		timeProvider: helpers.NilPanic(timeProvider, "service.sweeper.go: timeProvider is required"),
		interval:     interval,
		logger:       log.WithPrefix(helpers.NilPanic(logger, "service.sweeper.go: logger is required"), "component", "Sweeper"),
	}
}

// Interval returns the time between two cycles.
func (s *Sweeper) Interval() time.Duration {
	return s.interval
}

// Run sweeps every interval until ctx is cancelled. A failing cycle is logged and the loop
// carries on with the next tick.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	level.Info(s.logger).Log("msg", "sweeper started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			level.Info(s.logger).Log("msg", "sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one eviction cycle and returns its report. A panic raised inside the cycle is
// recovered and logged; the returned report is then empty and no metrics are published.
func (s *Sweeper) Sweep(ctx context.Context) (report domain.SweepReport) {
	logger := s.logger
	defer func() {
		if r := recover(); r != nil {
			level.Error(logger).Log("msg", "sweep cycle failed", "err", fmt.Sprint(r))
			report = domain.SweepReport{}
		}
	}()

	startedAt := s.timeProvider.Now()
	logger = log.With(s.logger, "sweep_id", newSweepID(startedAt))

	level.Debug(logger).Log("msg", "sweep started", "probe_count", s.store.Len())

	report = s.store.SweepExpired(startedAt)
	report.StartedAt = startedAt
	report.FinishedAt = s.timeProvider.Now()
	s.metrics.Publish(report)

	if len(report.SkippedIDs) > 0 {
		level.Warn(logger).Log(
			"msg", "kept probes with unusable timestamp or keepalive",
			"count", len(report.SkippedIDs),
			"ids", strings.Join(report.SkippedIDs, ","),
		)
	}
	if len(report.RemovedIDs) > 0 {
		level.Warn(logger).Log(
			"msg", "removed probes due to aging",
			"count", len(report.RemovedIDs),
			"ids", strings.Join(report.RemovedIDs, ","),
		)
		s.forget(ctx, logger, report.RemovedIDs)
	}
	level.Debug(logger).Log(
		"msg", "sweep finished",
		"remaining", report.Remaining,
		"size_bytes", report.SizeBytes,
		"duration", report.Duration(),
	)
	return report
}

// forget removes evicted probes from the mirror. Failures are logged only; the mirror entry
// expires on its own TTL.
func (s *Sweeper) forget(ctx context.Context, logger log.Logger, ids []string) {
	for _, id := range ids {
		deleteCtx, cancel := context.WithTimeout(ctx, mirrorTimeout)
		if err := s.mirror.DeleteValue(deleteCtx, id); err != nil {
			level.Warn(logger).Log("msg", "failed to delete evicted probe from mirror", "id", id, "err", err)
		}
		cancel()
	}
}
