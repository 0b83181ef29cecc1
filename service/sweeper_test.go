package service

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"proberegistry/domain"
	"proberegistry/helpers"
	"proberegistry/interfaces"
	"proberegistry/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSweeper_Panics(t *testing.T) {
	store := &mock.ProbeStoreMock{}
	mirror := &mock.CacheMock[domain.ProbeRecord]{}
	holder := &mock.MetricsHolderMock{}
	clock := helpers.NewTestClock()
	logger := log.NewNopLogger()

	tests := []struct {
		name   string
		store  interfaces.ProbeStore
		mirror interfaces.Cache[domain.ProbeRecord]
		holder interfaces.MetricsHolder
		clock  interfaces.TimeProvider
		logger log.Logger
		want   string
	}{
		{"store_nil", nil, mirror, holder, clock, logger, "service.sweeper.go: store is required"},
		{"mirror_nil", store, nil, holder, clock, logger, "service.sweeper.go: mirror is required"},
		{"metrics_nil", store, mirror, nil, clock, logger, "service.sweeper.go: metrics is required"},
		{"time_provider_nil", store, mirror, holder, nil, logger, "service.sweeper.go: timeProvider is required"},
		{"logger_nil", store, mirror, holder, clock, nil, "service.sweeper.go: logger is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PanicsWithValue(t, tt.want, func() {
				NewSweeper(tt.store, tt.mirror, tt.holder, tt.clock, time.Second, tt.logger)
			})
		})
	}
}

func TestNewSweeper_DefaultInterval(t *testing.T) {
	s := NewSweeper(&mock.ProbeStoreMock{}, &mock.CacheMock[domain.ProbeRecord]{}, &mock.MetricsHolderMock{},
		helpers.NewTestClock(), 0, log.NewNopLogger())
	assert.Equal(t, DefaultSweepInterval, s.Interval())

	s = NewSweeper(&mock.ProbeStoreMock{}, &mock.CacheMock[domain.ProbeRecord]{}, &mock.MetricsHolderMock{},
		helpers.NewTestClock(), 3*time.Second, log.NewNopLogger())
	assert.Equal(t, 3*time.Second, s.Interval())
}

func TestSweeper_Sweep(t *testing.T) {
	clock := helpers.NewTestClock()
	start := clock.Now()
	store := NewProbeStore(clock)
	holder := NewMetricsHolder(start)
	mirror := &mock.CacheMock[domain.ProbeRecord]{}

	var buf bytes.Buffer
	sweeper := NewSweeper(store, mirror, holder, clock, time.Minute, log.NewLogfmtLogger(log.NewSyncWriter(&buf)))

	store.Upsert(probe("10.0.0.1", 1, 5))
	store.Upsert(probe("10.0.0.2", 2, 60))
	store.Upsert(probe("10.0.0.3", 3, 5))
	clock.Advance(30 * time.Second)

	report := sweeper.Sweep(context.Background())

	assert.Equal(t, []string{"10.0.0.1:1", "10.0.0.3:3"}, report.RemovedIDs)
	assert.Equal(t, 1, report.Remaining)
	assert.Equal(t, clock.Now(), report.StartedAt)
	assert.Equal(t, clock.Now(), report.FinishedAt)

	snap := holder.Snapshot()
	assert.Equal(t, 2, snap.ProbesRemoved)
	assert.Equal(t, store.Len(), snap.ProbeCount)
	assert.Equal(t, report.SizeBytes, snap.StoreSizeBytes)
	assert.Equal(t, 30*time.Second, snap.Uptime)
	assert.Equal(t, start, snap.StartTime)
	assert.Equal(t, 1, snap.SweepsTotal)

	calls := mirror.DeleteValueCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "10.0.0.1:1", calls[0].Key)
	assert.Equal(t, "10.0.0.3:3", calls[1].Key)

	out := buf.String()
	assert.Contains(t, out, `msg="removed probes due to aging"`)
	assert.Contains(t, out, "ids=10.0.0.1:1,10.0.0.3:3")
	assert.Contains(t, out, "sweep_id=")
}

func TestSweeper_Sweep_NothingExpired(t *testing.T) {
	clock := helpers.NewTestClock()
	store := NewProbeStore(clock)
	holder := NewMetricsHolder(clock.Now())
	mirror := &mock.CacheMock[domain.ProbeRecord]{}
	sweeper := NewSweeper(store, mirror, holder, clock, time.Minute, log.NewNopLogger())

	store.Upsert(probe("10.0.0.1", 1, 60))
	clock.Advance(time.Second)

	report := sweeper.Sweep(context.Background())
	assert.Empty(t, report.RemovedIDs)
	assert.Empty(t, mirror.DeleteValueCalls())
	assert.Equal(t, 1, holder.Snapshot().ProbeCount)
	assert.Equal(t, 0, holder.Snapshot().ProbesRemoved)
}

func TestSweeper_Sweep_MirrorErrorIsLogged(t *testing.T) {
	clock := helpers.NewTestClock()
	store := NewProbeStore(clock)
	mirror := &mock.CacheMock[domain.ProbeRecord]{
		DeleteValueFunc: func(ctx context.Context, key string) error {
			return errors.New("connection refused")
		},
	}
	var buf bytes.Buffer
	sweeper := NewSweeper(store, mirror, NewMetricsHolder(clock.Now()), clock, time.Minute,
		log.NewLogfmtLogger(log.NewSyncWriter(&buf)))

	store.Upsert(probe("10.0.0.1", 1, 1))
	clock.Advance(2 * time.Second)

	report := sweeper.Sweep(context.Background())
	assert.Equal(t, []string{"10.0.0.1:1"}, report.RemovedIDs)
	assert.Equal(t, 0, store.Len())
	assert.Contains(t, buf.String(), "failed to delete evicted probe from mirror")
	assert.Contains(t, buf.String(), `err="connection refused"`)
}

func TestSweeper_Sweep_RecoversFromPanic(t *testing.T) {
	store := &mock.ProbeStoreMock{
		SweepExpiredFunc: func(now time.Time) domain.SweepReport {
			panic("corrupted record")
		},
	}
	holder := &mock.MetricsHolderMock{}
	var buf bytes.Buffer
	sweeper := NewSweeper(store, &mock.CacheMock[domain.ProbeRecord]{}, holder, helpers.NewTestClock(), time.Minute,
		log.NewLogfmtLogger(log.NewSyncWriter(&buf)))

	var report domain.SweepReport
	require.NotPanics(t, func() {
		report = sweeper.Sweep(context.Background())
	})
	assert.Equal(t, domain.SweepReport{}, report)
	assert.Empty(t, holder.PublishCalls())
	assert.Contains(t, buf.String(), `msg="sweep cycle failed"`)
	assert.Contains(t, buf.String(), `err="corrupted record"`)
}

func TestSweeper_Sweep_RecoversFromUnusableClock(t *testing.T) {
	store := &mock.ProbeStoreMock{}
	holder := &mock.MetricsHolderMock{}
	var buf bytes.Buffer
	// the zero time is before the ULID epoch, so no sweep id can be built from it
	sweeper := NewSweeper(store, &mock.CacheMock[domain.ProbeRecord]{}, holder, &mock.TimeProviderMock{}, time.Minute,
		log.NewLogfmtLogger(log.NewSyncWriter(&buf)))

	var report domain.SweepReport
	require.NotPanics(t, func() {
		report = sweeper.Sweep(context.Background())
	})
	assert.Equal(t, domain.SweepReport{}, report)
	assert.Empty(t, store.SweepExpiredCalls())
	assert.Empty(t, holder.PublishCalls())
	assert.Contains(t, buf.String(), `msg="sweep cycle failed"`)
}

func TestSweeper_Sweep_LogsSkipped(t *testing.T) {
	store := &mock.ProbeStoreMock{
		SweepExpiredFunc: func(now time.Time) domain.SweepReport {
			return domain.SweepReport{SkippedIDs: []string{"10.0.0.9:9"}, Remaining: 1}
		},
	}
	var buf bytes.Buffer
	holder := &mock.MetricsHolderMock{}
	sweeper := NewSweeper(store, &mock.CacheMock[domain.ProbeRecord]{}, holder, helpers.NewTestClock(), time.Minute,
		log.NewLogfmtLogger(log.NewSyncWriter(&buf)))

	sweeper.Sweep(context.Background())

	require.Len(t, holder.PublishCalls(), 1)
	assert.Equal(t, 1, holder.PublishCalls()[0].Report.Remaining)
	assert.Contains(t, buf.String(), "ids=10.0.0.9:9")
}

func TestSweeper_Run_SurvivesFailingCycles(t *testing.T) {
	var cycles atomic.Int32
	store := &mock.ProbeStoreMock{
		SweepExpiredFunc: func(now time.Time) domain.SweepReport {
			if cycles.Add(1)%2 == 1 {
				panic("odd cycle")
			}
			return domain.SweepReport{}
		},
	}
	sweeper := NewSweeper(store, &mock.CacheMock[domain.ProbeRecord]{}, &mock.MetricsHolderMock{},
		NewTimeProvider(time.Now), 5*time.Millisecond, log.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return cycles.Load() >= 4 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}

func TestSweeper_Run_StopsBeforeFirstTick(t *testing.T) {
	store := &mock.ProbeStoreMock{}
	sweeper := NewSweeper(store, &mock.CacheMock[domain.ProbeRecord]{}, &mock.MetricsHolderMock{},
		helpers.NewTestClock(), time.Hour, log.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sweeper.Run(ctx)

	assert.Empty(t, store.SweepExpiredCalls())
}

func TestSweeper_EndToEndScenario(t *testing.T) {
	clock := helpers.NewTestClock()
	t0 := clock.Now()
	store := NewProbeStore(clock)
	holder := NewMetricsHolder(t0)
	sweeper := NewSweeper(store, &mock.CacheMock[domain.ProbeRecord]{}, holder, clock, time.Minute, log.NewNopLogger())

	store.Upsert(probe("10.0.0.5", 8100, 5))

	clock.Set(t0.Add(3 * time.Second))
	assert.Contains(t, store.Snapshot(), "10.0.0.5:8100")

	clock.Set(t0.Add(6 * time.Second))
	report := sweeper.Sweep(context.Background())
	assert.Equal(t, []string{"10.0.0.5:8100"}, report.RemovedIDs)

	clock.Set(t0.Add(6100 * time.Millisecond))
	assert.Empty(t, store.Snapshot())

	snap := holder.Snapshot()
	assert.Equal(t, 1, snap.ProbesRemoved)
	assert.Equal(t, 0, snap.ProbeCount)
	assert.Equal(t, 6*time.Second, snap.Uptime)
}
