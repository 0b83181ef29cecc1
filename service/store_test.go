package service

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"proberegistry/domain"
	"proberegistry/helpers"
	"proberegistry/interfaces/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probe(address string, port int, keepalive int) domain.ProbeRecord {
	return domain.ProbeRecord{
		Address:          address,
		Port:             port,
		Group:            "none",
		KeepaliveSeconds: keepalive,
		Meta:             map[string]any{"version": "1.0"},
	}
}

func TestNewProbeStore_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "service.store.go: timeProvider is required", func() {
		NewProbeStore(nil)
	})
}

func TestProbeStore_Upsert(t *testing.T) {
	clock := helpers.NewTestClock()
	st := NewProbeStore(clock)

	in := probe("10.0.0.5", 8100, 5)
	in.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC) // client value is ignored
	got := st.Upsert(in)

	assert.Equal(t, "10.0.0.5:8100", got.ID)
	assert.Equal(t, helpers.TestNow(), got.CreatedAt)
	assert.Equal(t, 1, st.Len())

	stored, ok := st.Get("10.0.0.5:8100")
	require.True(t, ok)
	assert.Equal(t, got, stored)
}

func TestProbeStore_SweepExpired_HugeKeepaliveIsKept(t *testing.T) {
	clock := helpers.NewTestClock()
	st := NewProbeStore(clock)
	st.Upsert(probe("10.0.0.5", 8100, 10_000_000_000))

	clock.Advance(time.Second)
	report := st.SweepExpired(clock.Now())

	assert.Empty(t, report.RemovedIDs)
	assert.Equal(t, 1, report.Remaining)
	_, ok := st.Get("10.0.0.5:8100")
	assert.True(t, ok)
}

func TestProbeStore_ReleasesLockAfterPanic(t *testing.T) {
	var calls atomic.Int32
	clock := &mock.TimeProviderMock{
		NowFunc: func() time.Time {
			if calls.Add(1) == 1 {
				panic("clock failure")
			}
			return helpers.TestNow()
		},
	}
	st := NewProbeStore(clock)

	assert.PanicsWithValue(t, "clock failure", func() {
		st.Upsert(probe("10.0.0.5", 8100, 5))
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		st.Snapshot()
		st.Upsert(probe("10.0.0.5", 8100, 5))
		st.SweepExpired(helpers.TestNow())
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("store is still locked after a panic inside Upsert")
	}
	assert.Equal(t, 1, st.Len())
}

func TestProbeStore_Upsert_ReRegistrationOverwrites(t *testing.T) {
	clock := helpers.NewTestClock()
	st := NewProbeStore(clock)

	first := probe("10.0.0.5", 8100, 5)
	st.Upsert(first)

	clock.Advance(4 * time.Second)
	second := probe("10.0.0.5", 8100, 5)
	second.Meta = map[string]any{"version": "2.0", "zone": "b"}
	st.Upsert(second)

	all := st.Snapshot()
	require.Len(t, all, 1)
	rec := all["10.0.0.5:8100"]
	assert.Equal(t, "2.0", rec.Meta["version"])
	assert.Equal(t, "b", rec.Meta["zone"])
	assert.Equal(t, time.Duration(0), rec.Age(clock.Now()))
}

func TestProbeStore_CopiesAreIndependent(t *testing.T) {
	st := NewProbeStore(helpers.NewTestClock())

	in := probe("10.0.0.5", 8100, 5)
	in.Meta["tags"] = []any{"a", "b"}
	returned := st.Upsert(in)

	// Mutating the caller's input, the returned record and a snapshot must not leak into the store.
	in.Meta["version"] = "mutated-input"
	returned.Meta["version"] = "mutated-return"
	snap := st.Snapshot()
	snap["10.0.0.5:8100"].Meta["tags"].([]any)[0] = "mutated-snapshot"
	delete(snap, "10.0.0.5:8100")

	got, ok := st.Get("10.0.0.5:8100")
	require.True(t, ok)
	assert.Equal(t, "1.0", got.Meta["version"])
	assert.Equal(t, []any{"a", "b"}, got.Meta["tags"])
}

func TestProbeStore_GetDelete(t *testing.T) {
	st := NewProbeStore(helpers.NewTestClock())
	st.Upsert(probe("10.0.0.5", 8100, 5))

	_, ok := st.Get("10.0.0.5:9999")
	assert.False(t, ok)

	assert.True(t, st.Delete("10.0.0.5:8100"))
	assert.False(t, st.Delete("10.0.0.5:8100"))
	assert.Equal(t, 0, st.Len())
}

func TestProbeStore_Snapshot_Empty(t *testing.T) {
	st := NewProbeStore(helpers.NewTestClock())
	snap := st.Snapshot()
	require.NotNil(t, snap)
	assert.Empty(t, snap)
}

func TestProbeStore_SweepExpired(t *testing.T) {
	clock := helpers.NewTestClock()
	st := NewProbeStore(clock)

	st.Upsert(probe("10.0.0.1", 1, 5))  // age 10 > 5: removed
	st.Upsert(probe("10.0.0.2", 2, 10)) // age 10 == 10: kept
	st.Upsert(probe("10.0.0.3", 3, 60)) // kept
	st.Upsert(probe("10.0.0.4", 4, 0))  // age 10 > 0: removed

	clock.Advance(10 * time.Second)
	report := st.SweepExpired(clock.Now())

	assert.Equal(t, []string{"10.0.0.1:1", "10.0.0.4:4"}, report.RemovedIDs)
	assert.Empty(t, report.SkippedIDs)
	assert.Equal(t, 2, report.Remaining)
	assert.Equal(t, st.Len(), report.Remaining)
	assert.Positive(t, report.SizeBytes)

	snap := st.Snapshot()
	assert.Contains(t, snap, "10.0.0.2:2")
	assert.Contains(t, snap, "10.0.0.3:3")
}

func TestProbeStore_SweepExpired_FailOpen(t *testing.T) {
	// A clock that was never set stamps zero timestamps, which the sweep cannot judge.
	zeroClock := &mock.TimeProviderMock{}
	st := NewProbeStore(zeroClock)
	st.Upsert(probe("10.0.0.1", 1, 5))

	clock := helpers.NewTestClock()
	negative := NewProbeStore(clock)
	negative.Upsert(probe("10.0.0.2", 2, -1))

	far := helpers.TestNow().Add(24 * time.Hour)

	report := st.SweepExpired(far)
	assert.Empty(t, report.RemovedIDs)
	assert.Equal(t, []string{"10.0.0.1:1"}, report.SkippedIDs)
	assert.Equal(t, 1, st.Len())

	report = negative.SweepExpired(far)
	assert.Empty(t, report.RemovedIDs)
	assert.Equal(t, []string{"10.0.0.2:2"}, report.SkippedIDs)
	assert.Equal(t, 1, negative.Len())
}

func TestProbeStore_NoFalseEvictionOnRefresh(t *testing.T) {
	clock := helpers.NewTestClock()
	st := NewProbeStore(clock)

	st.Upsert(probe("10.0.0.5", 8100, 5))
	clock.Advance(4 * time.Second)
	st.Upsert(probe("10.0.0.5", 8100, 5)) // refresh at T=4

	clock.Advance(5 * time.Second) // T=9: first registration would be 9s old
	report := st.SweepExpired(clock.Now())
	assert.Empty(t, report.RemovedIDs)
	assert.Equal(t, 1, st.Len())

	clock.Advance(time.Second) // T=10: 6s since refresh
	report = st.SweepExpired(clock.Now())
	assert.Equal(t, []string{"10.0.0.5:8100"}, report.RemovedIDs)
}

func TestProbeStore_EndToEndScenario(t *testing.T) {
	clock := helpers.NewTestClock()
	st := NewProbeStore(clock)
	t0 := clock.Now()

	st.Upsert(probe("10.0.0.5", 8100, 5))

	clock.Set(t0.Add(3 * time.Second))
	assert.Contains(t, st.Snapshot(), "10.0.0.5:8100")

	clock.Set(t0.Add(6 * time.Second))
	report := st.SweepExpired(clock.Now())
	assert.Equal(t, []string{"10.0.0.5:8100"}, report.RemovedIDs)

	clock.Set(t0.Add(6100 * time.Millisecond))
	assert.Empty(t, st.Snapshot())
}

func TestProbeStore_SnapshotIsolationDuringSweep(t *testing.T) {
	const n = 500
	clock := helpers.NewTestClock()
	st := NewProbeStore(clock)
	for i := 0; i < n; i++ {
		st.Upsert(probe("10.0.0.1", 1000+i, 1))
	}
	clock.Advance(time.Minute)

	var wg sync.WaitGroup
	sizes := make(chan int, 1000)
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				sizes <- len(st.Snapshot())
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		st.SweepExpired(clock.Now())
	}()
	wg.Wait()
	close(sizes)

	for size := range sizes {
		assert.True(t, size == n || size == 0, "snapshot observed a partial sweep: %d records", size)
	}
	assert.Equal(t, 0, st.Len())
}

func TestProbeStore_ConcurrentMixedOps(t *testing.T) {
	clock := helpers.NewTestClock()
	st := NewProbeStore(clock)
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(4)
		go func(n int) {
			defer wg.Done()
			st.Upsert(probe("10.0.0.1", 2000+n%5, 30))
		}(i)
		go func() {
			defer wg.Done()
			_ = st.Snapshot()
		}()
		go func() {
			defer wg.Done()
			st.SweepExpired(clock.Now())
		}()
		go func(n int) {
			defer wg.Done()
			_, _ = st.Get(fmt.Sprintf("10.0.0.1:%d", 2000+n%5))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, st.Len())
}
