package service

import (
	"sort"
	"sync"
	"time"

	"proberegistry/domain"
	"proberegistry/helpers"
	"proberegistry/interfaces"

	"github.com/mohae/deepcopy"
)

// probeStore implements interfaces.ProbeStore: a map of probe id to record guarded by one RWMutex.
// Records never leave the store by reference; Upsert, Snapshot and Get hand out deep copies so a
// caller serializing a record cannot race with a later sweep or re-registration.
type probeStore struct {
	timeProvider interfaces.TimeProvider

	mu      sync.RWMutex
	records map[string]domain.ProbeRecord
}

// NewProbeStore creates an empty store. CreatedAt of every upserted record comes from timeProvider.
// Panics on nil timeProvider.
func NewProbeStore(timeProvider interfaces.TimeProvider) interfaces.ProbeStore {
	return &probeStore{
		timeProvider: helpers.NilPanic(timeProvider, "service.store.go: timeProvider is required"),
		records:      make(map[string]domain.ProbeRecord),
	}
}

// Upsert stores record under "<Address>:<Port>", replacing any previous registration and resetting its age.
func (s *probeStore) Upsert(record domain.ProbeRecord) domain.ProbeRecord {
	record.ID = domain.ProbeID(record.Address, record.Port)
	record.Meta = copyMeta(record.Meta)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Stamped under the lock so a concurrent sweep sees either the old or the new age.
	record.CreatedAt = s.timeProvider.Now()
	s.records[record.ID] = record

	return cloneRecord(record)
}

func (s *probeStore) Snapshot() map[string]domain.ProbeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.ProbeRecord, len(s.records))
	for id, record := range s.records {
		out[id] = cloneRecord(record)
	}
	return out
}

func (s *probeStore) Get(id string) (domain.ProbeRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return domain.ProbeRecord{}, false
	}
	return cloneRecord(record), true
}

func (s *probeStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	return true
}

// SweepExpired evaluates every record against the same now and deletes the expired ones in one
// critical section. Records that cannot be judged (no CreatedAt, negative keepalive) stay and are
// reported in SkippedIDs. Remaining and SizeBytes describe the store as it is when the lock is released.
func (s *probeStore) SweepExpired(now time.Time) domain.SweepReport {
	var report domain.SweepReport

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, record := range s.records {
		if !record.Valid() {
			report.SkippedIDs = append(report.SkippedIDs, id)
			continue
		}
		if record.Expired(now) {
			report.RemovedIDs = append(report.RemovedIDs, id)
			delete(s.records, id)
		}
	}
	report.Remaining = len(s.records)
	report.SizeBytes = approxStoreSize(s.records)

	sort.Strings(report.RemovedIDs)
	sort.Strings(report.SkippedIDs)
	return report
}

func (s *probeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func cloneRecord(record domain.ProbeRecord) domain.ProbeRecord {
	record.Meta = copyMeta(record.Meta)
	return record
}

// copyMeta deep-copies decoded JSON so nested maps and slices are not shared.
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	return deepcopy.Copy(meta).(map[string]any)
}
