package interfaces

import (
	"time"

	"proberegistry/domain"
)

// ProbeStore is the in-memory registry of probes. Every method is a single critical
// section: callers never observe a partially applied Upsert or sweep.
//
// Implemented by service.probeStore. Used by handlers.HTTPServer and service.Sweeper.
//
//go:generate moq -stub -out mock/probe_store.go -pkg mock . ProbeStore
type ProbeStore interface {
	// Upsert inserts the record or replaces the one with the same ID. ID and CreatedAt
	// are assigned by the store. Returns a copy of the stored record.
	Upsert(record domain.ProbeRecord) domain.ProbeRecord

	// Snapshot returns an independent copy of all records keyed by ID.
	Snapshot() map[string]domain.ProbeRecord

	// Get returns a copy of one record.
	Get(id string) (domain.ProbeRecord, bool)

	// Delete removes one record and reports whether it was present.
	Delete(id string) bool

	// SweepExpired removes every record whose age at now exceeds its keepalive and
	// reports what was removed, what was skipped and what remains.
	SweepExpired(now time.Time) domain.SweepReport

	// Len returns the current number of records.
	Len() int
}
