package service

import (
	"time"

	"proberegistry/helpers"
	"proberegistry/interfaces"
)

// timeProvider implements interfaces.TimeProvider by calling the injected now func.
type timeProvider struct {
	now func() time.Time
}

// NewTimeProvider creates a TimeProvider that returns time via the given now func. Panics on nil now.
//
// Called from cmd/main with time.Now().UTC; the store stamps registrations with it and the
// sweeper reads it once per cycle.
func NewTimeProvider(now func() time.Time) interfaces.TimeProvider {
	return &timeProvider{now: helpers.NilPanic(now, "service.time_provider.go: now is required")}
}

func (t *timeProvider) Now() time.Time {
	return t.now()
}
