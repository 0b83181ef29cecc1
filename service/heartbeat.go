package service

import (
	"context"
	"time"

	"proberegistry/domain"
	"proberegistry/helpers"
	"proberegistry/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// unregisterTimeout bounds the final unregister call made when a heartbeat stops.
const unregisterTimeout = 5 * time.Second

// Heartbeat keeps one probe registered: it registers immediately, re-registers every interval
// and unregisters when its context ends. Used by probe processes, not by the registry itself.
type Heartbeat struct {
	client       interfaces.RegistryClient
	registration domain.Registration
	interval     time.Duration
	logger       log.Logger
}

// NewHeartbeat creates a Heartbeat. A non-positive interval defaults to half of the requested
// keepalive (at least one second), or one minute when the registry default keepalive applies.
// Panics on nil client or logger.
func NewHeartbeat(client interfaces.RegistryClient, registration domain.Registration, interval time.Duration, logger log.Logger) *Heartbeat {
	if interval <= 0 {
		interval = defaultHeartbeatInterval(registration.KeepaliveSeconds)
	}
	return &Heartbeat{
		client:       helpers.NilPanic(client, "service.heartbeat.go: client is required"),
		registration: registration,
		interval:     interval,
		logger:       log.WithPrefix(helpers.NilPanic(logger, "service.heartbeat.go: logger is required"), "component", "Heartbeat"),
	}
}

func defaultHeartbeatInterval(keepaliveSeconds *int) time.Duration {
	if keepaliveSeconds == nil {
		return time.Minute
	}
	interval := domain.KeepaliveDuration(*keepaliveSeconds) / 2
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

// Interval returns the time between two registrations.
func (h *Heartbeat) Interval() time.Duration {
	return h.interval
}

// Run blocks until ctx is cancelled. Registration errors are logged and retried on the next tick.
func (h *Heartbeat) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	id := h.register(ctx)
	for {
		select {
		case <-ctx.Done():
			h.unregister(id)
			return
		case <-ticker.C:
			if registered := h.register(ctx); registered != "" {
				id = registered
			}
		}
	}
}

// register returns the id assigned by the registry, or "" on failure.
func (h *Heartbeat) register(ctx context.Context) string {
	record, err := h.client.Register(ctx, h.registration)
	if err != nil {
		if ctx.Err() == nil {
			level.Warn(h.logger).Log("msg", "registration failed", "port", h.registration.Port, "err", err)
		}
		return ""
	}
	level.Debug(h.logger).Log("msg", "registered", "id", record.ID, "keepalive", record.KeepaliveSeconds)
	return record.ID
}

func (h *Heartbeat) unregister(id string) {
	if id == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), unregisterTimeout)
	defer cancel()
	if err := h.client.Unregister(ctx, id); err != nil {
		level.Warn(h.logger).Log("msg", "unregister failed", "id", id, "err", err)
		return
	}
	level.Info(h.logger).Log("msg", "unregistered", "id", id)
}
