// Package handlers contains the http handlers of the probe registry.
package handlers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"proberegistry/domain"
	"proberegistry/helpers"
	"proberegistry/interfaces"
	"proberegistry/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

const homePage = "<h1>Probe Registry</h1><p>Register with POST /api/v1/register, list with GET /api/v1/list.</p>"

// RegistryOptions are the registration defaults taken from the configuration.
type RegistryOptions struct {
	DefaultGroup            string
	DefaultKeepaliveSeconds int
	// SweepInterval extends the mirror TTL so that a mirrored entry outlives the sweep that evicts it.
	SweepInterval time.Duration
}

// maxMirrorTTL is the longest TTL whose millisecond count still converts back to a time.Duration.
const maxMirrorTTL = time.Duration(math.MaxInt64/int64(time.Millisecond)) * time.Millisecond

// mirrorTTLMs is the lifetime of a mirrored record: its keepalive plus one sweep interval,
// capped at maxMirrorTTL.
func (o RegistryOptions) mirrorTTLMs(keepaliveSeconds int) int {
	ttl := domain.KeepaliveDuration(keepaliveSeconds)
	if ttl > maxMirrorTTL-o.SweepInterval {
		ttl = maxMirrorTTL
	} else {
		ttl += o.SweepInterval
	}
	return int(ttl.Milliseconds())
}

// HTTPServer implements ServerInterface on top of the registry store.
type HTTPServer struct {
	store   interfaces.ProbeStore
	mirror  interfaces.Cache[domain.ProbeRecord]
	metrics interfaces.MetricsHolder
	options RegistryOptions
	logger  log.Logger
}

// NewHTTPServer creates a new HTTPServer. Panics on nil dependencies.
func NewHTTPServer(
	store interfaces.ProbeStore,
	mirror interfaces.Cache[domain.ProbeRecord],
	metrics interfaces.MetricsHolder,
	options RegistryOptions,
	logger log.Logger,
) *HTTPServer {
	return &HTTPServer{
		store:   helpers.NilPanic(store, "handlers.http.go: store is required"),
		mirror:  helpers.NilPanic(mirror, "handlers.http.go: mirror is required"),
		metrics: helpers.NilPanic(metrics, "handlers.http.go: metrics is required"),
		options: options,
		logger:  log.WithPrefix(helpers.NilPanic(logger, "handlers.http.go: logger is required"), "component", "HTTPServer"),
	}
}

// Home (GET /) serves a static welcome page.
func (h *HTTPServer) Home(ectx echo.Context) error {
	return ectx.HTML(http.StatusOK, homePage)
}

// RegisterProbe (POST /api/v1/register) upserts the calling probe and returns the stored record.
// Returns 400 on parse/validation error. A failing mirror write is logged only.
func (h *HTTPServer) RegisterProbe(ectx echo.Context) error {
	var req RegisterRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	record, err := fromRegisterRequest(req, peerAddress(ectx.Request()), h.options)
	if err != nil {
		return fmt.Errorf("registerProbe failed to convert request to probe, err: %w", err)
	}

	stored := h.store.Upsert(record)
	level.Debug(h.logger).Log("msg", "registration update", "id", stored.ID, "keepalive", stored.KeepaliveSeconds)

	h.mirrorWrite(ectx.Request().Context(), stored)

	return ectx.JSON(http.StatusOK, toProbeResponse(stored))
}

// ListProbes (GET /api/v1/list) returns every registered probe keyed by id.
func (h *HTTPServer) ListProbes(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, toListResponse(h.store.Snapshot()))
}

// GetProbe (GET /api/v1/probes/{id}) returns one probe or 404.
func (h *HTTPServer) GetProbe(ectx echo.Context, id string) error {
	record, ok := h.store.Get(id)
	if !ok {
		return service.NewProbeNotFoundError(id)
	}
	return ectx.JSON(http.StatusOK, toProbeResponse(record))
}

// UnregisterProbe (POST /api/v1/unregister/{id}) removes a probe ahead of its keepalive. Returns 404 when absent.
func (h *HTTPServer) UnregisterProbe(ectx echo.Context, id string) error {
	if !h.store.Delete(id) {
		return service.NewProbeNotFoundError(id)
	}
	level.Info(h.logger).Log("msg", "probe unregistered", "id", id)

	if err := h.mirror.DeleteValue(ectx.Request().Context(), id); err != nil {
		level.Warn(h.logger).Log("msg", "failed to delete unregistered probe from mirror", "id", id, "err", err)
	}

	return ectx.NoContent(http.StatusOK)
}

// ListMirroredProbes (GET /api/v1/mirror) returns what the external mirror holds, keyed by id.
// The store is not consulted, so the answer shows entries that outlived their eviction.
// Returns 500 when the mirror cannot be read.
func (h *HTTPServer) ListMirroredProbes(ectx echo.Context) error {
	records, err := h.mirror.ListAllValues(ectx.Request().Context())
	if err != nil {
		return fmt.Errorf("listMirroredProbes failed to read mirror, err: %w", err)
	}

	byID := make(map[string]domain.ProbeRecord, len(records))
	for _, record := range records {
		byID[record.ID] = record
	}
	return ectx.JSON(http.StatusOK, toListResponse(byID))
}

// MyIPAddress (GET /api/v1/my_ip_address) returns the caller address as the registry would record it.
func (h *HTTPServer) MyIPAddress(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, IPAddressResponse{Ip: peerAddress(ectx.Request())})
}

// GetMetrics (GET /metrics) returns the state published by the last sweep. It never triggers a sweep.
func (h *HTTPServer) GetMetrics(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, toMetricsResponse(h.metrics.Snapshot()))
}

func (h *HTTPServer) mirrorWrite(ctx context.Context, record domain.ProbeRecord) {
	if err := h.mirror.WriteValue(ctx, record.ID, record, h.options.mirrorTTLMs(record.KeepaliveSeconds)); err != nil {
		level.Warn(h.logger).Log("msg", "failed to mirror registration", "id", record.ID, "err", err)
	}
}
