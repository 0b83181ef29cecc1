// Package registryclient talks to the probe registry over HTTP. Probes use it through
// service.Heartbeat.
package registryclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"proberegistry/domain"
	"proberegistry/helpers"
	"proberegistry/interfaces"
	"proberegistry/service"
)

// requestTimeout bounds every call when the caller's context has no earlier deadline.
const requestTimeout = 5 * time.Second

// New creates an interfaces.RegistryClient for the registry at baseURL (e.g. http://127.0.0.1:5000,
// no trailing slash). Panics on empty baseURL or nil client.
func New(baseURL string, client *http.Client) interfaces.RegistryClient {
	return &registryHTTP{
		baseURL: strings.TrimRight(helpers.StrPanic(baseURL, "adapters.registryclient.client.go: baseURL is required"), "/"),
		client:  helpers.NilPanic(client, "adapters.registryclient.client.go: http client is required"),
	}
}

type registryHTTP struct {
	baseURL string
	client  *http.Client
}

type registerRequest struct {
	Port      int            `json:"port"`
	Keepalive *int           `json:"keepalive,omitempty"`
	Group     string         `json:"group,omitempty"`
	Meta      map[string]any `json:"meta"`
}

type probeResponse struct {
	ID         string         `json:"id"`
	Address    string         `json:"address"`
	Port       int            `json:"port"`
	Group      string         `json:"group"`
	Keepalive  int            `json:"keepalive"`
	Meta       map[string]any `json:"meta"`
	CreateDate time.Time      `json:"create_date"`
}

type metricsResponse struct {
	StartTime          time.Time  `json:"start_time"`
	ProbeRemoved       int        `json:"probe_removed"`
	ProbeCount         int        `json:"probe_count"`
	DatabaseSizeBytes  int        `json:"database_size_bytes"`
	CleanRuntime       float64    `json:"clean_runtime"`
	Uptime             float64    `json:"uptime"`
	MetricsTimestamp   *time.Time `json:"metrics_timestamp"`
	SweepsTotal        int        `json:"sweeps_total"`
	ProbesRemovedTotal int        `json:"probes_removed_total"`
}

type errResponse struct {
	Error *service.MyError `json:"error"`
}

// Register performs POST baseURL/api/v1/register.
//
// Returns: the record as stored (id, address seen by the registry, create_date); a *service.MyError
// carrying the registry's code on 4xx/5xx with an error body; a plain error on transport failure.
func (c *registryHTTP) Register(ctx context.Context, registration domain.Registration) (domain.ProbeRecord, error) {
	body, err := service.MarshalJSON(registerRequest{
		Port:      registration.Port,
		Keepalive: registration.KeepaliveSeconds,
		Group:     registration.Group,
		Meta:      registration.Meta,
	})
	if err != nil {
		return domain.ProbeRecord{}, fmt.Errorf("registry client failed to marshal registration, err: %w", err)
	}

	resp, err := call[probeResponse](ctx, c, http.MethodPost, "/api/v1/register", body)
	if err != nil {
		return domain.ProbeRecord{}, err
	}
	return fromProbeResponse(resp), nil
}

// List performs GET baseURL/api/v1/list. An empty registry gives an empty map.
func (c *registryHTTP) List(ctx context.Context) (map[string]domain.ProbeRecord, error) {
	resp, err := call[map[string]probeResponse](ctx, c, http.MethodGet, "/api/v1/list", nil)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.ProbeRecord, len(resp))
	for id, p := range resp {
		out[id] = fromProbeResponse(p)
	}
	return out, nil
}

// Unregister performs POST baseURL/api/v1/unregister/{id}; id is escaped with url.PathEscape.
// A 404 means the probe is already gone (evicted or unregistered) and is not an error.
func (c *registryHTTP) Unregister(ctx context.Context, id string) error {
	_, err := c.send(ctx, http.MethodPost, "/api/v1/unregister/"+url.PathEscape(id), nil)
	if service.IsEntityNotFoundError(err) {
		return nil
	}
	return err
}

// Metrics performs GET baseURL/metrics.
func (c *registryHTTP) Metrics(ctx context.Context) (domain.MetricsSnapshot, error) {
	resp, err := call[metricsResponse](ctx, c, http.MethodGet, "/metrics", nil)
	if err != nil {
		return domain.MetricsSnapshot{}, err
	}
	out := domain.MetricsSnapshot{
		StartTime:          resp.StartTime,
		ProbesRemoved:      resp.ProbeRemoved,
		ProbeCount:         resp.ProbeCount,
		StoreSizeBytes:     resp.DatabaseSizeBytes,
		SweepDuration:      secondsToDuration(resp.CleanRuntime),
		Uptime:             secondsToDuration(resp.Uptime),
		SweepsTotal:        resp.SweepsTotal,
		ProbesRemovedTotal: resp.ProbesRemovedTotal,
	}
	if resp.MetricsTimestamp != nil {
		out.LastSweepAt = *resp.MetricsTimestamp
	}
	return out, nil
}

// call sends the request and decodes the 200 body into T.
func call[T any](ctx context.Context, c *registryHTTP, method, path string, body []byte) (T, error) {
	var zero T
	data, err := c.send(ctx, method, path, body)
	if err != nil {
		return zero, err
	}
	out, err := service.UnmarshalJSON[T](data)
	if err != nil {
		return zero, fmt.Errorf("registry %s %s returned invalid JSON, err: %w", method, path, err)
	}
	return out, nil
}

// send performs one request and returns the body of a 200 response.
func (c *registryHTTP) send(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(method, path, resp.StatusCode, data)
	}
	return data, nil
}

// statusError keeps the registry error code when the body carries one.
func statusError(method, path string, status int, data []byte) error {
	if parsed, err := service.UnmarshalJSON[errResponse](data); err == nil && parsed.Error != nil && parsed.Error.Code != "" {
		return service.NewMyError(parsed.Error.Code, parsed.Error.Message,
			fmt.Errorf("registry %s %s returned %d", method, path, status))
	}
	return fmt.Errorf("registry %s %s returned %d", method, path, status)
}

func fromProbeResponse(p probeResponse) domain.ProbeRecord {
	return domain.ProbeRecord{
		ID:               p.ID,
		Address:          p.Address,
		Port:             p.Port,
		Group:            p.Group,
		KeepaliveSeconds: p.Keepalive,
		Meta:             p.Meta,
		CreatedAt:        p.CreateDate,
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
