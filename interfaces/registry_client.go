package interfaces

import (
	"context"

	"proberegistry/domain"
)

// RegistryClient is the probe-side view of the registry HTTP API.
//
// Implemented by adapters/registryclient. Used by service.Heartbeat.
//
//go:generate moq -stub -out mock/registry_client.go -pkg mock . RegistryClient
type RegistryClient interface {
	// Register performs POST /api/v1/register and returns the record as stored by the registry.
	Register(ctx context.Context, registration domain.Registration) (domain.ProbeRecord, error)

	// List performs GET /api/v1/list.
	List(ctx context.Context) (map[string]domain.ProbeRecord, error)

	// Unregister performs POST /api/v1/unregister/{id}. An unknown id is not an error.
	Unregister(ctx context.Context, id string) error

	// Metrics performs GET /metrics.
	Metrics(ctx context.Context) (domain.MetricsSnapshot, error)
}
