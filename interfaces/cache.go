package interfaces

import "context"

// Cache is an external key/value mirror of registry records.
// The registry reads it back only to expose it over GET /api/v1/mirror; nothing is loaded into the store.
//
//go:generate moq -stub -out mock/cache.go -pkg mock . Cache
type Cache[T any] interface {
	// WriteValue writes value in cache with the given TTL (ms).
	// Returns:
	// 1) nil on success;
	// 2) internal_server_error when marshalling fails or when the storage write fails.
	WriteValue(ctx context.Context, key string, item T, ttlMs int) error

	// ListAllValues returns all values in the cache (scans keys then fetches values for them).
	// Returns:
	// 1) (items, nil), items may be empty;
	// 2) (nil, internal_server_error) when scanning keys fails (e.g. Redis error).
	ListAllValues(ctx context.Context) ([]T, error)

	// DeleteValue deletes the value for the given key from the cache.
	// Returns:
	// 1) nil on success, including when the key is absent;
	// 2) internal_server_error when the storage delete fails.
	DeleteValue(ctx context.Context, key string) error
}
