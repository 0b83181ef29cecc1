// Package nopcache provides the mirror used when no Redis address is configured.
package nopcache

import (
	"context"

	"proberegistry/interfaces"
)

type nopCache[T any] struct{}

// New returns a cache that accepts every write and never holds anything.
func New[T any]() interfaces.Cache[T] {
	return nopCache[T]{}
}

func (nopCache[T]) WriteValue(context.Context, string, T, int) error { return nil }

func (nopCache[T]) ListAllValues(context.Context) ([]T, error) { return []T{}, nil }

func (nopCache[T]) DeleteValue(context.Context, string) error { return nil }
