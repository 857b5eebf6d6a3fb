package memoize

import (
	"context"
	"fmt"
)

// Typed typed view of a cache
type Typed[T any] struct {
	cache *Cache
}

// NewTyped new typed view
func NewTyped[T any](cache *Cache) Typed[T] {
	return Typed[T]{cache: cache}
}

// Do see Cache.Do
func (t Typed[T]) Do(ctx context.Context, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := t.cache.Do(ctx, key, func(ctx context.Context) (interface{}, error) {
		return fn(ctx)
	})

	if err != nil {
		var zero T
		return zero, err
	}

	result, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("memoize: %s holds %T under %q", t.cache.Name(), v, key)
	}

	return result, nil
}

// Set see Cache.Set
func (t Typed[T]) Set(key string, value T) {
	t.cache.Set(key, value)
}

// Evict see Cache.Evict
func (t Typed[T]) Evict(key string) {
	t.cache.Evict(key)
}
