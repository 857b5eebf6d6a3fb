package memoize

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultSize default capacity
	DefaultSize = 2048
	// DefaultMaxAge default entry lifetime
	DefaultMaxAge = 5 * time.Minute
)

// Func computes the value of a missing key
type Func func(ctx context.Context) (interface{}, error)

// Cache keeps successful results for maxAge and runs at most one
// computation per key at a time. Failed computations are never stored.
type Cache struct {
	name    string
	maxAge  time.Duration
	size    int
	clock   gcache.Clock
	metrics *Metrics

	store gcache.Cache
	sf    singleflight.Group

	mux     sync.Mutex
	flights map[string]*flight
}

type flight struct {
	// primed is set when Set or Evict ran while the computation was in flight
	primed bool
}

// Option cache option
type Option func(c *Cache)

// WithSize bound the number of entries, least recently used are dropped first
func WithSize(size int) Option {
	return func(c *Cache) {
		c.size = size
	}
}

// WithClock use clock for expiry, tests pass gcache.NewFakeClock()
func WithClock(clock gcache.Clock) Option {
	return func(c *Cache) {
		c.clock = clock
	}
}

// WithMetrics report hits, misses and computations
func WithMetrics(m *Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// New new cache
func New(name string, maxAge time.Duration, opts ...Option) *Cache {
	c := &Cache{
		name:    name,
		maxAge:  maxAge,
		size:    DefaultSize,
		clock:   gcache.NewRealClock(),
		flights: make(map[string]*flight),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.maxAge <= 0 {
		c.maxAge = DefaultMaxAge
	}

	if c.size <= 0 {
		c.size = DefaultSize
	}

	c.store = gcache.New(c.size).LRU().Clock(c.clock).Build()
	return c
}

// Name cache name
func (c *Cache) Name() string {
	return c.name
}

// MaxAge entry lifetime
func (c *Cache) MaxAge() time.Duration {
	return c.maxAge
}

// Do return the cached value of key or compute it. Concurrent callers of the
// same key share one computation and its outcome; the computation runs with
// the context of the caller that started it.
func (c *Cache) Do(ctx context.Context, key string, fn Func) (interface{}, error) {
	if v, err := c.store.Get(key); err == nil {
		c.metrics.hit(c.name)
		return v, nil
	}

	c.metrics.miss(c.name)

	v, err, _ := c.sf.Do(key, func() (v interface{}, err error) {
		c.mux.Lock()
		// a Set may have landed between the lookup and joining the flight
		if cached, err := c.store.Get(key); err == nil {
			c.mux.Unlock()
			return cached, nil
		}

		f := &flight{}
		c.flights[key] = f
		c.mux.Unlock()

		resolved := false
		defer func() {
			c.mux.Lock()
			defer c.mux.Unlock()

			delete(c.flights, key)
			if resolved && !f.primed {
				_ = c.store.SetWithExpire(key, v, c.maxAge)
			}
		}()

		c.metrics.compute(c.name)
		if v, err = fn(ctx); err != nil {
			c.metrics.fail(c.name)
			return nil, err
		}

		resolved = true
		return v, nil
	})

	return v, err
}

// Set store an already resolved value under key, replacing any entry and
// restarting its lifetime
func (c *Cache) Set(key string, value interface{}) {
	c.mux.Lock()
	defer c.mux.Unlock()

	if f, ok := c.flights[key]; ok {
		f.primed = true
	}

	_ = c.store.SetWithExpire(key, value, c.maxAge)
	c.metrics.set(c.name)
}

// Evict drop key
func (c *Cache) Evict(key string) {
	c.mux.Lock()
	defer c.mux.Unlock()

	if f, ok := c.flights[key]; ok {
		f.primed = true
	}

	c.store.Remove(key)
}

// Len number of live entries
func (c *Cache) Len() int {
	return c.store.Len(true)
}

// Key default key, the stringified argument list
func Key(args ...interface{}) string {
	parts := make([]string, len(args))
	for idx, arg := range args {
		parts[idx] = fmt.Sprint(arg)
	}

	return strings.Join(parts, ",")
}
