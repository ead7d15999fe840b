package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("storefront.lib.cache")

type Options struct {
	// Name identifies the wrapped query in traces and distinguishes
	// caches that share key strings.
	Name string
	// Size bounds the number of live entries, defaults to 1024.
	Size int
	// Revalidate is how long an entry is served before it is
	// recomputed.
	Revalidate time.Duration
	// Bypass disables the cache entirely, every Get recomputes.
	// Meant for development mode.
	Bypass bool
}

// Cache memoizes a single query keyed by its literal argument string.
type Cache[V any] struct {
	name   string
	lru    *expirable.LRU[string, V]
	bypass bool
}

func New[V any](opts Options) *Cache[V] {
	size := opts.Size
	if size == 0 {
		size = 1024
	}
	return &Cache[V]{
		name:   opts.Name,
		lru:    expirable.NewLRU[string, V](size, nil, opts.Revalidate),
		bypass: opts.Bypass,
	}
}

// Get returns the cached value for key, computing and storing it on a
// miss. Errors are never cached.
func (c *Cache[V]) Get(ctx context.Context, key string, compute func(ctx context.Context) (V, error)) (V, error) {
	ctx, span := tracer.Start(ctx, c.name)
	defer span.End()
	span.SetAttributes(attribute.String("key", key))

	if !c.bypass {
		cached, hit := c.lru.Get(key)
		if hit {
			span.SetAttributes(attribute.Bool("hit", true))
			return cached, nil
		}
	}
	span.SetAttributes(attribute.Bool("hit", false))

	value, err := compute(ctx)
	if err != nil {
		return value, err
	}
	if !c.bypass {
		c.lru.Add(key, value)
	}
	return value, nil
}
