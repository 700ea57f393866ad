package cache

import "context"

// Keys for the cached list queries. Only unfiltered, unpaginated listings
// are cached; filtered reads always hit the database.
const (
	CustomerListKey = "crm:customers:all"
	ProductListKey  = "crm:products:all"
	OrderListKey    = "crm:orders:all"
)

// Cache defines the interface for the read cache. Implementations must treat
// backend failures as misses; the database remains the source of truth.
type Cache interface {
	// Get returns the cached value for key and whether it was present
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key with the configured TTL
	Set(ctx context.Context, key string, value []byte)

	// Invalidate removes the given keys
	Invalidate(ctx context.Context, keys ...string)

	// Close closes the cache connection
	Close() error

	// Health checks if the cache is healthy
	Health(ctx context.Context) error
}
