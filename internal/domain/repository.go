package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching serialized results
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductTextExtractor turns a product HTML fragment into engine input
type ProductTextExtractor interface {
	Extract(html string) (ProductText, error)
}
