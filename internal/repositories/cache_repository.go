package repositories

import (
	"context"
	"time"
)

// CacheRepositoryInterface is the small cache surface the recommendation
// service needs. Misses are reported as (found=false, nil error) so callers
// can fall through to the database without inspecting driver errors.
type CacheRepositoryInterface interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
