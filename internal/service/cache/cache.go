package cache

import (
	"context"
	"time"
)

// BytesCache stores pre-rendered response bodies with TTL. Handlers cache the
// serialized JSON, not the domain objects, so a hit skips scoring and
// marshalling both.
type BytesCache interface {
	GetBytes(ctx context.Context, key string) (b []byte, ok bool, err error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
