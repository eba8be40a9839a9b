package ports

import (
	"context"
	"time"
)

type LinkSigner interface {
	// PresignGet returns a time-limited URL that allows downloading the
	// object at key without credentials.
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}
