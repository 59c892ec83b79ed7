package cache

import (
	"context"
	"strings"
	"time"
)

// Store holds short-lived serialized responses. The list handler reads
// through it; every event mutation invalidates the owner's key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte)
	Delete(ctx context.Context, key string)
}

// EventsListKey is the cache key for one owner's event list.
func EventsListKey(ownerID string) string {
	return "events:list:v1:owner=" + strings.TrimSpace(ownerID)
}

const DefaultTTL = 30 * time.Second
