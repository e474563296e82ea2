// Package cache contains the Redis adapters for the denormalized table
// object store.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"dav/internal/domain/tableobject"
)

const (
	objectKeyPrefix   = "table_object:"
	propertyKeyPrefix = "table_object_property:"
)

// TableObjectCache stores object snapshots under "table_object:<uuid>" and
// one shadow key per property under
// "table_object_property:<userId>:<tableId>:<uuid>:<name>:<dataType>". The
// shadow keys carry their payload entirely in the key name so consumers can
// discover an object's property types by pattern scan alone.
type TableObjectCache struct {
	client *redis.Client
}

// NewTableObjectCache creates a new TableObjectCache instance
func NewTableObjectCache(client *redis.Client) *TableObjectCache {
	return &TableObjectCache{client: client}
}

func (c *TableObjectCache) SaveObject(ctx context.Context, snap *tableobject.ObjectSnapshot, shadows []tableobject.PropertyShadow) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	wanted := make(map[string]struct{}, len(shadows))
	for _, s := range shadows {
		wanted[shadowKey(s)] = struct{}{}
	}

	// Shadows from properties that were since renamed, deleted, or re-typed
	// must not linger.
	existing, err := c.scanShadowKeys(ctx, snap.UUID)
	if err != nil {
		return err
	}
	var stale []string
	for _, key := range existing {
		if _, ok := wanted[key]; !ok {
			stale = append(stale, key)
		}
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, objectKeyPrefix+snap.UUID, payload, 0)
	for key := range wanted {
		pipe.Set(ctx, key, "1", 0)
	}
	if len(stale) > 0 {
		pipe.Del(ctx, stale...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save object to cache: %w", err)
	}
	return nil
}

func (c *TableObjectCache) DeleteObject(ctx context.Context, uuid string) error {
	shadowKeys, err := c.scanShadowKeys(ctx, uuid)
	if err != nil {
		return err
	}

	keys := append([]string{objectKeyPrefix + uuid}, shadowKeys...)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete object from cache: %w", err)
	}
	return nil
}

// GetObject returns the cached snapshot, or nil on a miss.
func (c *TableObjectCache) GetObject(ctx context.Context, uuid string) (*tableobject.ObjectSnapshot, error) {
	payload, err := c.client.Get(ctx, objectKeyPrefix+uuid).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get object from cache: %w", err)
	}

	var snap tableobject.ObjectSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

func (c *TableObjectCache) scanShadowKeys(ctx context.Context, uuid string) ([]string, error) {
	pattern := fmt.Sprintf("%s*:*:%s:*", propertyKeyPrefix, uuid)

	var keys []string
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan shadow keys: %w", err)
	}
	return keys, nil
}

func shadowKey(s tableobject.PropertyShadow) string {
	return fmt.Sprintf("%s%d:%d:%s:%s:%d", propertyKeyPrefix, s.UserID, s.TableID, s.UUID, s.Name, s.DataType)
}
