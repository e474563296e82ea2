package tableobject

import (
	"context"
	"time"
)

// CacheOperationKind names the retriable cache operation recorded when a
// cache write fails.
type CacheOperationKind string

const (
	CacheOperationSave   CacheOperationKind = "save"
	CacheOperationDelete CacheOperationKind = "delete"
)

// PendingCacheOperation is the durable record of a cache write or delete that
// failed, consumed by the periodic reconciliation job.
type PendingCacheOperation struct {
	ID        uint
	UUID      string
	Kind      CacheOperationKind
	CreatedAt time.Time
}

type PendingCacheOperationRepository interface {
	Create(ctx context.Context, op *PendingCacheOperation) error
	// List returns up to limit pending operations, oldest first.
	List(ctx context.Context, limit int) ([]PendingCacheOperation, error)
	Delete(ctx context.Context, id uint) error
}
