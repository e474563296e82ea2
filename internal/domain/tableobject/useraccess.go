package tableobject

import (
	"context"
	"time"
)

// UserAccess is a delegated read/write capability on a specific table object,
// held by a user who is not its owner. A non-nil TableAlias substitutes for
// the object's native table id when presenting the object to the grantee.
type UserAccess struct {
	ID            uint
	TableObjectID uint
	UserID        uint
	TableAlias    *uint
	CreatedAt     time.Time
}

type UserAccessRepository interface {
	// GetByObjectAndUser returns (nil, nil) when no grant exists.
	GetByObjectAndUser(ctx context.Context, tableObjectID, userID uint) (*UserAccess, error)
	Create(ctx context.Context, access *UserAccess) error
	Delete(ctx context.Context, id uint) error
}
