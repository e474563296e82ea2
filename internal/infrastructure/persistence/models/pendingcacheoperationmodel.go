package models

import "time"

// PendingCacheOperationModel represents a queued cache write or delete that
// failed and awaits replay.
type PendingCacheOperationModel struct {
	ID        uint      `gorm:"primarykey"`
	UUID      string    `gorm:"size:36;not null;index"`
	Kind      string    `gorm:"size:16;not null"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the table name for GORM
func (PendingCacheOperationModel) TableName() string {
	return "pending_cache_operations"
}
