package models

import "time"

// TableObjectUserAccessModel represents a sharing grant on a table object.
type TableObjectUserAccessModel struct {
	ID            uint  `gorm:"primarykey"`
	TableObjectID uint  `gorm:"not null;uniqueIndex:idx_object_user_access"`
	UserID        uint  `gorm:"not null;uniqueIndex:idx_object_user_access"`
	TableAlias    *uint `gorm:""`
	CreatedAt     time.Time
}

// TableName specifies the table name for GORM
func (TableObjectUserAccessModel) TableName() string {
	return "table_object_user_access"
}
