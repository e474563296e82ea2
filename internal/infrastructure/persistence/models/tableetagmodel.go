package models

import "time"

// TableEtagModel represents the per-(user, table) version tag.
type TableEtagModel struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_table_etag_user_table"`
	TableID   uint   `gorm:"not null;uniqueIndex:idx_table_etag_user_table"`
	Etag      string `gorm:"size:32;not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (TableEtagModel) TableName() string {
	return "table_etags"
}
