package models

import "time"

// TableModel represents the database persistence model for tables.
type TableModel struct {
	ID        uint   `gorm:"primarykey"`
	AppID     uint   `gorm:"not null;index"`
	Name      string `gorm:"size:255;not null"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (TableModel) TableName() string {
	return "tables"
}
