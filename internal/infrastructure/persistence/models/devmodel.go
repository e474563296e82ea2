package models

import "time"

// DevModel represents the database persistence model for developer accounts.
type DevModel struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"not null;index"`
	UUID      string `gorm:"size:36;not null;uniqueIndex"`
	APIKey    string `gorm:"size:64;not null;uniqueIndex"`
	SecretKey string `gorm:"size:64;not null"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (DevModel) TableName() string {
	return "devs"
}

// AppModel represents the database persistence model for apps.
type AppModel struct {
	ID        uint   `gorm:"primarykey"`
	DevID     uint   `gorm:"not null;index"`
	Name      string `gorm:"size:255;not null"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (AppModel) TableName() string {
	return "apps"
}
