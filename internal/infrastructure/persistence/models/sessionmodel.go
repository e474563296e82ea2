package models

import "time"

// SessionModel represents the database persistence model for sessions.
type SessionModel struct {
	ID         uint      `gorm:"primarykey"`
	UserID     uint      `gorm:"not null;index"`
	AppID      uint      `gorm:"not null;index"`
	Token      string    `gorm:"size:64;not null;uniqueIndex"`
	OldToken   string    `gorm:"size:64;index"`
	DeviceName string    `gorm:"size:30"`
	DeviceOS   string    `gorm:"size:30"`
	UpdatedAt  time.Time `gorm:"not null;index"`
	CreatedAt  time.Time
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string {
	return "sessions"
}
