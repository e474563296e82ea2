package models

import "time"

// TableObjectModel represents the database persistence model for table
// objects.
type TableObjectModel struct {
	ID        uint   `gorm:"primarykey"`
	UUID      string `gorm:"size:36;not null;uniqueIndex"`
	UserID    uint   `gorm:"not null;index"`
	TableID   uint   `gorm:"not null;index"`
	File      bool   `gorm:"not null;default:false"`
	Etag      string `gorm:"size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (TableObjectModel) TableName() string {
	return "table_objects"
}

// TableObjectPropertyModel represents one named property row of a table
// object. Row id order is the property insertion order the object etag
// depends on.
type TableObjectPropertyModel struct {
	ID            uint   `gorm:"primarykey"`
	TableObjectID uint   `gorm:"not null;uniqueIndex:idx_object_property_name"`
	Name          string `gorm:"size:100;not null;uniqueIndex:idx_object_property_name"`
	Value         string `gorm:"type:text"`
}

// TableName specifies the table name for GORM
func (TableObjectPropertyModel) TableName() string {
	return "table_object_properties"
}
