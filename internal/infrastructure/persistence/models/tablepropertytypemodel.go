package models

// TablePropertyTypeModel represents the per-table property type registry.
type TablePropertyTypeModel struct {
	ID       uint   `gorm:"primarykey"`
	TableID  uint   `gorm:"not null;uniqueIndex:idx_table_property_type_name"`
	Name     string `gorm:"size:100;not null;uniqueIndex:idx_table_property_type_name"`
	DataType int    `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (TablePropertyTypeModel) TableName() string {
	return "table_property_types"
}
