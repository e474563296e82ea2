package tableobject

import "context"

// ObjectSnapshot is the denormalized cache form of a table object. Unlike the
// primary store, property values here are fully typed via the property type
// registry. The snapshot is never authoritative; it is always reconstructible
// from the primary store.
type ObjectSnapshot struct {
	ID         uint           `json:"id"`
	UUID       string         `json:"uuid"`
	UserID     uint           `json:"user_id"`
	TableID    uint           `json:"table_id"`
	File       bool           `json:"file"`
	Etag       string         `json:"etag"`
	Properties map[string]any `json:"properties"`
}

// PropertyShadow describes the shadow key written alongside a snapshot for
// each property, encoding (userId, tableId, uuid, propertyName, dataType).
type PropertyShadow struct {
	UserID   uint
	TableID  uint
	UUID     string
	Name     string
	DataType DataType
}

// Cache is the key-value store holding denormalized snapshots. Implementations
// must remove shadow keys that no longer correspond to a current property
// when saving, and remove the snapshot plus all shadows when deleting.
type Cache interface {
	SaveObject(ctx context.Context, snap *ObjectSnapshot, shadows []PropertyShadow) error
	DeleteObject(ctx context.Context, uuid string) error
}
