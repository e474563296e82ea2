// Package constants defines shared constant values used across the application.
package constants

// Context keys for values stashed in the gin context by middleware.
const (
	ContextKeySession = "session"
	ContextKeyUserID  = "user_id"
	ContextKeyAppID   = "app_id"
)

// Reserved property names used by file-backed table objects. File metadata
// flows through the normal property mechanism under these names.
const (
	SizePropertyName = "size"
	TypePropertyName = "type"
	EtagPropertyName = "etag"
)

// MaxDeviceFieldLength is the maximum stored length for session device
// name/os fields. Longer values are truncated, not rejected.
const MaxDeviceFieldLength = 30

// MaxPropertyNameLength bounds table object property names.
const MaxPropertyNameLength = 100
