// Package biztime provides time utilities. All storage and transport use UTC;
// implicit local timezone is prohibited.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ToUTC converts a time (any timezone) to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// FormatMetadataTime formats a UTC time for storage using RFC3339 format.
func FormatMetadataTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
