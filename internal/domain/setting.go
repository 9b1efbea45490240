package domain

import "time"

// Setting is a durable admin-controlled key/value. Settings used to live in
// process memory in an earlier iteration; a record survives restarts and
// multiple instances.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Well-known setting keys.
const (
	SettingDepartments    = "departments"     // comma-separated department list
	SettingUploadsEnabled = "uploads_enabled" // "true"/"false"
)
