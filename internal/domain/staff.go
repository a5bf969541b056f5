package domain

import "time"

type StaffRole string

const (
	StaffRoleAdmin StaffRole = "admin"
	StaffRoleStaff StaffRole = "staff"
)

type StaffUser struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         StaffRole `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedOn    time.Time `json:"created_on"`
}

// Setting is a key/value row in the settings table, the single source of
// truth for runtime-tunable configuration such as notification targets.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedOn time.Time `json:"updated_on"`
}

const (
	SettingNotifyTopic      = "notify.topic"
	SettingNotifyPhone      = "notify.phone"
	SettingNotifyEmail      = "notify.email"
	SettingLegacyMigratedOn = "notify.legacy_migrated_on"
)
