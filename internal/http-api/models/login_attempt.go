package models

import "time"

// LoginAttempt tracks consecutive authentication failures per login.
// Reaching the configured threshold sets BlockedUntil; a successful login
// deletes the row. Concurrent increments for the same login serialize on
// the row lock inside the tracking transaction.
type LoginAttempt struct {
	Login        string     `gorm:"primaryKey" json:"login"`
	Attempts     int        `gorm:"not null;default:0" json:"attempts"`
	LastAttempt  *time.Time `gorm:"column:last_attempt" json:"last_attempt,omitempty"`
	BlockedUntil *time.Time `gorm:"column:blocked_until" json:"blocked_until,omitempty"`
}

func (LoginAttempt) TableName() string {
	return "login_attempts"
}
