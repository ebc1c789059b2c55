package model

import "time"

// StaffUser is a store operator with access to the admin and finance areas.
type StaffUser struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
