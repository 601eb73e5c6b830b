package domain

import "time"

// User represents an authenticated user of the system.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
