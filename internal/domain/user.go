package domain

import "time"

// User represents a registered account of the recipe site.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         *string
	CreatedAt    time.Time
}
