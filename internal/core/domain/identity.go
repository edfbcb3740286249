package domain

import "time"

// User mirrors the persisted representation in the community users table.
type User struct {
	ID           int64
	Email        string
	Nickname     string
	PasswordHash string
	Deleted      bool
	CreatedAt    time.Time
}
