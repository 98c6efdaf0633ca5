package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// PasswordHash never leaves the auth service.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
