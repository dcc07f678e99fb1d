package models

import (
	"time"
)

// User is an account row in Postgres. Privacy-first: username and password
// hash only, no email or profile data.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	IsActive     bool      `json:"is_active"`
}
