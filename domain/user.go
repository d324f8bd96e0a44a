package domain

import "time"

// User is an account holder. PasswordHash is the encoded argon2id string
// and never leaves the backend.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
