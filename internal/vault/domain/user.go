package domain

import "time"

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // argon2id PHC encoded, verify-only
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
