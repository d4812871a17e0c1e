package entities

import "time"

// Admin is a back-office staff identity.
//
// Email is unique and doubles as the login credential. PasswordHash never
// leaves the persistence/auth layers.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminRef is the resolved, display-only view of an administrator reference.
type AdminRef struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
