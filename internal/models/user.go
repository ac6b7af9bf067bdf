package models

import "time"

// User represents an account owning scores and vocabulary words
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is the authenticated identity exposed to clients
type Session struct {
	UserID int    `json:"userId"`
	Email  string `json:"email"`
}

// CredentialsRequest is used for both registration and login
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}
