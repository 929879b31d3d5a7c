package types

import "time"

// User is the raw authentication principal: an email plus a credential.
// Application-level data (name, role, contact fields) lives on the
// Profile linked to it, never here.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Email is the unique sign-in address.
	Email string `json:"email" db:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent credential change.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
