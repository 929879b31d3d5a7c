package types

import "time"

// Profile roles. Every profile carries exactly one of these; there is no
// in-app path that changes a role after assignment.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Language preferences persisted per profile.
const (
	LangEnglish = "en"
	LangBengali = "bn"
)

// Profile is the application-level identity record, 1:1 with a User.
// The session guard loads it on every protected request.
type Profile struct {
	// ID is the unique identifier of the profile. Relationship rows
	// (applications, enrollments) reference this id, not the user id.
	ID int `json:"id" db:"id"`

	// UserID links the profile to its authentication principal.
	UserID int `json:"user_id" db:"user_id"`

	// Name is the person's full name.
	Name string `json:"name" db:"name"`

	// Role is the authorization level, RoleAdmin or RoleUser.
	Role string `json:"role" db:"role"`

	// Phone is an optional contact number.
	Phone string `json:"phone,omitempty" db:"phone"`

	// Address is an optional postal address.
	Address string `json:"address,omitempty" db:"address"`

	// Language is the persisted interface language preference,
	// LangEnglish or LangBengali.
	Language string `json:"language" db:"language"`

	// CreatedAt is the timestamp when the profile was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent profile update.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
