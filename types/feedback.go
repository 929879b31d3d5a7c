package types

import "time"

// Feedback is a free-form note left by a profile for the administrators.
type Feedback struct {
	ID        int       `json:"id" db:"id"`
	ProfileID int       `json:"profile_id" db:"profile_id"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// AuthorName is a joined-in display field on admin list reads.
	AuthorName string `json:"author_name,omitempty" db:"-"`
}
