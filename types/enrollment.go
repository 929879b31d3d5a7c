package types

import "time"

// Enrollment links a profile to a course. Same uniqueness rule as
// Application: at most one row per (course, profile) pair, enforced by
// a schema constraint.
type Enrollment struct {
	ID         int       `json:"id" db:"id"`
	CourseID   int       `json:"course_id" db:"course_id"`
	ProfileID  int       `json:"profile_id" db:"profile_id"`
	EnrolledAt time.Time `json:"enrolled_at" db:"enrolled_at"`

	// CourseTitle is a joined-in display field on list reads.
	CourseTitle string `json:"course_title,omitempty" db:"-"`
}
