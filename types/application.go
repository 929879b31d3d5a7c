package types

import "time"

// Application statuses. An application starts pending; only an admin
// moves it to approved or rejected.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// Application links a profile to a job it applied for. At most one
// application may exist per (job, profile) pair; the schema enforces
// this with a unique constraint.
type Application struct {
	ID        int       `json:"id" db:"id"`
	JobID     int       `json:"job_id" db:"job_id"`
	ProfileID int       `json:"profile_id" db:"profile_id"`
	Status    string    `json:"status" db:"status"`
	AppliedAt time.Time `json:"applied_at" db:"applied_at"`

	// JobTitle, JobCountry and ApplicantName are joined-in display
	// fields populated on list reads; they are not columns of the
	// applications table itself.
	JobTitle      string `json:"job_title,omitempty" db:"-"`
	JobCountry    string `json:"job_country,omitempty" db:"-"`
	ApplicantName string `json:"applicant_name,omitempty" db:"-"`
}
