package types

import "time"

// Job is an overseas placement posted by an administrator. Jobs are
// readable by everyone and are never updated or deleted in-app.
type Job struct {
	ID             int       `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Country        string    `json:"country" db:"country"`
	Description    string    `json:"description" db:"description"`
	Qualifications string    `json:"qualifications,omitempty" db:"qualifications"`
	SalaryMin      int64     `json:"salary_min,omitempty" db:"salary_min"`
	SalaryMax      int64     `json:"salary_max,omitempty" db:"salary_max"`
	CreatedBy      int       `json:"created_by" db:"created_by"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// JobFilter narrows job listings. Empty fields match everything;
// non-empty fields match case-insensitive substrings.
type JobFilter struct {
	Title         string
	Country       string
	Qualification string
}
