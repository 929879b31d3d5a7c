package types

import "time"

// CVExperience is one work-history entry on a CV.
type CVExperience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	From        string `json:"from"`
	To          string `json:"to"`
	Description string `json:"desc"`
}

// CVEducation is one education entry on a CV.
type CVEducation struct {
	Level  string `json:"level,omitempty"`
	School string `json:"school"`
	Degree string `json:"degree"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// CVData is the full payload of the CV builder. The rendered document
// follows a fixed layout: centered name header, contact line, then
// summary, experience, education, skills and certification sections.
type CVData struct {
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	Summary        string         `json:"summary"`
	Experiences    []CVExperience `json:"experiences"`
	Educations     []CVEducation  `json:"educations"`
	Skills         []string       `json:"skills"`
	Certifications []string       `json:"certifications"`
}

// CVDocument references a rendered CV kept in object storage.
type CVDocument struct {
	ID        int       `json:"id" db:"id"`
	ProfileID int       `json:"profile_id" db:"profile_id"`
	ObjectKey string    `json:"object_key" db:"object_key"`
	Filename  string    `json:"filename" db:"filename"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
