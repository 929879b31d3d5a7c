package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/probashi-portal/apiserver/types"
)

// EnrollmentRepository handles persistence for course enrollments.
type EnrollmentRepository struct {
	db *sql.DB
}

func NewEnrollmentRepository(db *sql.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Exists reports whether the profile is already enrolled in the course.
// Pre-check only; the (course_id, profile_id) unique constraint is the
// authoritative guard.
func (r *EnrollmentRepository) Exists(ctx context.Context, courseID, profileID int) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM enrollments WHERE course_id = $1 AND profile_id = $2
		)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, courseID, profileID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *EnrollmentRepository) Create(ctx context.Context, enrollment types.Enrollment) (types.Enrollment, error) {
	enrollment.EnrolledAt = time.Now()

	const query = `
		INSERT INTO enrollments (course_id, profile_id, enrolled_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		enrollment.CourseID,
		enrollment.ProfileID,
		enrollment.EnrolledAt,
	).Scan(&enrollment.ID); err != nil {
		return types.Enrollment{}, mapInsertError(err)
	}
	return enrollment, nil
}

// ListByProfile returns the caller's enrollments with the course title
// joined in, newest first.
func (r *EnrollmentRepository) ListByProfile(ctx context.Context, profileID int) ([]types.Enrollment, error) {
	const query = `
		SELECT e.id, e.course_id, e.profile_id, e.enrolled_at, c.title
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.profile_id = $1
		ORDER BY e.enrolled_at DESC, e.id DESC`
	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := make([]types.Enrollment, 0)
	for rows.Next() {
		var enrollment types.Enrollment
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.CourseID,
			&enrollment.ProfileID,
			&enrollment.EnrolledAt,
			&enrollment.CourseTitle,
		); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return enrollments, nil
}
