package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/probashi-portal/apiserver/types"
)

// ApplicationRepository handles persistence for job applications.
type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Exists reports whether the profile already has an application for the
// job. This is the friendly pre-check; the unique constraint on
// (job_id, profile_id) is the authoritative guard.
func (r *ApplicationRepository) Exists(ctx context.Context, jobID, profileID int) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM applications WHERE job_id = $1 AND profile_id = $2
		)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, jobID, profileID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, app types.Application) (types.Application, error) {
	if app.Status == "" {
		app.Status = types.ApplicationPending
	}
	app.AppliedAt = time.Now()

	const query = `
		INSERT INTO applications (job_id, profile_id, status, applied_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		app.JobID,
		app.ProfileID,
		app.Status,
		app.AppliedAt,
	).Scan(&app.ID); err != nil {
		return types.Application{}, mapInsertError(err)
	}
	return app, nil
}

func (r *ApplicationRepository) Get(ctx context.Context, id int) (types.Application, error) {
	const query = `
		SELECT id, job_id, profile_id, status, applied_at
		FROM applications
		WHERE id = $1`
	var app types.Application
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&app.ID,
		&app.JobID,
		&app.ProfileID,
		&app.Status,
		&app.AppliedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Application{}, ErrNotFound
		}
		return types.Application{}, err
	}
	return app, nil
}

// ListByProfile returns the caller's applications with job display
// fields joined in, newest first.
func (r *ApplicationRepository) ListByProfile(ctx context.Context, profileID int) ([]types.Application, error) {
	const query = `
		SELECT a.id, a.job_id, a.profile_id, a.status, a.applied_at, j.title, j.country
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.profile_id = $1
		ORDER BY a.applied_at DESC, a.id DESC`
	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanApplicationRows(rows, false)
}

// ListAll returns every application with job and applicant display
// fields joined in, newest first. Admin dashboard view.
func (r *ApplicationRepository) ListAll(ctx context.Context) ([]types.Application, error) {
	const query = `
		SELECT a.id, a.job_id, a.profile_id, a.status, a.applied_at, j.title, j.country, p.name
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN profiles p ON p.id = a.profile_id
		ORDER BY a.applied_at DESC, a.id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanApplicationRows(rows, true)
}

func scanApplicationRows(rows *sql.Rows, withApplicant bool) ([]types.Application, error) {
	apps := make([]types.Application, 0)
	for rows.Next() {
		var app types.Application
		dest := []any{&app.ID, &app.JobID, &app.ProfileID, &app.Status, &app.AppliedAt, &app.JobTitle, &app.JobCountry}
		if withApplicant {
			dest = append(dest, &app.ApplicantName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateStatus transitions an application to the given status.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	const query = `UPDATE applications SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an application. The profile filter keeps the cancel
// path scoped to the owning applicant.
func (r *ApplicationRepository) Delete(ctx context.Context, id, profileID int) error {
	const query = `DELETE FROM applications WHERE id = $1 AND profile_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, profileID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
