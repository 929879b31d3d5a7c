package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/probashi-portal/apiserver/types"
)

// JobRepository handles persistence for job postings.
type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// List returns jobs matching the filter, newest first. Filter fields
// match case-insensitive substrings.
func (r *JobRepository) List(ctx context.Context, filter types.JobFilter) ([]types.Job, error) {
	const query = `
		SELECT id, title, country, description, qualifications, salary_min, salary_max, created_by, created_at
		FROM jobs
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR country ILIKE '%' || $2 || '%')
		  AND ($3 = '' OR qualifications ILIKE '%' || $3 || '%')
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, filter.Title, filter.Country, filter.Qualification)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]types.Job, 0)
	for rows.Next() {
		var job types.Job
		if err := rows.Scan(
			&job.ID,
			&job.Title,
			&job.Country,
			&job.Description,
			&job.Qualifications,
			&job.SalaryMin,
			&job.SalaryMax,
			&job.CreatedBy,
			&job.CreatedAt,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *JobRepository) Get(ctx context.Context, id int) (types.Job, error) {
	const query = `
		SELECT id, title, country, description, qualifications, salary_min, salary_max, created_by, created_at
		FROM jobs
		WHERE id = $1`
	var job types.Job
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&job.ID,
		&job.Title,
		&job.Country,
		&job.Description,
		&job.Qualifications,
		&job.SalaryMin,
		&job.SalaryMax,
		&job.CreatedBy,
		&job.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Job{}, ErrNotFound
		}
		return types.Job{}, err
	}
	return job, nil
}

func (r *JobRepository) Create(ctx context.Context, job types.Job) (types.Job, error) {
	job.CreatedAt = time.Now()

	const query = `
		INSERT INTO jobs (title, country, description, qualifications, salary_min, salary_max, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		job.Title,
		job.Country,
		job.Description,
		job.Qualifications,
		job.SalaryMin,
		job.SalaryMax,
		job.CreatedBy,
		job.CreatedAt,
	).Scan(&job.ID); err != nil {
		return types.Job{}, err
	}
	return job, nil
}
