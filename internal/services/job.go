package services

import (
	"context"

	"github.com/probashi-portal/apiserver/types"
)

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	List(ctx context.Context, filter types.JobFilter) ([]types.Job, error)
	Get(ctx context.Context, id int) (types.Job, error)
	Create(ctx context.Context, job types.Job) (types.Job, error)
}

// JobService encapsulates job use-cases.
type JobService struct {
	repo JobRepository
}

func NewJobService(repo JobRepository) *JobService {
	return &JobService{repo: repo}
}

func (s *JobService) List(ctx context.Context, filter types.JobFilter) ([]types.Job, error) {
	return s.repo.List(ctx, filter)
}

func (s *JobService) Get(ctx context.Context, id int) (types.Job, error) {
	return s.repo.Get(ctx, id)
}

func (s *JobService) Create(ctx context.Context, job types.Job) (types.Job, error) {
	return s.repo.Create(ctx, job)
}
