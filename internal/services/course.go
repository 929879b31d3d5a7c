package services

import (
	"context"

	"github.com/probashi-portal/apiserver/types"
)

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	List(ctx context.Context) ([]types.Course, error)
	Get(ctx context.Context, id int) (types.Course, error)
	Create(ctx context.Context, course types.Course) (types.Course, error)
}

// CourseService encapsulates course use-cases.
type CourseService struct {
	repo CourseRepository
}

func NewCourseService(repo CourseRepository) *CourseService {
	return &CourseService{repo: repo}
}

func (s *CourseService) List(ctx context.Context) ([]types.Course, error) {
	return s.repo.List(ctx)
}

func (s *CourseService) Get(ctx context.Context, id int) (types.Course, error) {
	return s.repo.Get(ctx, id)
}

func (s *CourseService) Create(ctx context.Context, course types.Course) (types.Course, error) {
	return s.repo.Create(ctx, course)
}
