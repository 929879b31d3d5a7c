package services

import (
	"context"

	"github.com/probashi-portal/apiserver/internal/store"
	"github.com/probashi-portal/apiserver/types"
)

// EnrollmentRepository defines persistence operations for enrollments.
type EnrollmentRepository interface {
	Exists(ctx context.Context, courseID, profileID int) (bool, error)
	Create(ctx context.Context, enrollment types.Enrollment) (types.Enrollment, error)
	ListByProfile(ctx context.Context, profileID int) ([]types.Enrollment, error)
}

// EnrollmentService encapsulates the course-enrollment workflow with
// the same duplicate-submission guard as applications.
type EnrollmentService struct {
	repo EnrollmentRepository
}

func NewEnrollmentService(repo EnrollmentRepository) *EnrollmentService {
	return &EnrollmentService{repo: repo}
}

// Enroll creates an enrollment for the caller. Pre-check plus unique
// constraint; both duplicate paths report store.ErrDuplicate.
func (s *EnrollmentService) Enroll(ctx context.Context, courseID, profileID int) (types.Enrollment, error) {
	exists, err := s.repo.Exists(ctx, courseID, profileID)
	if err != nil {
		return types.Enrollment{}, err
	}
	if exists {
		return types.Enrollment{}, store.ErrDuplicate
	}

	return s.repo.Create(ctx, types.Enrollment{
		CourseID:  courseID,
		ProfileID: profileID,
	})
}

func (s *EnrollmentService) ListMine(ctx context.Context, profileID int) ([]types.Enrollment, error) {
	return s.repo.ListByProfile(ctx, profileID)
}
