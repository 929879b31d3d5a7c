package services

import (
	"context"

	"github.com/probashi-portal/apiserver/types"
)

// FeedbackRepository defines persistence operations for feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, fb types.Feedback) (types.Feedback, error)
	ListAll(ctx context.Context) ([]types.Feedback, error)
}

// FeedbackService encapsulates feedback use-cases.
type FeedbackService struct {
	repo FeedbackRepository
}

func NewFeedbackService(repo FeedbackRepository) *FeedbackService {
	return &FeedbackService{repo: repo}
}

func (s *FeedbackService) Submit(ctx context.Context, profileID int, message string) (types.Feedback, error) {
	return s.repo.Create(ctx, types.Feedback{
		ProfileID: profileID,
		Message:   message,
	})
}

func (s *FeedbackService) ListAll(ctx context.Context) ([]types.Feedback, error) {
	return s.repo.ListAll(ctx)
}
