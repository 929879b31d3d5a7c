package services

import (
	"context"
	"errors"
	"time"

	"github.com/probashi-portal/apiserver/internal/events"
	"github.com/probashi-portal/apiserver/internal/store"
	"github.com/probashi-portal/apiserver/types"
	"github.com/rs/zerolog"
)

// ErrInvalidStatus is returned for a status transition outside the
// pending/approved/rejected set.
var ErrInvalidStatus = errors.New("invalid application status")

// ApplicationRepository defines persistence operations for applications.
type ApplicationRepository interface {
	Exists(ctx context.Context, jobID, profileID int) (bool, error)
	Create(ctx context.Context, app types.Application) (types.Application, error)
	Get(ctx context.Context, id int) (types.Application, error)
	ListByProfile(ctx context.Context, profileID int) ([]types.Application, error)
	ListAll(ctx context.Context) ([]types.Application, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	Delete(ctx context.Context, id, profileID int) error
}

// ApplicationService encapsulates the job-application workflow,
// including the duplicate-submission guard.
type ApplicationService struct {
	repo      ApplicationRepository
	publisher *events.Publisher
	logger    zerolog.Logger
}

func NewApplicationService(repo ApplicationRepository, publisher *events.Publisher, logger zerolog.Logger) *ApplicationService {
	return &ApplicationService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Apply creates an application for the caller. The pre-check read gives
// the common duplicate case a fast answer; the unique constraint
// underneath catches the race where two submissions pass the check
// together. Both paths report store.ErrDuplicate.
func (s *ApplicationService) Apply(ctx context.Context, jobID, profileID int) (types.Application, error) {
	exists, err := s.repo.Exists(ctx, jobID, profileID)
	if err != nil {
		return types.Application{}, err
	}
	if exists {
		return types.Application{}, store.ErrDuplicate
	}

	return s.repo.Create(ctx, types.Application{
		JobID:     jobID,
		ProfileID: profileID,
		Status:    types.ApplicationPending,
	})
}

func (s *ApplicationService) ListMine(ctx context.Context, profileID int) ([]types.Application, error) {
	return s.repo.ListByProfile(ctx, profileID)
}

func (s *ApplicationService) ListAll(ctx context.Context) ([]types.Application, error) {
	return s.repo.ListAll(ctx)
}

// SetStatus transitions an application and notifies downstream
// consumers. A publish failure does not fail the transition.
func (s *ApplicationService) SetStatus(ctx context.Context, id int, status string) (types.Application, error) {
	switch status {
	case types.ApplicationPending, types.ApplicationApproved, types.ApplicationRejected:
	default:
		return types.Application{}, ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return types.Application{}, err
	}
	app, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Application{}, err
	}

	if _, err := s.publisher.Publish(ctx, events.ChannelApplicationStatus, events.ApplicationStatusEvent{
		ApplicationID: app.ID,
		JobID:         app.JobID,
		ProfileID:     app.ProfileID,
		Status:        app.Status,
		OccurredAt:    time.Now(),
	}); err != nil {
		s.logger.Error().Err(err).Int("application_id", app.ID).Msg("publish application status event")
	}

	return app, nil
}

// Cancel removes the caller's own application.
func (s *ApplicationService) Cancel(ctx context.Context, id, profileID int) error {
	return s.repo.Delete(ctx, id, profileID)
}
