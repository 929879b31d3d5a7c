package services

import (
	"context"

	"github.com/probashi-portal/apiserver/internal/i18n"
	"github.com/probashi-portal/apiserver/types"
)

// ProfileRepository defines persistence operations for profiles.
type ProfileRepository interface {
	GetByID(ctx context.Context, id int) (types.Profile, error)
	GetByUserID(ctx context.Context, userID int) (types.Profile, error)
	Create(ctx context.Context, profile types.Profile) (types.Profile, error)
	Update(ctx context.Context, profile types.Profile) (types.Profile, error)
}

// ProfileService encapsulates profile use-cases.
type ProfileService struct {
	repo ProfileRepository
}

func NewProfileService(repo ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

func (s *ProfileService) GetByID(ctx context.Context, id int) (types.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID int) (types.Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *ProfileService) Create(ctx context.Context, profile types.Profile) (types.Profile, error) {
	return s.repo.Create(ctx, profile)
}

// UpdateContact persists the mutable contact fields; role and language
// are left as stored.
func (s *ProfileService) UpdateContact(ctx context.Context, profileID int, name, phone, address string) (types.Profile, error) {
	profile, err := s.repo.GetByID(ctx, profileID)
	if err != nil {
		return types.Profile{}, err
	}
	profile.Name = name
	profile.Phone = phone
	profile.Address = address
	return s.repo.Update(ctx, profile)
}

// ToggleLanguage flips the persisted language preference and returns
// the updated profile.
func (s *ProfileService) ToggleLanguage(ctx context.Context, profileID int) (types.Profile, error) {
	profile, err := s.repo.GetByID(ctx, profileID)
	if err != nil {
		return types.Profile{}, err
	}
	profile.Language = i18n.Toggle(profile.Language)
	return s.repo.Update(ctx, profile)
}
