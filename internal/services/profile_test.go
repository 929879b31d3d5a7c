package services

import (
	"context"
	"testing"

	"github.com/probashi-portal/apiserver/internal/store"
	"github.com/probashi-portal/apiserver/types"
	"github.com/stretchr/testify/require"
)

type fakeProfileRepo struct {
	profiles map[int]types.Profile
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id int) (types.Profile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return types.Profile{}, store.ErrNotFound
	}
	return profile, nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID int) (types.Profile, error) {
	for _, profile := range f.profiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return types.Profile{}, store.ErrNotFound
}

func (f *fakeProfileRepo) Create(_ context.Context, profile types.Profile) (types.Profile, error) {
	profile.ID = len(f.profiles) + 1
	f.profiles[profile.ID] = profile
	return profile, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, profile types.Profile) (types.Profile, error) {
	if _, ok := f.profiles[profile.ID]; !ok {
		return types.Profile{}, store.ErrNotFound
	}
	f.profiles[profile.ID] = profile
	return profile, nil
}

func TestUpdateContactPreservesRoleAndLanguage(t *testing.T) {
	repo := &fakeProfileRepo{profiles: map[int]types.Profile{
		1: {ID: 1, UserID: 10, Name: "Old Name", Role: types.RoleUser, Language: types.LangBengali},
	}}
	svc := NewProfileService(repo)

	updated, err := svc.UpdateContact(context.Background(), 1, "New Name", "+880170", "Sylhet")
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.Name)
	require.Equal(t, "+880170", updated.Phone)
	require.Equal(t, "Sylhet", updated.Address)
	require.Equal(t, types.RoleUser, updated.Role)
	require.Equal(t, types.LangBengali, updated.Language)
}

func TestToggleLanguageRoundTrip(t *testing.T) {
	repo := &fakeProfileRepo{profiles: map[int]types.Profile{
		1: {ID: 1, UserID: 10, Language: types.LangEnglish},
	}}
	svc := NewProfileService(repo)

	updated, err := svc.ToggleLanguage(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, types.LangBengali, updated.Language)

	updated, err = svc.ToggleLanguage(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, types.LangEnglish, updated.Language)
}
