package services

import (
	"context"
	"testing"

	"github.com/probashi-portal/apiserver/internal/store"
	"github.com/probashi-portal/apiserver/types"
	"github.com/stretchr/testify/require"
)

type fakeEnrollmentRepo struct {
	existing map[[2]int]bool
	rows     []types.Enrollment
	nextID   int
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{existing: make(map[[2]int]bool), nextID: 1}
}

func (f *fakeEnrollmentRepo) Exists(_ context.Context, courseID, profileID int) (bool, error) {
	return f.existing[[2]int{courseID, profileID}], nil
}

func (f *fakeEnrollmentRepo) Create(_ context.Context, enrollment types.Enrollment) (types.Enrollment, error) {
	if f.existing[[2]int{enrollment.CourseID, enrollment.ProfileID}] {
		return types.Enrollment{}, store.ErrDuplicate
	}
	enrollment.ID = f.nextID
	f.nextID++
	f.existing[[2]int{enrollment.CourseID, enrollment.ProfileID}] = true
	f.rows = append(f.rows, enrollment)
	return enrollment, nil
}

func (f *fakeEnrollmentRepo) ListByProfile(_ context.Context, profileID int) ([]types.Enrollment, error) {
	var out []types.Enrollment
	for _, row := range f.rows {
		if row.ProfileID == profileID {
			out = append(out, row)
		}
	}
	return out, nil
}

func TestEnroll(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	svc := NewEnrollmentService(repo)

	enrollment, err := svc.Enroll(context.Background(), 5, 2)
	require.NoError(t, err)
	require.Equal(t, 5, enrollment.CourseID)
	require.Equal(t, 2, enrollment.ProfileID)

	mine, err := svc.ListMine(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, mine, 1)
}

func TestEnrollRejectsDuplicate(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	svc := NewEnrollmentService(repo)

	_, err := svc.Enroll(context.Background(), 5, 2)
	require.NoError(t, err)

	_, err = svc.Enroll(context.Background(), 5, 2)
	require.ErrorIs(t, err, store.ErrDuplicate)

	// Same course, different profile is fine.
	_, err = svc.Enroll(context.Background(), 5, 3)
	require.NoError(t, err)
}
