package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestMapInsertError(t *testing.T) {
	uniqueErr := &pq.Error{Code: uniqueViolationCode, Constraint: "ux_applications_job_profile"}
	require.ErrorIs(t, mapInsertError(uniqueErr), ErrDuplicate)

	wrapped := fmt.Errorf("insert application: %w", uniqueErr)
	require.ErrorIs(t, mapInsertError(wrapped), ErrDuplicate)

	otherErr := &pq.Error{Code: "23503"}
	require.NotErrorIs(t, mapInsertError(otherErr), ErrDuplicate)

	plain := errors.New("connection reset")
	require.Equal(t, plain, mapInsertError(plain))
}
