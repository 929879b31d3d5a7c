package store

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint. It is the canonical duplicate-submission signal: the
// schema's unique indexes make it reliable even when two submissions
// race past the application-level pre-check.
var ErrDuplicate = errors.New("duplicate")

const uniqueViolationCode = "23505"

func mapInsertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return ErrDuplicate
	}
	return err
}
