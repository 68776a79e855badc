package activitydb

import (
	"errors"

	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint, e.g. inviting the same account twice.
	ErrDuplicate = errors.New("duplicate row")

	// ErrLockNotAvailable is returned when a NOWAIT row lock could not be
	// acquired. Callers map this to their contention error and retry.
	ErrLockNotAvailable = errors.New("row lock not available")
)

// Postgres error codes this package translates into sentinel errors.
const (
	pgUniqueViolation  = "23505"
	pgLockNotAvailable = "55P03"
)

// mapPgError converts driver-level constraint and locking failures into the
// package sentinels so callers never match on SQLSTATE strings.
func mapPgError(err error) error {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Field('C') {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgLockNotAvailable:
			return ErrLockNotAvailable
		}
	}
	return err
}
