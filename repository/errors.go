package repository

import (
	"errors"
	"fmt"
	"github.com/mattn/go-sqlite3"
)

// ErrNotFound when an update targets a row that no longer exists
var ErrNotFound = errors.New("repository: row not found")

// ErrConstraintViolation when a write would break a uniqueness or
// foreign key invariant. This indicates a logic defect upstream and is
// kept distinct from ErrNotFound so it can be diagnosed rather than
// silently retried.
var ErrConstraintViolation = errors.New("repository: constraint violation")

func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}
	return err
}
