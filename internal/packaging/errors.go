package packaging

import (
	"errors"
	"fmt"
)

// Business-rule failures are returned as these sentinels (possibly wrapped
// with a descriptive message); they are never fatal. Callers match with
// errors.Is.
var (
	// ErrNotFound means a referenced entity id does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidState means a status precondition was violated
	ErrInvalidState = errors.New("invalid state")

	// ErrNotEligible means one or more export targets failed the
	// pre-export status check; the whole batch is rejected
	ErrNotEligible = errors.New("not eligible for export")

	// ErrNoRecords means an import input contained no barcodes
	ErrNoRecords = errors.New("no records")

	// ErrNoTargets means an export was requested with an empty id list
	ErrNoTargets = errors.New("no targets")

	// ErrConnectivity means the database was unreachable after one
	// reconnect attempt
	ErrConnectivity = errors.New("database unreachable")
)

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}

func invalidState(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInvalidState)
}
