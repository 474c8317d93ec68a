package model

import "errors"

// Postgres SQLSTATE codes the pipeline cares about.
const (
	CodeUniqueViolation = "23505"
	CodeUndefinedTable  = "42P01"
)

// StoreError is the error shape surfaced by the persistence adapter.
type StoreError struct {
	Message string
	Code    string
}

func (e *StoreError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Message + " (" + e.Code + ")"
}

// IsUniqueViolation reports whether err is a unique-constraint rejection.
// Duplicate-key rejections are expected during re-imports and are counted as
// skips, never as run failures.
func IsUniqueViolation(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == CodeUniqueViolation
}

// IsUndefinedTable reports whether err signals a missing relation, which means
// the store is misconfigured rather than the input being bad.
func IsUndefinedTable(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == CodeUndefinedTable
}
