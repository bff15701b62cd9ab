// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrFetch indicates the external catalog was unreachable or returned
	// a malformed response.
	ErrFetch = errors.New("fetch failed")

	// ErrPersistence indicates the store could not commit a transaction.
	ErrPersistence = errors.New("persistence failed")

	// ErrIngestion wraps any failure surfacing from an ingestion run.
	ErrIngestion = errors.New("ingestion failed")

	// ErrValidation indicates the caller supplied invalid parameters.
	ErrValidation = errors.New("validation failed")
)
