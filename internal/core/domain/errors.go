package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file type that cannot be
	// decoded as text by any extractor.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrExtractionFailure indicates malformed input of a supported type.
	ErrExtractionFailure = errors.New("extraction failure")

	// Embedding Provider Errors.

	// ErrProviderUnavailable indicates the embedding provider is not
	// configured, typically because a required credential is absent.
	ErrProviderUnavailable = errors.New("embedding provider unavailable")

	// ErrProviderError indicates the upstream embedding call failed
	// or timed out. There is no automatic retry.
	ErrProviderError = errors.New("embedding provider error")

	// Storage Errors.

	// ErrIntegrityViolation indicates a unique-constraint violation,
	// such as a masked name collision.
	ErrIntegrityViolation = errors.New("integrity violation")

	// ErrStorageFailure indicates a disk or database I/O failure.
	ErrStorageFailure = errors.New("storage failure")
)
