// Package food provides the use cases for managing food entries.
// It implements the business logic for the home view, add, edit, and delete
// operations, including validation and interaction with the repository.
package food

import "errors"

// Sentinel errors for food entry use case operations.
var (
	// ErrEntryNotFound indicates that the requested entry does not exist or
	// has been soft-deleted. Operating on such an entry is a recoverable
	// condition surfaced as a not-found response, never a crash.
	ErrEntryNotFound = errors.New("food entry not found")

	// ErrInvalidEntryID indicates that the provided entry ID is invalid.
	// Entry IDs must be positive integers.
	ErrInvalidEntryID = errors.New("invalid food entry ID")
)
