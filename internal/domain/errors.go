package domain

import (
	"errors"
	"fmt"
)

// NotFoundMessage is the fixed client-facing text for a missing bookmark.
const NotFoundMessage = "Bookmark doesn't exist"

// ErrNotFound is returned when an id does not resolve to a bookmark.
var ErrNotFound = errors.New("bookmark not found")

// ErrEmptyPatch is returned when a partial update carries no recognized field.
var ErrEmptyPatch = &ValidationError{
	Message: "Request body must contain either 'title', 'url', 'description' or 'rating'",
}

// ErrInvalidRating rejects ratings that decode to NaN or an infinity
// (possible from YAML seeds, where ".inf" is a float).
var ErrInvalidRating = &ValidationError{Field: "rating", Message: "Invalid 'rating' in request body"}

// ValidationError describes client input that cannot be accepted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// MissingField builds the error reported when a required field is absent.
func MissingField(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("Missing '%s' in request body", field),
	}
}

// StorageError wraps any failure coming from the relational engine.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
