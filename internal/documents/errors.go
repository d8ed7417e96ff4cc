package documents

import "errors"

var (
	// ErrForbidden means the caller's role does not allow the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput means the request was missing or malformed input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound means the document does not exist.
	ErrNotFound = errors.New("document not found")
)
