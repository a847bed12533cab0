// Package errors defines the error taxonomy of the retrieval core.
// Data conditions (malformed corpus, empty filter results) are not
// errors at all; the sentinels here mark programmer errors and
// missing-input preconditions that must fail fast.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrIndexNotBuilt is returned when a search is attempted before a
	// corpus snapshot has been successfully built.
	ErrIndexNotBuilt = errors.New("index not built")

	// ErrEmptyCorpus is returned when an index build is requested over a
	// corpus that parsed to zero records.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// IndexNotBuiltError reports a query against a missing index snapshot.
type IndexNotBuiltError struct {
	Operation string
}

func (e *IndexNotBuiltError) Error() string {
	return fmt.Sprintf("cannot %s: index has not been built", e.Operation)
}

func (e *IndexNotBuiltError) Is(target error) bool {
	return target == ErrIndexNotBuilt
}

// NewIndexNotBuiltError creates a new IndexNotBuiltError
func NewIndexNotBuiltError(operation string) *IndexNotBuiltError {
	return &IndexNotBuiltError{Operation: operation}
}

// EmptyCorpusError reports a build attempt over a corpus with no
// parseable records.
type EmptyCorpusError struct {
	Source string
}

func (e *EmptyCorpusError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("corpus from '%s' contains no parseable records", e.Source)
	}
	return "corpus contains no parseable records"
}

func (e *EmptyCorpusError) Is(target error) bool {
	return target == ErrEmptyCorpus
}

// NewEmptyCorpusError creates a new EmptyCorpusError
func NewEmptyCorpusError(source string) *EmptyCorpusError {
	return &EmptyCorpusError{Source: source}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
