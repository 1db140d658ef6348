package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotInitialized = errors.New("reference cache is not initialized")

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

var ErrMissingIDs = NewValidationError("Query parameter 'ids' is required")

func NewTooManyIDsError(limit int) error {
	return &ValidationError{Msg: fmt.Sprintf("Too many ids requested, at most %d are allowed", limit)}
}

// FetchError records which collection failed to load during a refresh.
type FetchError struct {
	Collection string
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Collection, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FetchErrors flattens a refresh error into one message per failed collection.
func FetchErrors(err error) []string {
	if err == nil {
		return nil
	}
	var messages []string
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			messages = append(messages, e.Error())
		}
		return messages
	}
	return []string{strings.TrimSpace(err.Error())}
}
