package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nf, ok := err.(*NotFoundError); ok {
		return nf, true
	}
	return nil, false
}

// StorageError wraps a datastore failure. Writes that fail with it may have
// left earlier writes of the same business operation committed.
type StorageError struct {
	Message string
	Cause   error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

func NewStorageError(message string, cause error) *StorageError {
	return &StorageError{
		Message: message,
		Cause:   cause,
	}
}

func IsStorageError(err error) (*StorageError, bool) {
	if se, ok := err.(*StorageError); ok {
		return se, true
	}
	return nil, false
}

// SequenceRaceError reports a collision on an allocated identifier, i.e. a
// duplicate (OrderNumber, LineItem) insert.
type SequenceRaceError struct {
	Message string
}

func (e *SequenceRaceError) Error() string {
	return e.Message
}

func NewSequenceRaceError(message string) *SequenceRaceError {
	return &SequenceRaceError{Message: message}
}

func IsSequenceRaceError(err error) (*SequenceRaceError, bool) {
	if sr, ok := err.(*SequenceRaceError); ok {
		return sr, true
	}
	return nil, false
}
