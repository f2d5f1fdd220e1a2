package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Storage errors
	ErrStorageIO = errors.New("storage i/o failure")
)

// Student Errors
var (
	ErrStudentNotFound = NewResourceNotFoundError("student not found")
	ErrInvalidAgeRange = NewValidationError("minimum age must not exceed maximum age")
)

// Faculty Errors
var (
	ErrFacultyNotFound = NewResourceNotFoundError("faculty not found")
	ErrUnknownFaculty  = NewValidationError("referenced faculty does not exist")
)

// Avatar Errors
var (
	ErrMissingExtension = NewValidationError("file name has no extension")
	ErrInvalidExtension = NewValidationError("file extension is not allowed")
	ErrAvatarExists     = NewConflictError("avatar file was created concurrently")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewStorageError wraps a filesystem failure as a storage error
func NewStorageError(message string, cause error) error {
	return &CustomError{
		Err:     errors.Join(ErrStorageIO, cause),
		Message: message,
	}
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}
