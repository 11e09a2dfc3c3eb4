package assessment

import "errors"

type ErrorCode string

const (
	ErrorInvalid       ErrorCode = "invalid"
	ErrorNotFound      ErrorCode = "not_found"
	ErrorConflict      ErrorCode = "conflict"
	ErrorUnauthorized  ErrorCode = "unauthorized"
	ErrorUnprocessable ErrorCode = "unprocessable"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error  { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewNotFoundError(msg string) error { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewConflictError(msg string) error { return &ServiceError{Code: ErrorConflict, Message: msg} }

func NewUnauthorizedError(msg string) error {
	return &ServiceError{Code: ErrorUnauthorized, Message: msg}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

var (
	// ErrAssessmentNotFound is returned when a submission references a job
	// that has no assessment.
	ErrAssessmentNotFound = errors.New("assessment not found")
	// ErrValidationFailed flags a submission blocked by per-field errors.
	ErrValidationFailed = errors.New("validation failed")
	// ErrAlreadySubmitted flags a second submit on a finished session.
	ErrAlreadySubmitted = errors.New("assessment already submitted")
)
