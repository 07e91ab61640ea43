package apperror

import "errors"

// Kind classifies an AppError. The HTTP layer decides how each kind is rendered.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindConfiguration
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindConfiguration:
		return "configuration"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// AppError is a custom error type that carries a failure kind and a user-facing message.
type AppError struct {
	Kind    Kind   // Failure class (validation, conflict, not found, ...)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a kind and message.
func New(kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Validation, Conflict and NotFound are shorthands for the three kinds the core returns.
func Validation(message string) *AppError { return New(KindValidation, message) }
func Conflict(message string) *AppError   { return New(KindConflict, message) }
func NotFound(message string) *AppError   { return New(KindNotFound, message) }

// KindOf returns the kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
