package models

import "errors"

var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrSerialization      = errors.New("serialization error")
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
)

// ErrorKind names the classification of err for logs. It never leaves the process.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrDuplicateEmail), errors.Is(err, ErrDuplicateKey):
		return "duplicate"
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUserNotFound):
		return "credentials"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, ErrSerialization):
		return "serialization"
	default:
		return "internal"
	}
}
