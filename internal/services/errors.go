package services

import "errors"

// Error kinds; handlers map them onto HTTP statuses.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation error")
	ErrStorage    = errors.New("storage error")
)

// Error pairs a kind with a caller-facing message. errors.Is matches the kind.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

func notFound(msg string) error   { return &Error{kind: ErrNotFound, msg: msg} }
func forbidden(msg string) error  { return &Error{kind: ErrForbidden, msg: msg} }
func validation(msg string) error { return &Error{kind: ErrValidation, msg: msg} }

// storage wraps a persistence failure. The broadcast for the mutation must
// not fire once this is returned.
func storage(err error) error {
	return &Error{kind: ErrStorage, msg: "storage error: " + err.Error()}
}
