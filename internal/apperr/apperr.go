// Package apperr defines the failure kinds that end a nimbus run and the
// message shown to the user for each.
package apperr

import "errors"

// Failure kinds. Every error returned to main wraps exactly one of them.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrLocation      = errors.New("location error")
	ErrTransport     = errors.New("transport error")
	ErrDecode        = errors.New("decode error")
)

// Error carries the kind of failure, the message for the user and the underlying cause.
type Error struct {
	Kind    error  // Kind is one of the Err* sentinels above.
	Message string // Message is printed to the user as is.
	Err     error  // Err is the underlying cause, may be nil.
}

// New builds an Error of the given kind.
func New(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// UserMessage returns the text to show the user for err.
func UserMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
