package errors

import (
	"fmt"
	"strings"
)

// Error is an error object with underlying error.
type Error struct {
	prefix  []interface{}
	message []interface{}
	inner   error
}

// Error implements error.Error().
func (err *Error) Error() string {
	builder := strings.Builder{}
	for _, prefix := range err.prefix {
		builder.WriteByte('[')
		builder.WriteString(fmt.Sprint(prefix))
		builder.WriteString("] ")
	}

	builder.WriteString(fmt.Sprint(err.message...))

	if err.inner != nil {
		builder.WriteString(" > ")
		builder.WriteString(err.inner.Error())
	}

	return builder.String()
}

// Base sets the underlying error.
func (err *Error) Base(e error) *Error {
	err.inner = e
	return err
}

// AtPrefix tags the error with the component it came from, e.g. "[oaisys] ...".
func (err *Error) AtPrefix(p interface{}) *Error {
	err.prefix = append(err.prefix, p)
	return err
}

// Unwrap returns the underlying error so errors.Is and errors.As see through it.
func (err *Error) Unwrap() error {
	return err.inner
}

// String returns the string representation of this error.
func (err *Error) String() string {
	return err.Error()
}

// NewError returns a new error object with message formed from given arguments.
func NewError(msg ...interface{}) *Error {
	return &Error{
		message: msg,
	}
}
