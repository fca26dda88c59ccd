// Package errors defines the coded error type shared by the tree sources,
// the adapter, the render pipeline and the command line.
//
// Every failure that reaches a user carries a [Code]. The CLI prints the
// full chain and the viewer server maps the code to an HTTP status with
// [HTTPStatus]:
//
//	err := errors.New(errors.ErrCodeInvalidTree, "node %s: missing pos", id)
//	if errors.Is(err, errors.ErrCodeInvalidTree) {
//	    // reject the snapshot
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error category.
type Code string

const (
	// Malformed input: trees, identifiers, flags and config values.
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidTree    Code = "INVALID_TREE"
	ErrCodeInvalidNodeID  Code = "INVALID_NODE_ID"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidVizType Code = "INVALID_VIZ_TYPE"
	ErrCodeInvalidPalette Code = "INVALID_PALETTE"
	ErrCodeInvalidSource  Code = "INVALID_SOURCE"

	// More nodes than palette colors under the error overflow policy.
	ErrCodePaletteExhausted Code = "PALETTE_EXHAUSTED"

	ErrCodeNotFound          Code = "NOT_FOUND"
	ErrCodeFileNotFound      Code = "FILE_NOT_FOUND"
	ErrCodeSourceUnavailable Code = "SOURCE_UNAVAILABLE"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// statusByCode lists the codes that do not map to 500.
var statusByCode = map[Code]int{
	ErrCodeInvalidInput:      http.StatusUnprocessableEntity,
	ErrCodeInvalidTree:       http.StatusUnprocessableEntity,
	ErrCodeInvalidNodeID:     http.StatusUnprocessableEntity,
	ErrCodeInvalidFormat:     http.StatusUnprocessableEntity,
	ErrCodeInvalidVizType:    http.StatusUnprocessableEntity,
	ErrCodeInvalidPalette:    http.StatusUnprocessableEntity,
	ErrCodeInvalidSource:     http.StatusUnprocessableEntity,
	ErrCodePaletteExhausted:  http.StatusUnprocessableEntity,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeFileNotFound:      http.StatusNotFound,
	ErrCodeSourceUnavailable: http.StatusBadGateway,
	ErrCodeUnsupported:       http.StatusNotImplemented,
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error with the same code and no cause, so package-level
// sentinels built with New compare by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Cause == nil && t.Code == e.Code
}

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with code and a formatted message that unwraps to
// cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns err's message without the code prefix or cause.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps err's code to a response status. Uncoded errors are 500.
func HTTPStatus(err error) int {
	if s, ok := statusByCode[GetCode(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}
