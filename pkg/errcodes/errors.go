package errcodes

import (
	"fmt"
	"net/http"
)

type Error struct {
	HTTPCode int
	Message  string
	Code     string
	// Detail is echoed to the client as "error" on server errors.
	Detail string
}

func (err *Error) Error() string {
	if err.Detail != "" {
		return err.Message + ": " + err.Detail
	}
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.HTTPCode = err.HTTPCode
	te.Message = err.Message
	te.Code = err.Code
	te.Detail = err.Detail
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.HTTPCode == err.HTTPCode &&
		te.Message == err.Message &&
		te.Code == err.Code
}

// NotFound returns a 404 error with a message indicating the given resource,
// e.g. "Book not found".
func NotFound(resource string) error {
	return &Error{
		HTTPCode: http.StatusNotFound,
		Message:  resource + " not found",
		Code:     "not_found",
	}
}

// InvalidID returns a 400 error for an identifier that isn't a valid 24
// character hex id, e.g. "Invalid book ID".
func InvalidID(resource string) error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  "Invalid " + resource + " ID",
		Code:     "invalid_id",
	}
}

// Conflict returns a 400 error for a write that collides with existing state.
func Conflict(msg string) error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  msg,
		Code:     "conflict",
	}
}

func Unauthorized(msg string) error {
	return &Error{
		HTTPCode: http.StatusUnauthorized,
		Message:  msg,
		Code:     "unauthorized",
	}
}

func RouteNotFound() error {
	return &Error{
		HTTPCode: http.StatusNotFound,
		Message:  "Not found",
		Code:     "not_found",
	}
}

func UnsupportedMediaType() error {
	return &Error{
		HTTPCode: http.StatusUnsupportedMediaType,
		Message:  "Unsupported Media Type",
		Code:     "unsupported_media_type",
	}
}

func UnknownParameter(param string) error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  fmt.Sprintf("Unknown Parameter %q", param),
		Code:     "unknown_parameter",
	}
}

func ValidationTypeError(msg string) error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  msg,
		Code:     "validation_type_error",
	}
}

func ValidationError(msg string) error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  msg,
		Code:     "validation_error",
	}
}

// MalformedPayload is returned when a request body can't be decoded at all.
// It is reported as a server error with the decoder's message as the detail.
func MalformedPayload(detail string) error {
	return &Error{
		HTTPCode: http.StatusInternalServerError,
		Message:  "Server error",
		Code:     "malformed_payload",
		Detail:   detail,
	}
}

func EmptyRequestBody() error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  "Request body can't be empty",
		Code:     "empty_request_body",
	}
}
