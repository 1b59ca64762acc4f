package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnavailable wraps transport failures: the server could not be reached
// or the connection dropped before a response arrived.
var ErrUnavailable = errors.New("book network unavailable")

// Error is a non-2xx response from the backend.
type Error struct {
	StatusCode       int
	Code             int
	Message          string
	ValidationErrors []string
}

func (e *Error) Error() string {
	if len(e.ValidationErrors) > 0 {
		return fmt.Sprintf("%s (%s)", e.Message, strings.Join(e.ValidationErrors, "; "))
	}
	return e.Message
}

// errorBody mirrors the backend's exception response.
type errorBody struct {
	BusinessErrorCode        int      `json:"businessErrorCode"`
	BusinessErrorDescription string   `json:"businessErrorDescription"`
	Error                    string   `json:"error"`
	ValidationErrors         []string `json:"validationErrors"`
}

func newError(status int, body []byte) *Error {
	e := &Error{StatusCode: status}
	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		e.Code = eb.BusinessErrorCode
		e.ValidationErrors = eb.ValidationErrors
		switch {
		case eb.Error != "":
			e.Message = eb.Error
		case eb.BusinessErrorDescription != "":
			e.Message = eb.BusinessErrorDescription
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("request failed with status %d", status)
	}
	return e
}

// Messages returns the user-facing lines describing err. Validation errors
// are listed individually; other errors yield a single line.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if len(apiErr.ValidationErrors) > 0 {
			return append([]string(nil), apiErr.ValidationErrors...)
		}
		return []string{apiErr.Message}
	}
	if errors.Is(err, ErrUnavailable) {
		return []string{ErrUnavailable.Error()}
	}
	return []string{err.Error()}
}

// Message joins Messages into one line.
func Message(err error) string {
	return strings.Join(Messages(err), "; ")
}

// IsStatus reports whether err is an API error with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
