package portalsdk

import "fmt"

// Error codes returned by the portal API.
const (
	ErrorCodeInvalidRequest  = "invalid_request"
	ErrorCodeUnauthorized    = "unauthorized"
	ErrorCodeForbidden       = "forbidden"
	ErrorCodeNotFound        = "not_found"
	ErrorCodeConflict        = "conflict"
	ErrorCodeGone            = "gone"
	ErrorCodeInvalidState    = "invalid_state"
	ErrorCodeUnsupportedFile = "unsupported_file_type"
	ErrorCodeRateLimited     = "rate_limited"
	ErrorCodeServerError     = "server_error"
)

// ErrorResponse is the JSON error body every endpoint returns on failure.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// APIError is the client-side representation of an ErrorResponse.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("portal: %s (HTTP %d)", e.Code, e.StatusCode)
	}
	return fmt.Sprintf("portal: %s: %s (HTTP %d)", e.Code, e.Message, e.StatusCode)
}

// IsCode reports whether err is an APIError carrying the given code.
func IsCode(err error, code string) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Code == code
}
