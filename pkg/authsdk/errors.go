package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/tweetbook/pkg/httpx"
)

// APIError is a non-2xx response from the service. The body is always
// {"errors": [...]}.
type APIError struct {
	StatusCode int      `json:"-"`
	Errors     []string `json:"errors"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, strings.Join(e.Errors, "; "))
}

// WriteError writes the error as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteErrors(w, e.StatusCode, e.Errors...)
}

// Has reports whether msg is one of the error messages.
func (e *APIError) Has(msg string) bool {
	for _, m := range e.Errors {
		if m == msg {
			return true
		}
	}
	return false
}

// NewAPIError creates an APIError with the given status and messages.
func NewAPIError(statusCode int, msgs ...string) *APIError {
	return &APIError{StatusCode: statusCode, Errors: msgs}
}

// Common errors shared by the server handlers.
var (
	ErrInvalidJSON = &APIError{
		StatusCode: http.StatusBadRequest,
		Errors:     []string{"Request body must be valid JSON"},
	}

	ErrInvalidContentType = &APIError{
		StatusCode: http.StatusUnsupportedMediaType,
		Errors:     []string{"Content-Type must be application/json"},
	}

	ErrServiceUnavailable = &APIError{
		StatusCode: http.StatusServiceUnavailable,
		Errors:     []string{"Service temporarily unavailable, please retry"},
	}

	ErrInternal = &APIError{
		StatusCode: http.StatusInternalServerError,
		Errors:     []string{"Something went wrong"},
	}
)

// parseErrorResponse turns a non-2xx response into an *APIError. Bodies that
// are not the usual envelope still produce an APIError carrying the status.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || len(apiErr.Errors) == 0 {
		apiErr.Errors = []string{strings.TrimSpace(http.StatusText(resp.StatusCode))}
	}
	return apiErr
}
