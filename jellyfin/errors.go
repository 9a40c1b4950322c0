package jellyfin

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by the Jellyfin client.
var (
	// ErrAuthNotFound is returned when an endpoint that requires
	// authentication is called before a session has been established.
	ErrAuthNotFound = errors.New("no authenticated session")

	// ErrInvalidURL indicates the server URL could not be parsed.
	ErrInvalidURL = errors.New("invalid jellyfin server URL")
)

// APIError represents a non-2xx response from the Jellyfin API.
// Type, Title, Detail and Instance carry the server's problem-details
// fields when the error body was JSON; Message always holds the raw body.
type APIError struct {
	StatusCode  int
	Type        string
	Title       string
	Detail      string
	Instance    string
	FieldErrors map[string][]string
	Message     string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "jellyfin API error: status %d: %s", e.StatusCode, e.Message)
	if e.Type != "" {
		fmt.Fprintf(&b, ", type: %s", e.Type)
	}
	if e.Title != "" {
		fmt.Fprintf(&b, ", title: %s", e.Title)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ", detail: %s", e.Detail)
	}
	if e.Instance != "" {
		fmt.Fprintf(&b, ", instance: %s", e.Instance)
	}
	return b.String()
}

// IsNotFound checks if the error indicates a not found response.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an authentication failure.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// problemDetails is the JSON error body shape the server returns.
type problemDetails struct {
	Type     string              `json:"type"`
	Title    string              `json:"title"`
	Detail   string              `json:"detail"`
	Instance string              `json:"instance"`
	Errors   map[string][]string `json:"errors"`
}

// decodeAPIError maps a failed response to an *APIError. It never fails:
// bodies that are not a problem-details object degrade to the raw text
// message with all structured fields left empty.
func decodeAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    string(body),
	}

	var pd problemDetails
	if err := json.Unmarshal(body, &pd); err != nil {
		return apiErr
	}

	apiErr.Type = pd.Type
	apiErr.Title = pd.Title
	apiErr.Detail = pd.Detail
	apiErr.Instance = pd.Instance
	apiErr.FieldErrors = pd.Errors
	if apiErr.FieldErrors == nil {
		apiErr.FieldErrors = map[string][]string{}
	}

	return apiErr
}
