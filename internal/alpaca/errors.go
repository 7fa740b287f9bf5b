package alpaca

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPositionNotFound indicates the requested position does not exist upstream.
var ErrPositionNotFound = errors.New("alpaca: position not found")

// APIError is a non-2xx response decoded from the brokerage API.
type APIError struct {
	StatusCode int
	Code       int    `json:"code"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("alpaca: request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("alpaca: %s (status %d)", e.Message, e.StatusCode)
}

// isPositionNotFound reports whether err is the brokerage's way of saying
// a position does not exist.
func isPositionNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == 404 ||
		strings.Contains(strings.ToLower(apiErr.Message), "position does not exist")
}
