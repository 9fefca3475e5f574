package wikidata

import (
	"errors"
	"fmt"
)

// Common errors returned by the Wikidata client.
var (
	// ErrNotFound indicates no item carries the requested identifier.
	ErrNotFound = errors.New("not found in Wikidata")

	// ErrAuthError indicates missing or rejected credentials.
	ErrAuthError = errors.New("Wikidata authentication error")

	// ErrRateLimited indicates the API asked us to slow down.
	ErrRateLimited = errors.New("Wikidata rate limit exceeded")

	// ErrUnknownIDType indicates an identifier type with no mapped
	// external-id property.
	ErrUnknownIDType = errors.New("unknown identifier type")

	// ErrInvalidResponse indicates an unexpected API response shape.
	ErrInvalidResponse = errors.New("invalid response from Wikidata")
)

// APIError represents an error reported by the MediaWiki API itself.
type APIError struct {
	Code string // MediaWiki error code, e.g. "badtoken", "ratelimited"
	Info string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Wikidata API error (%s): %s", e.Code, e.Info)
}

// IsNotFound returns true if the error means no matching item exists.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthError) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == "badtoken" || apiErr.Code == "assertuserfailed" || apiErr.Code == "permissiondenied"
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == "ratelimited" || apiErr.Code == "maxlag"
	}
	return false
}
