// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package location

import (
	"errors"
	"fmt"
	"net/http"
)

// Error reports why a location could not be turned into an address.
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

// ErrorType classifies location errors.
type ErrorType int

const (
	// ErrorTypeUnknown unclassified failure.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeInvalidCoordinates a numeric pair outside the valid ranges (strict mode only).
	ErrorTypeInvalidCoordinates
	// ErrorTypeNoAddress the geocoder answered but had no display address.
	ErrorTypeNoAddress
	// ErrorTypeRateLimit the geocoder throttled us.
	ErrorTypeRateLimit
	// ErrorTypeQuotaExceeded access denied or quota exhausted.
	ErrorTypeQuotaExceeded
	// ErrorTypeInvalidRequest the geocoder rejected the request.
	ErrorTypeInvalidRequest
	// ErrorTypeNetworkError transport failure or upstream unavailable.
	ErrorTypeNetworkError
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeInvalidCoordinates:
		return "invalid_coordinates"
	case ErrorTypeNoAddress:
		return "no_address"
	case ErrorTypeRateLimit:
		return "rate_limit"
	case ErrorTypeQuotaExceeded:
		return "quota_exceeded"
	case ErrorTypeInvalidRequest:
		return "invalid_request"
	case ErrorTypeNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func hasType(err error, t ErrorType) bool {
	var locErr *Error
	if errors.As(err, &locErr) {
		return locErr.Type == t
	}

	return false
}

// IsInvalidCoordinates reports whether err rejects the input itself rather
// than the geocoding lookup.
func IsInvalidCoordinates(err error) bool {
	return hasType(err, ErrorTypeInvalidCoordinates)
}

// IsRateLimitError reports whether the geocoder throttled the request.
func IsRateLimitError(err error) bool {
	return hasType(err, ErrorTypeRateLimit)
}

// CellError tags a failed lookup with the H3 cell of the queried point so that
// callers can log where it happened without the coordinates themselves.
type CellError struct {
	Cell string
	Err  error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("reverse geocoding cell %s: %v", e.Cell, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// CellOf returns the H3 cell attached to err, or "" when there is none.
func CellOf(err error) string {
	var cellErr *CellError
	if errors.As(err, &cellErr) {
		return cellErr.Cell
	}

	return ""
}

// ClassifyHTTPError maps a non-success geocoder status to an Error.
func ClassifyHTTPError(statusCode int) *Error {
	switch statusCode {
	case http.StatusTooManyRequests:
		return &Error{
			Type:    ErrorTypeRateLimit,
			Message: "rate limit reached",
		}
	case http.StatusForbidden, http.StatusUnauthorized:
		return &Error{
			Type:    ErrorTypeQuotaExceeded,
			Message: "quota exceeded or access denied",
		}
	case http.StatusBadRequest:
		return &Error{
			Type:    ErrorTypeInvalidRequest,
			Message: "invalid request",
		}
	case http.StatusNotFound:
		return &Error{
			Type:    ErrorTypeNoAddress,
			Message: "location not found",
		}
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return &Error{
			Type:    ErrorTypeNetworkError,
			Message: fmt.Sprintf("service unavailable (status %d)", statusCode),
		}
	default:
		return &Error{
			Type:    ErrorTypeUnknown,
			Message: fmt.Sprintf("HTTP error %d", statusCode),
		}
	}
}
