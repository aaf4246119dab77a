// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package authority

import (
	"errors"
	"fmt"
)

// Kind classifies pipeline failures. Each kind maps to one HTTP status.
type Kind int

const (
	// KindInternal is anything the pipeline did not anticipate.
	KindInternal Kind = iota
	// KindInvalidInput missing required fields or rejected coordinates.
	KindInvalidInput
	// KindUnresolvable the location could not be turned into an address.
	KindUnresolvable
	// KindBackendFailure the generative backend could not be reached or errored.
	KindBackendFailure
	// KindMalformedOutput the model answer is not a JSON object.
	KindMalformedOutput
	// KindNoVerifiedAuthority the model answered but without department or phone.
	KindNoVerifiedAuthority
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnresolvable:
		return "unresolvable"
	case KindBackendFailure:
		return "backend_failure"
	case KindMalformedOutput:
		return "malformed_output"
	case KindNoVerifiedAuthority:
		return "no_verified_authority"
	default:
		return "internal"
	}
}

// Error is returned by every stage of the resolution pipeline. Message is safe
// to show to end users; Err holds the diagnostic detail and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// User facing messages.
const (
	msgMissingFields      = "Missing required fields"
	msgInvalidCoordinates = "Invalid coordinates provided."
	msgUnresolvable       = "Unable to determine a valid address from coordinates."
	msgBackendFailure     = "Error detecting authorities"
	msgMalformedOutput    = "Error parsing authority information"
	msgNoVerified         = "No verified authority information found. Please check local municipal websites."
	msgInternal           = "Error detecting authorities"
)

// KindOf returns the Kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}
