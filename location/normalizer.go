// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package location

import (
	"context"
	"log"

	"github.com/jcodagnone/civicreport/spatial"
)

// Resolved is a location ready to be embedded in a prompt.
type Resolved struct {
	// Address is never empty.
	Address string
	// Point and Cell are set when the input was a coordinate pair.
	Point *spatial.Point
	Cell  string
}

// Normalizer resolves raw locations, reverse geocoding coordinate pairs.
type Normalizer struct {
	geocoder ReverseGeocoder
	// Strict rejects numeric pairs outside the valid ranges instead of treating
	// them as free text.
	Strict bool
}

// NewNormalizer creates a Normalizer backed by geocoder.
func NewNormalizer(geocoder ReverseGeocoder) *Normalizer {
	return &Normalizer{geocoder: geocoder}
}

// Normalize resolves raw into an address. Free text is returned verbatim and
// costs no network call.
func (n *Normalizer) Normalize(ctx context.Context, raw string) (*Resolved, error) {
	parsed := Parse(raw)

	switch parsed.Kind {
	case Coordinates:
		point := parsed.Point

		cell, err := point.Cell()
		if err != nil {
			log.Printf("location: %v", err)
		}

		address, err := n.geocoder.Reverse(ctx, point)
		if err != nil {
			return nil, &CellError{Cell: cell, Err: err}
		}

		if address == "" {
			return nil, &CellError{
				Cell: cell,
				Err:  &Error{Type: ErrorTypeNoAddress, Message: "geocoder returned an empty address"},
			}
		}

		return &Resolved{Address: address, Point: &point, Cell: cell}, nil
	default:
		if parsed.OutOfRange && n.Strict {
			return nil, &Error{
				Type:    ErrorTypeInvalidCoordinates,
				Message: "coordinates out of range",
			}
		}

		if parsed.Address == "" {
			return nil, &Error{Type: ErrorTypeInvalidRequest, Message: "empty location"}
		}

		return &Resolved{Address: parsed.Address}, nil
	}
}
