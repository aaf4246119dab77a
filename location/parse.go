// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

// Package location turns the free-form location a citizen submits into a
// human readable address.
package location

import (
	"strconv"
	"strings"

	"github.com/jcodagnone/civicreport/spatial"
)

// Kind tags the variant held by Parsed.
type Kind int

const (
	// FreeText is an address typed by the user; it is used verbatim.
	FreeText Kind = iota
	// Coordinates is a "<lat>,<lon>" pair within WGS84 ranges.
	Coordinates
)

func (k Kind) String() string {
	switch k {
	case Coordinates:
		return "coordinates"
	default:
		return "free_text"
	}
}

// Parsed is the result of classifying a raw location.
type Parsed struct {
	Kind Kind
	// Point is set when Kind is Coordinates.
	Point spatial.Point
	// Address is set when Kind is FreeText.
	Address string
	// OutOfRange marks free text that looked like a numeric pair but whose
	// values fall outside the valid ranges.
	OutOfRange bool
}

// Parse classifies raw as coordinates or free text. It never fails: any shape
// other than exactly two numeric comma-separated tokens within range is free
// text, returned unchanged.
func Parse(raw string) Parsed {
	text := Parsed{Kind: FreeText, Address: raw}

	tokens := strings.Split(raw, ",")
	if len(tokens) != 2 {
		return text
	}

	lat, latOK := parseNumber(tokens[0])
	lng, lngOK := parseNumber(tokens[1])

	if !latOK || !lngOK {
		return text
	}

	// NaN and ±Inf fail the range check too.
	p := spatial.Point{Lat: lat, Lng: lng}
	if !p.Valid() {
		text.OutOfRange = true

		return text
	}

	return Parsed{Kind: Coordinates, Point: p}
}

// parseNumber accepts decimal notation only; hexadecimal floats and digit
// separators are not coordinates.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if strings.ContainsAny(s, "xX_") {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}
