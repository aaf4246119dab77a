// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package location

import (
	"testing"

	"github.com/jcodagnone/civicreport/spatial"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantKind   Kind
		wantPoint  spatial.Point
		outOfRange bool
	}{
		{
			name:      "coordinates",
			in:        "40.7128,-74.0060",
			wantKind:  Coordinates,
			wantPoint: spatial.Point{Lat: 40.7128, Lng: -74.0060},
		},
		{
			name:      "coordinates with spacing",
			in:        "40.7128, -74.0060",
			wantKind:  Coordinates,
			wantPoint: spatial.Point{Lat: 40.7128, Lng: -74.0060},
		},
		{
			name:      "surrounding whitespace",
			in:        "  -34.9011 ,  -56.1645 ",
			wantKind:  Coordinates,
			wantPoint: spatial.Point{Lat: -34.9011, Lng: -56.1645},
		},
		{
			name:      "integers on the bounds",
			in:        "-90,180",
			wantKind:  Coordinates,
			wantPoint: spatial.Point{Lat: -90, Lng: 180},
		},
		{
			name:     "three tokens",
			in:       "not a place, at all, nope",
			wantKind: FreeText,
		},
		{
			name:     "address with one comma",
			in:       "221B Baker Street, London",
			wantKind: FreeText,
		},
		{
			name:     "no comma",
			in:       "Main Square",
			wantKind: FreeText,
		},
		{
			name:     "extra comma",
			in:       "40.7128,-74.0060,",
			wantKind: FreeText,
		},
		{
			name:     "malformed number",
			in:       "40.71.28,-74.0060",
			wantKind: FreeText,
		},
		{
			name:     "hexadecimal float",
			in:       "0x1p-2,10",
			wantKind: FreeText,
		},
		{
			name:     "empty token",
			in:       ",-74.0060",
			wantKind: FreeText,
		},
		{
			name:       "latitude out of range",
			in:         "91,10",
			wantKind:   FreeText,
			outOfRange: true,
		},
		{
			name:       "longitude out of range",
			in:         "10,-180.0001",
			wantKind:   FreeText,
			outOfRange: true,
		},
		{
			name:       "nan",
			in:         "NaN,10",
			wantKind:   FreeText,
			outOfRange: true,
		},
		{
			name:       "infinity",
			in:         "10,+Inf",
			wantKind:   FreeText,
			outOfRange: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)

			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.outOfRange, got.OutOfRange)

			if tt.wantKind == Coordinates {
				assert.InDelta(t, tt.wantPoint.Lat, got.Point.Lat, 1e-9)
				assert.InDelta(t, tt.wantPoint.Lng, got.Point.Lng, 1e-9)
			} else {
				assert.Equal(t, tt.in, got.Address, "free text must be passed through unchanged")
			}
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "coordinates", Coordinates.String())
	assert.Equal(t, "free_text", FreeText.String())
}
