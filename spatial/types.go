// Copyright 2025 The CivicReport Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"fmt"
	"strconv"

	"github.com/uber/h3-go/v4"
)

// CellResolution is the H3 resolution used to bucket reports (~0.1 km² cells).
const CellResolution = 9

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%f %f)", p.Lng, p.Lat)
}

// Valid reports whether the point lies within the WGS84 ranges.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// LatString and LngString format the coordinates without losing precision.
func (p Point) LatString() string { return strconv.FormatFloat(p.Lat, 'f', -1, 64) }

func (p Point) LngString() string { return strconv.FormatFloat(p.Lng, 'f', -1, 64) }

// Cell returns the H3 cell index containing the point at CellResolution.
func (p Point) Cell() (string, error) {
	cell, err := h3.LatLngToCell(h3.NewLatLng(p.Lat, p.Lng), CellResolution)
	if err != nil {
		return "", fmt.Errorf("computing h3 cell: %w", err)
	}

	return cell.String(), nil
}
