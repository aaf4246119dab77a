// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package location

import (
	"context"

	"github.com/jcodagnone/civicreport/spatial"
)

// ReverseGeocoder turns a point into a display address.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, p spatial.Point) (string, error)
}
