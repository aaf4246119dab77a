// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package location

import (
	"context"
	"errors"
	"testing"

	"github.com/jcodagnone/civicreport/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGeocoder records the points it was asked about.
type fakeGeocoder struct {
	address string
	err     error
	calls   []spatial.Point
}

func (f *fakeGeocoder) Reverse(_ context.Context, p spatial.Point) (string, error) {
	f.calls = append(f.calls, p)

	return f.address, f.err
}

func TestNormalizeCoordinates(t *testing.T) {
	for _, in := range []string{"40.7128,-74.0060", "40.7128, -74.0060"} {
		t.Run(in, func(t *testing.T) {
			geo := &fakeGeocoder{address: "Manhattan, New York"}
			n := NewNormalizer(geo)

			got, err := n.Normalize(context.Background(), in)
			require.NoError(t, err)

			assert.Equal(t, "Manhattan, New York", got.Address)
			require.NotNil(t, got.Point)
			assert.InDelta(t, 40.7128, got.Point.Lat, 1e-9)
			assert.NotEmpty(t, got.Cell)
			require.Len(t, geo.calls, 1)
			assert.InDelta(t, -74.0060, geo.calls[0].Lng, 1e-9)
		})
	}
}

func TestNormalizeFreeText(t *testing.T) {
	geo := &fakeGeocoder{}
	n := NewNormalizer(geo)

	got, err := n.Normalize(context.Background(), "not a place, at all, nope")
	require.NoError(t, err)

	assert.Equal(t, "not a place, at all, nope", got.Address)
	assert.Nil(t, got.Point)
	assert.Empty(t, got.Cell)
	assert.Empty(t, geo.calls)
}

func TestNormalizeUnresolvable(t *testing.T) {
	t.Run("geocoder error", func(t *testing.T) {
		geo := &fakeGeocoder{err: &Error{Type: ErrorTypeNoAddress, Message: "nothing here"}}

		_, err := NewNormalizer(geo).Normalize(context.Background(), "0,0")
		require.Error(t, err)

		var locErr *Error
		require.ErrorAs(t, err, &locErr)
		assert.Equal(t, ErrorTypeNoAddress, locErr.Type)
	})

	t.Run("empty address", func(t *testing.T) {
		geo := &fakeGeocoder{}

		_, err := NewNormalizer(geo).Normalize(context.Background(), "0,0")
		require.Error(t, err)
		assert.False(t, IsInvalidCoordinates(err))
	})

	t.Run("plain error is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		geo := &fakeGeocoder{err: boom}

		_, err := NewNormalizer(geo).Normalize(context.Background(), "1,1")
		require.ErrorIs(t, err, boom)
	})

	t.Run("failures carry the cell, not the point", func(t *testing.T) {
		wantCell, err := spatial.Point{Lat: 40.7128, Lng: -74.006}.Cell()
		require.NoError(t, err)

		for _, geo := range []*fakeGeocoder{{err: ClassifyHTTPError(503)}, {}} {
			_, err := NewNormalizer(geo).Normalize(context.Background(), "40.7128,-74.0060")
			require.Error(t, err)
			assert.Equal(t, wantCell, CellOf(err))
			assert.NotContains(t, err.Error(), "40.7128")
			assert.NotContains(t, err.Error(), "74.006")
		}
	})
}

func TestNormalizeOutOfRange(t *testing.T) {
	t.Run("lenient falls back to free text", func(t *testing.T) {
		geo := &fakeGeocoder{}
		n := NewNormalizer(geo)

		got, err := n.Normalize(context.Background(), "123.4,10")
		require.NoError(t, err)
		assert.Equal(t, "123.4,10", got.Address)
		assert.Empty(t, geo.calls)
	})

	t.Run("strict rejects", func(t *testing.T) {
		geo := &fakeGeocoder{}
		n := NewNormalizer(geo)
		n.Strict = true

		_, err := n.Normalize(context.Background(), "123.4,10")
		require.Error(t, err)
		assert.True(t, IsInvalidCoordinates(err))
		assert.Empty(t, geo.calls)
	})

	t.Run("strict keeps free text", func(t *testing.T) {
		n := NewNormalizer(&fakeGeocoder{})
		n.Strict = true

		got, err := n.Normalize(context.Background(), "Main St, Springfield")
		require.NoError(t, err)
		assert.Equal(t, "Main St, Springfield", got.Address)
	})
}
