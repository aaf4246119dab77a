// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package authority

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *Info
	}{
		{
			name: "required and email",
			raw:  `{"department":"Public Works","contactNumber":"555-0100","email":"pw@city.gov"}`,
			want: &Info{Department: "Public Works", ContactNumber: "555-0100", Email: "pw@city.gov"},
		},
		{
			name: "all fields",
			raw: `{"department":"Street Lighting","contactNumber":"311",
				"email":"lights@city.gov","additionalInfo":"Open 24/7"}`,
			want: &Info{
				Department:     "Street Lighting",
				ContactNumber:  "311",
				Email:          "lights@city.gov",
				AdditionalInfo: "Open 24/7",
			},
		},
		{
			name: "only required",
			raw:  `  {"department":"Sanitation","contactNumber":"555-0199"}  `,
			want: &Info{Department: "Sanitation", ContactNumber: "555-0199"},
		},
		{
			name: "markdown fence",
			raw:  "```json\n{\"department\":\"Roads\",\"contactNumber\":\"555-0111\"}\n```",
			want: &Info{Department: "Roads", ContactNumber: "555-0111"},
		},
		{
			name: "bare fence",
			raw:  "```\n{\"department\":\"Roads\",\"contactNumber\":\"555-0111\"}\n```",
			want: &Info{Department: "Roads", ContactNumber: "555-0111"},
		},
		{
			name: "unknown keys ignored",
			raw:  `{"department":"Water","contactNumber":"555-0123","source":"city.gov"}`,
			want: &Info{Department: "Water", ContactNumber: "555-0123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.raw)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Kind
	}{
		{"not json", "not json", KindMalformedOutput},
		{"empty", "", KindMalformedOutput},
		{"array", `[{"department":"a","contactNumber":"b"}]`, KindMalformedOutput},
		{"null", "null", KindMalformedOutput},
		{"truncated", `{"department":"Public Works"`, KindMalformedOutput},
		{"two objects", `{"department":"a","contactNumber":"b"}{}`, KindMalformedOutput},
		{"trailing text", `{"department":"a","contactNumber":"b"} thanks!`, KindMalformedOutput},
		{"number contact", `{"department":"a","contactNumber":5550100}`, KindMalformedOutput},
		{"only email", `{"email":"a@b.com"}`, KindNoVerifiedAuthority},
		{"empty object", `{}`, KindNoVerifiedAuthority},
		{"blank department", `{"department":"  ","contactNumber":"555-0100"}`, KindNoVerifiedAuthority},
		{"missing contact", `{"department":"Public Works","email":"pw@city.gov"}`, KindNoVerifiedAuthority},
		{"null contact", `{"department":"Public Works","contactNumber":null}`, KindNoVerifiedAuthority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.raw)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.Equal(t, tt.want, KindOf(err))
		})
	}
}

func TestValidateMalformedKeepsDiagnostic(t *testing.T) {
	_, err := Validate("not json")
	require.Error(t, err)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, msgMalformedOutput, e.Message)
	require.Error(t, e.Err)
	assert.Contains(t, e.Err.Error(), "parsing model output")
}
