// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

// Package authority finds the government department responsible for a civic
// issue and its contact details.
package authority

// Report is an issue submitted by a citizen.
type Report struct {
	IssueType   string `json:"issueType"`
	Description string `json:"description"`
	// Location is either "<lat>,<lon>" or a free-text address.
	Location string `json:"location"`
	// IsAnonymous is sent by the form for the complaint mail; it does not
	// affect resolution.
	IsAnonymous bool `json:"isAnonymous,omitempty"`
}

// Info is the contact information of the responsible authority. Department
// and ContactNumber are always set.
type Info struct {
	Department     string `json:"department"`
	ContactNumber  string `json:"contactNumber"`
	Email          string `json:"email,omitempty"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
}
