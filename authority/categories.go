// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package authority

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// IssueCategories are the issue types offered by the report form.
var IssueCategories = []string{
	"Broken Streetlight",
	"Pothole",
	"Garbage Disposal",
	"Road Maintenance",
	"Public Utility",
	"Other",
}

var foldedCategories = func() map[string]string {
	m := make(map[string]string, len(IssueCategories))
	for _, c := range IssueCategories {
		m[lowerASCIIFolding(c)] = c
	}

	return m
}()

// lowerASCIIFolding removes accents, lowercases, collapses inner whitespace
// and trims.
func lowerASCIIFolding(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.ToLower(s),
	)

	return strings.Join(strings.Fields(s), " ")
}

// CanonicalIssueType returns the form category matching issueType ignoring
// case, accents and spacing. Unknown issue types are returned trimmed.
func CanonicalIssueType(issueType string) string {
	if c, ok := foldedCategories[lowerASCIIFolding(issueType)]; ok {
		return c
	}

	return strings.TrimSpace(issueType)
}
