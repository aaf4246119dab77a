// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package authority

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptIsDeterministic(t *testing.T) {
	a := BuildPrompt("Pothole", "Broadway, New York", "Deep hole in the right lane")
	b := BuildPrompt("Pothole", "Broadway, New York", "Deep hole in the right lane")

	assert.Equal(t, a, b)
}

func TestBuildPromptContents(t *testing.T) {
	p := BuildPrompt("Broken Streetlight", "Rambla 123, Montevideo", "Light out since Monday")

	for _, want := range []string{
		"- **Issue Type:** Broken Streetlight\n",
		"- **Location:** Rambla 123, Montevideo\n",
		"- **Description:** Light out since Monday\n",
		"official government department",
		"municipal or government websites",
		"you couldn't find verified data",
		`"department": "string"`,
		`"contactNumber": "string"`,
		`"email": "string"`,
		`"additionalInfo": "string"`,
	} {
		assert.Contains(t, p, want)
	}

	assert.True(t, strings.HasSuffix(p, "}"), "schema must close the prompt")
}

func TestBuildPromptEmptyDescription(t *testing.T) {
	p := BuildPrompt("Other", "Somewhere", "")

	assert.Contains(t, p, "- **Description:** \n")
}
