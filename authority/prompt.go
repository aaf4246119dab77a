// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package authority

import (
	"strings"
)

const promptSchema = `{
  "department": "string",
  "contactNumber": "string",
  "email": "string",
  "additionalInfo": "string"
}`

// BuildPrompt composes the instruction sent to the model. It is a pure
// function: identical arguments yield identical prompts.
//
// Validate relies on the schema at the end of the prompt.
func BuildPrompt(issueType, address, description string) string {
	var sb strings.Builder

	sb.WriteString("You are an AI assistant helping users report civic issues to the correct local authorities.\n")
	sb.WriteString("A user has reported an issue with the following details:\n")
	sb.WriteString("- **Issue Type:** " + issueType + "\n")
	sb.WriteString("- **Location:** " + address + "\n")
	sb.WriteString("- **Description:** " + description + "\n")
	sb.WriteString("### Task:\n")
	sb.WriteString("- Identify the **official government department** responsible for handling this issue in this locality.\n")
	sb.WriteString("- Provide **verified** contact details (phone, email) sourced only from local **municipal or government websites**.\n")
	sb.WriteString("- Do not invent data. If official sources are unavailable, clearly state that **you couldn't find verified data** ")
	sb.WriteString("and leave \"department\" and \"contactNumber\" empty.\n")
	sb.WriteString("### Expected JSON Response:\n")
	sb.WriteString("Reply with a single JSON object, without markdown, using exactly these keys and string values:\n")
	sb.WriteString(promptSchema)

	return sb.String()
}
