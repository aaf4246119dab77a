// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package authority

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Validate parses the raw model answer into an Info. The answer must be a
// single JSON object with string values; department and contactNumber must be
// non-blank.
func Validate(raw string) (*Info, error) {
	body := stripCodeFence(raw)
	if !strings.HasPrefix(body, "{") {
		return nil, malformed(errors.New("expected a JSON object"))
	}

	dec := json.NewDecoder(strings.NewReader(body))

	var info Info
	if err := dec.Decode(&info); err != nil {
		return nil, malformed(err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed(errors.New("unexpected data after the JSON object"))
	}

	if strings.TrimSpace(info.Department) == "" || strings.TrimSpace(info.ContactNumber) == "" {
		return nil, &Error{
			Kind:    KindNoVerifiedAuthority,
			Message: msgNoVerified,
		}
	}

	return &info, nil
}

func malformed(err error) *Error {
	return &Error{
		Kind:    KindMalformedOutput,
		Message: msgMalformedOutput,
		Err:     fmt.Errorf("parsing model output: %w", err),
	}
}

// stripCodeFence removes surrounding whitespace and one ``` fence, with or
// without a language tag, that models add despite being asked not to.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}

	s = strings.TrimSuffix(s[3:], "```")

	// drop the info string (e.g. "json") up to the first newline
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.ContainsAny(s[:i], "{[") {
		s = s[i+1:]
	}

	return strings.TrimSpace(s)
}
