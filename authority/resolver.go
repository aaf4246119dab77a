// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package authority

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jcodagnone/civicreport/location"
)

// LocationNormalizer turns a raw location into an address.
type LocationNormalizer interface {
	Normalize(ctx context.Context, raw string) (*location.Resolved, error)
}

// Resolver runs the resolution pipeline: normalize the location, build the
// prompt, ask the model and validate its answer. It holds no mutable state
// and is safe for concurrent use.
type Resolver struct {
	locations LocationNormalizer
	model     Model
	metrics   *Metrics
}

// NewResolver creates a Resolver. metrics may be nil.
func NewResolver(locations LocationNormalizer, model Model, metrics *Metrics) *Resolver {
	return &Resolver{
		locations: locations,
		model:     model,
		metrics:   metrics,
	}
}

// Resolve finds the authority responsible for report. Failures are always an
// *Error; stages run once, in order, and the first failure stops the pipeline.
func (r *Resolver) Resolve(ctx context.Context, report Report) (*Info, error) {
	start := time.Now()

	info, cell, err := r.resolve(ctx, report)

	r.metrics.ObserveOutcome(err)

	if cell == "" {
		cell = "-"
	}

	if err != nil {
		log.Printf("resolve: issue=%q cell=%s outcome=%s in %v: %v",
			report.IssueType, cell, KindOf(err), time.Since(start).Round(time.Millisecond), err)

		return nil, err
	}

	log.Printf("resolve: issue=%q cell=%s outcome=ok department=%q in %v",
		report.IssueType, cell, info.Department, time.Since(start).Round(time.Millisecond))

	return info, nil
}

func (r *Resolver) resolve(ctx context.Context, report Report) (*Info, string, error) {
	if strings.TrimSpace(report.IssueType) == "" || strings.TrimSpace(report.Location) == "" {
		return nil, "", &Error{Kind: KindInvalidInput, Message: msgMissingFields}
	}

	stageStart := time.Now()
	resolved, err := r.locations.Normalize(ctx, report.Location)
	r.metrics.ObserveStage("geocode", stageStart)

	if err != nil {
		if location.IsInvalidCoordinates(err) {
			return nil, "", &Error{Kind: KindInvalidInput, Message: msgInvalidCoordinates, Err: err}
		}

		return nil, location.CellOf(err), &Error{Kind: KindUnresolvable, Message: msgUnresolvable, Err: err}
	}

	prompt := BuildPrompt(CanonicalIssueType(report.IssueType), resolved.Address, report.Description)

	stageStart = time.Now()
	raw, err := r.model.Generate(ctx, prompt)
	r.metrics.ObserveStage("model", stageStart)

	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			return nil, resolved.Cell, err
		}

		return nil, resolved.Cell, &Error{Kind: KindBackendFailure, Message: msgBackendFailure, Err: err}
	}

	info, err := Validate(raw)
	if err != nil {
		if KindOf(err) == KindMalformedOutput {
			log.Printf("resolve: unparseable model output: %q", abbreviate(raw, 512))
		}

		return nil, resolved.Cell, err
	}

	return info, resolved.Cell, nil
}

// abbreviate cuts s to at most n bytes without splitting a rune.
func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}

	return s[:n] + "…"
}
