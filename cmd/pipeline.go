// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/jcodagnone/civicreport/authority"
	"github.com/jcodagnone/civicreport/location"
	"github.com/jcodagnone/civicreport/utils/httputils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// pipelineOptions holds the configuration shared by every command that
// resolves reports.
type pipelineOptions struct {
	Model             string
	NominatimURL      string
	AppName           string
	Timeout           time.Duration
	StrictCoordinates bool
	EnableHTTPTrace   bool
}

var pipelineOpts = &pipelineOptions{}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func addPipelineFlags(c *cobra.Command) {
	c.Flags().StringVar(
		&pipelineOpts.Model,
		"model",
		getEnv("GEMINI_MODEL", authority.DefaultModel),
		"Gemini model identifier",
	)
	c.Flags().StringVar(
		&pipelineOpts.NominatimURL,
		"nominatim-url",
		getEnv("NOMINATIM_URL", location.NominatimBaseURL),
		"Base URL of the Nominatim instance used for reverse geocoding",
	)
	c.Flags().StringVar(
		&pipelineOpts.AppName,
		"app-name",
		getEnv("APP_NAME", location.DefaultUserAgent),
		"Application name sent as User-Agent to the geocoding service",
	)
	c.Flags().DurationVar(
		&pipelineOpts.Timeout,
		"timeout",
		10*time.Second,
		"Timeout of reverse geocoding requests",
	)
	c.Flags().BoolVar(
		&pipelineOpts.StrictCoordinates,
		"strict-coordinates",
		false,
		"Reject numeric pairs outside the valid ranges instead of treating them as addresses",
	)
	c.Flags().BoolVar(
		&pipelineOpts.EnableHTTPTrace,
		"trace-http",
		false,
		"Display outbound HTTP requests-responses",
	)
}

// newResolver wires the resolution pipeline from the options. reg may be nil.
func newResolver(ctx context.Context, opts *pipelineOptions, reg prometheus.Registerer) (*authority.Resolver, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Println("GEMINI_API_KEY is not set. Attempting to retrieve via ADC...")

		var err error

		apiKey, err = getAPIKeyFromADC(ctx)
		if err != nil {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set and ADC failed: %w", err)
		}

		log.Println("✅ Successfully retrieved Gemini API Key via ADC")
	}

	var trace io.Writer
	if opts.EnableHTTPTrace {
		trace = os.Stderr
	}

	geoClient := httputils.NewClient(httputils.ClientOptions{
		Timeout: opts.Timeout,
		Headers: map[string]string{
			"User-Agent":      opts.AppName,
			"Accept-Language": "en",
		},
		Trace: trace,
	})

	normalizer := location.NewNormalizer(location.NewNominatimGeocoder(opts.NominatimURL, geoClient))
	normalizer.Strict = opts.StrictCoordinates

	modelConfig := authority.GeminiConfig{
		APIKey: apiKey,
		Model:  opts.Model,
	}
	if opts.EnableHTTPTrace {
		modelConfig.HTTPClient = httputils.NewClient(httputils.ClientOptions{Trace: trace})
	}

	model, err := authority.NewGeminiModel(ctx, modelConfig)
	if err != nil {
		return nil, err
	}

	var metrics *authority.Metrics
	if reg != nil {
		metrics = authority.NewMetrics(reg)
	}

	fmt.Fprintf(os.Stderr, "📍 Geocoding: %s (as %q)\n", opts.NominatimURL, opts.AppName)
	fmt.Fprintf(os.Stderr, "🤖 Model: %s\n", model.Name())

	return authority.NewResolver(normalizer, model, metrics), nil
}
