// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jcodagnone/civicreport/spatial"
)

const (
	// NominatimBaseURL is the public OpenStreetMap Nominatim endpoint.
	NominatimBaseURL = "https://nominatim.openstreetmap.org"
	// DefaultUserAgent identifies us when APP_NAME is not set; Nominatim's
	// usage policy rejects anonymous clients.
	DefaultUserAgent = "CivicIssueReporter/1.0"
)

// NominatimGeocoder resolves points through the Nominatim reverse endpoint.
// The http.Client is expected to carry the identification headers (see
// httputils.NewClient).
type NominatimGeocoder struct {
	baseURL    string
	httpClient *http.Client
}

// NewNominatimGeocoder creates a geocoder; an empty baseURL means the public
// instance.
func NewNominatimGeocoder(baseURL string, httpClient *http.Client) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = NominatimBaseURL
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &NominatimGeocoder{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// Reverse implements ReverseGeocoder.
func (g *NominatimGeocoder) Reverse(ctx context.Context, p spatial.Point) (string, error) {
	params := url.Values{}
	params.Set("lat", p.LatString())
	params.Set("lon", p.LngString())
	params.Set("format", "jsonv2")
	params.Set("accept-language", "en")
	params.Set("zoom", "18")
	params.Set("addressdetails", "0")

	reqURL := g.baseURL + "/reverse?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating reverse geocoding request: %w", stripURL(err))
	}

	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", &Error{
			Type:    ErrorTypeNetworkError,
			Message: "reverse geocoding request failed",
			Err:     stripURL(err),
		}
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

		return "", ClassifyHTTPError(resp.StatusCode)
	}

	var nr nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return "", &Error{
			Type:    ErrorTypeUnknown,
			Message: "decoding reverse geocoding response",
			Err:     err,
		}
	}

	address := strings.TrimSpace(nr.DisplayName)
	if address == "" {
		msg := "no display address"
		if nr.Error != "" {
			msg += ": " + nr.Error
		}

		return "", &Error{
			Type:    ErrorTypeNoAddress,
			Message: msg,
		}
	}

	return address, nil
}

// stripURL drops the request URL from net/http errors; its query carries the
// coordinates, which must stay out of logs.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s %s: %w", urlErr.Op, redactedURL, urlErr.Err)
	}

	return err
}

const redactedURL = "/reverse?<redacted>"
