// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package authority

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Model sends a prompt to a generative-language backend and returns its raw
// text answer.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiConfig configures NewGeminiModel.
type GeminiConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint (tests, proxies).
	BaseURL string
	// HTTPClient carries tracing round trippers; nil uses the SDK default.
	HTTPClient *http.Client
}

// GeminiModel is a Model backed by the Gemini API.
type GeminiModel struct {
	client *genai.Client
	model  string
}

// NewGeminiModel creates the Gemini client. The client is safe for concurrent
// use and is meant to be shared by all requests.
func NewGeminiModel(ctx context.Context, cfg GeminiConfig) (*GeminiModel, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiModel{
		client: client,
		model:  cfg.Model,
	}, nil
}

// Name returns the configured model identifier.
func (m *GeminiModel) Name() string {
	return m.model
}

// Generate implements Model.
func (m *GeminiModel) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", &Error{
			Kind:    KindBackendFailure,
			Message: msgBackendFailure,
			Err:     fmt.Errorf("gemini %s: %w", m.model, err),
		}
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", &Error{
			Kind:    KindMalformedOutput,
			Message: msgMalformedOutput,
			Err:     fmt.Errorf("gemini %s: empty answer: %s", m.model, emptyReason(resp)),
		}
	}

	return text, nil
}

// emptyReason tells a blocked prompt or a stopped candidate apart from an
// answer that simply carried no text.
func emptyReason(resp *genai.GenerateContentResponse) string {
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		if fb.BlockReasonMessage != "" {
			return fmt.Sprintf("prompt blocked (%s): %s", fb.BlockReason, fb.BlockReasonMessage)
		}

		return fmt.Sprintf("prompt blocked (%s)", fb.BlockReason)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "no candidates"
	}

	c := resp.Candidates[0]
	if c.FinishMessage != "" {
		return fmt.Sprintf("finish reason %s: %s", c.FinishReason, c.FinishMessage)
	}

	return fmt.Sprintf("finish reason %s", c.FinishReason)
}
