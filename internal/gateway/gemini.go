// Package gateway sends rendered prompts to the Gemini generateContent
// endpoint under a strict output-schema constraint and extracts the raw
// generated text from the response envelope.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"

	"go.uber.org/zap"
)

const generationTemperature = 0.7

// Client talks to the external generation endpoint. Its configuration
// (credential, allow-list, base URL) is immutable after construction so the
// pipeline stays testable with fakes.
type Client struct {
	apiKey          string
	baseURL         string
	allowedModels   []string
	maxOutputTokens int
	httpClient      *http.Client
	logger          *zap.Logger
}

// NewClient creates a gateway client from the Gemini configuration.
func NewClient(cfg config.GeminiConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Client{
		apiKey:          cfg.APIKey,
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		allowedModels:   cfg.AllowedModels,
		maxOutputTokens: cfg.MaxOutputTokens,
		httpClient:      &http.Client{Timeout: timeout},
		logger:          logger,
	}
}

// SanitizeModel normalizes a model identifier to the endpoint's naming
// convention and enforces the allow-list. An empty name selects the first
// allow-listed model; anything not on the list is rejected. This is a
// security boundary preventing arbitrary model invocation.
func (c *Client) SanitizeModel(name string) (string, error) {
	if len(c.allowedModels) == 0 {
		return "", domain.NewModelNotAllowedError(name)
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return c.allowedModels[0], nil
	}
	normalized := strings.ToLower(strings.TrimPrefix(trimmed, "models/"))
	for _, allowed := range c.allowedModels {
		if normalized == strings.ToLower(allowed) {
			return allowed, nil
		}
	}
	return "", domain.NewModelNotAllowedError(name)
}

// Gemini generateContent wire types.
// Envelope per the provider contract: candidates[0].content.parts holds the
// generated text; promptFeedback.blockReason signals a content-safety block.

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64                `json:"temperature"`
	MaxOutputTokens  int                    `json:"maxOutputTokens,omitempty"`
	ResponseMIMEType string                 `json:"responseMimeType"`
	ResponseSchema   map[string]interface{} `json:"responseSchema"`
}

type generateResponse struct {
	Candidates     []candidate     `json:"candidates"`
	PromptFeedback *promptFeedback `json:"promptFeedback,omitempty"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type promptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// Generate sends a single-turn request for an already sanitized model and
// returns the first text-bearing part of the model's output. It makes
// exactly one outbound call and never retries; retry policy belongs to the
// caller.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", domain.NewGatewayNotConfiguredError()
	}

	reqBody := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:      generationTemperature,
			MaxOutputTokens:  c.maxOutputTokens,
			ResponseMIMEType: "application/json",
			ResponseSchema:   questionListSchema(),
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", domain.NewInternalError("failed to encode generation request", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", domain.NewInternalError("failed to build generation request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	c.logger.Debug("Calling generation endpoint",
		zap.String("model", model),
		zap.Int("prompt_chars", len(prompt)),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", domain.NewError(domain.CodeGatewayError, "Generation endpoint call failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.NewError(domain.CodeGatewayError, "Failed to read generation response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Generation endpoint returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("model", model),
		)
		return "", domain.NewGatewayError(resp.StatusCode, string(body))
	}

	var envelope generateResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", domain.NewError(domain.CodeGatewayError, "Generation response envelope is not valid JSON", err)
	}

	// A content-safety block is a legitimate business outcome, distinct from
	// a transport error.
	if envelope.PromptFeedback != nil && envelope.PromptFeedback.BlockReason != "" {
		return "", domain.NewContentBlockedError(envelope.PromptFeedback.BlockReason)
	}

	for _, cand := range envelope.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return p.Text, nil
			}
		}
	}
	return "", domain.NewEmptyGatewayResponseError()
}

var _ domain.TextGenerator = (*Client)(nil)
