// Package ai implements the Gemini-backed document tools. Each tool
// extracts the document's text layer, sends it with a task prompt to the
// Gemini API, and wraps the response in the same artifact contract the PDF
// tools use. Without an API key every handler reports a missing dependency
// instead of silently degrading.
package ai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/blinkpdf/blinkpdf/internal/config"
	"github.com/blinkpdf/blinkpdf/internal/engine"
)

// Client wraps the genai SDK for single-shot text generation.
type Client struct {
	client    *genai.Client
	model     string
	maxTokens int32
	temp      *float32
	logger    zerolog.Logger
}

// NewClient builds a Gemini client from the AI configuration. When no API
// key is configured it returns a nil client; handlers treat that as a
// missing dependency per request.
func NewClient(ctx context.Context, cfg config.AIConfig, logger zerolog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	c := &Client{
		client:    gc,
		model:     cfg.Model,
		maxTokens: int32(cfg.MaxTokens),
		logger:    logger,
	}
	if cfg.Temperature != 0 {
		t := float32(cfg.Temperature)
		c.temp = &t
	}
	return c, nil
}

// Generate sends one prompt and returns the response text.
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: c.maxTokens,
		Temperature:     c.temp,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("model returned an empty response")
	}
	return text, nil
}

// errNoKey is what every AI handler returns when Gemini is not configured.
func errNoKey() error {
	return fmt.Errorf("GEMINI_API_KEY is not configured: %w", engine.ErrMissingDependency)
}
