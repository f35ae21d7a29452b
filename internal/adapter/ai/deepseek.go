package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrEmptyCompletion is returned when the provider answers without content.
var ErrEmptyCompletion = errors.New("completion has no content")

// DeepSeekConfig holds the configuration for an OpenAI-compatible chat
// completions endpoint.
type DeepSeekConfig struct {
	URL         string        // full chat completions URL
	Model       string        // e.g. deepseek-chat
	Token       string        // Bearer token
	Temperature float64       // defaults to 0.7
	MaxTokens   int           // defaults to 2000
	Timeout     time.Duration // zero disables the timeout
}

// DeepSeekProvider implements port.AIProvider against the DeepSeek
// chat completions API.
type DeepSeekProvider struct {
	cfg        DeepSeekConfig
	httpClient *http.Client
}

// NewDeepSeekProvider creates a new provider. Generation latency can be large,
// so a zero Timeout leaves requests unbounded.
func NewDeepSeekProvider(cfg DeepSeekConfig) *DeepSeekProvider {
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2000
	}
	return &DeepSeekProvider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// ModelName returns the chat model identifier.
func (d *DeepSeekProvider) ModelName() string {
	return d.cfg.Model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Chat sends one system and one user message and returns
// choices[0].message.content.
func (d *DeepSeekProvider) Chat(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	payload := chatRequest{
		Model: d.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: d.cfg.Temperature,
		MaxTokens:   d.cfg.MaxTokens,
	}

	body, err := d.post(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("deepseek chat: %w", err)
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("deepseek chat decode: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("deepseek chat: %w", ErrEmptyCompletion)
	}

	return resp.Choices[0].Message.Content, nil
}

// post sends the JSON payload with the bearer token and returns the body of
// a 200 response.
func (d *DeepSeekProvider) post(ctx context.Context, payload any) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.URL, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if d.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+d.cfg.Token)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("deepseek API error (%d): %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
