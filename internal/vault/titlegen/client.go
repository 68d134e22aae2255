// Package titlegen wraps the external text-completion service used to
// produce short descriptive titles for saved prompts. Callers treat every
// error as "no title"; the package never retries.
package titlegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrUnavailable reports a transport failure, timeout or non-200 reply
	// from the completion service.
	ErrUnavailable = errors.New("titlegen: completion service unavailable")

	// ErrEmptyResult reports a reply that cleaned down to nothing.
	ErrEmptyResult = errors.New("titlegen: empty result")
)

// DefaultTimeout caps how long a single completion call may block.
const DefaultTimeout = 10 * time.Second

const systemInstruction = "Generate a short, descriptive title for the prompt the user sends. " +
	"The title must be 5 to 10 words and at most 100 characters. " +
	"Respond with the title only: no quotation marks, no lead-in phrases."

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// NewClient creates a title-generation client with the default timeout.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		APIKey:  apiKey,
		Model:   model,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateTitle asks the completion service for a title describing prompt
// and returns the cleaned result.
func (c *Client) GenerateTitle(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   60,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("titlegen: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("titlegen: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrUnavailable
	}

	var body completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", ErrUnavailable
	}
	if len(body.Choices) == 0 {
		return "", ErrEmptyResult
	}

	title := CleanTitle(body.Choices[0].Message.Content)
	if title == "" {
		return "", ErrEmptyResult
	}
	return title, nil
}
