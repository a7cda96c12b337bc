package question

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// ErrRateLimited marks an enrichment call rejected by the upstream quota.
// Callers fall back to deterministic questions without retrying, but the
// condition is counted separately from other failures.
var ErrRateLimited = errors.New("enrichment rate limited")

// Client calls the Anthropic Messages API to phrase questions.
type Client struct {
	apiKey     string
	model      string
	maxContext int
	httpClient *http.Client
}

func NewClient(apiKey, model string, maxContext int) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      model,
		maxContext: maxContext,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (c *Client) Model() string { return c.model }

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateQuestions asks Claude for one question per placeholder, in one
// batch. The response must contain exactly one non-empty question per
// input; anything else is an error and the caller uses the deterministic
// text for the whole batch.
func (c *Client) GenerateQuestions(ctx context.Context, placeholders []string, docContext string) (map[string]string, error) {
	prompt := BuildQuestionPrompt(placeholders, docContext, c.maxContext)
	reqBody := anthropicRequest{
		Model:     c.model,
		MaxTokens: 2048,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.anthropic.com/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("claude api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("claude api status 429: %w", ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("claude api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return nil, fmt.Errorf("claude error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
	}
	if len(apiResp.Content) == 0 {
		return nil, fmt.Errorf("empty response from claude")
	}

	return parseQuestionList(apiResp.Content[0].Text, placeholders)
}

// parseQuestionList decodes the model's JSON array and keys it by
// placeholder. Count mismatches and blank entries reject the whole batch.
func parseQuestionList(text string, placeholders []string) (map[string]string, error) {
	var questions []string
	if err := json.Unmarshal([]byte(stripCodeBlock(text)), &questions); err != nil {
		return nil, fmt.Errorf("parse questions json: %w (raw: %s)", err, truncate(text, 200))
	}
	if len(questions) != len(placeholders) {
		return nil, fmt.Errorf("expected %d questions, got %d", len(placeholders), len(questions))
	}
	out := make(map[string]string, len(placeholders))
	for i, p := range placeholders {
		q := strings.TrimSpace(questions[i])
		if q == "" {
			return nil, fmt.Errorf("blank question for placeholder %q", p)
		}
		out[p] = q
	}
	return out, nil
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
