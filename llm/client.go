// Package llm implements the chat-completion client used by every agent.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options tunes a single completion call.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Stop        []string
}

// Response is the normalized result of a completion call.
type Response struct {
	Text         string
	FinishReason string
	Usage        map[string]int
}

// Model is the single capability agents need from a language model.
type Model interface {
	Chat(ctx context.Context, messages []Message, options *Options) (*Response, error)
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	Endpoint string
	APIKey   string
	Model    string
	client   *http.Client
	Debug    bool
}

// NewClient builds a client for the given endpoint. An empty endpoint
// defaults to the OpenAI API.
func NewClient(endpoint, apiKey, model string) *Client {
	if endpoint == "" {
		endpoint = "https://api.openai.com"
	}
	return &Client{
		Endpoint: strings.TrimRight(endpoint, "/"),
		APIKey:   apiKey,
		Model:    model,
		client: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// SetTimeout overrides the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.getHTTPClient().Timeout = d
}

// SetDebugLogging enables or disables verbose logging for requests/responses.
func (c *Client) SetDebugLogging(enabled bool) {
	c.Debug = enabled
}

type chatChoice struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Chat issues one blocking chat completion call.
func (c *Client) Chat(ctx context.Context, messages []Message, options *Options) (*Response, error) {
	payload := map[string]interface{}{
		"model":    c.model(options),
		"messages": messages,
		"stream":   false,
	}
	c.applyOptions(payload, options)
	return c.doRequest(ctx, "/v1/chat/completions", payload)
}

func (c *Client) getHTTPClient() *http.Client {
	if c.client != nil {
		return c.client
	}
	c.client = &http.Client{Timeout: 2 * time.Minute}
	return c.client
}

func (c *Client) model(options *Options) string {
	if options != nil && options.Model != "" {
		return options.Model
	}
	if c.Model != "" {
		return c.Model
	}
	return "gpt-4"
}

func (c *Client) applyOptions(payload map[string]interface{}, options *Options) {
	if options == nil {
		return
	}
	if options.Temperature != 0 {
		payload["temperature"] = options.Temperature
	}
	if options.MaxTokens != 0 {
		payload["max_tokens"] = options.MaxTokens
	}
	if options.Stop != nil {
		payload["stop"] = options.Stop
	}
}

func (c *Client) doRequest(ctx context.Context, path string, payload interface{}) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	c.logPayload(path, body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.getHTTPClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		detail := strings.TrimSpace(string(msg))
		if detail != "" {
			return nil, fmt.Errorf("chat completion error: %s: %s", resp.Status, detail)
		}
		return nil, fmt.Errorf("chat completion error: %s", resp.Status)
	}
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	c.logResponse(path, responseBody)
	return decodeResponse(responseBody)
}

func decodeResponse(body []byte) (*Response, error) {
	var raw chatResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if raw.Error != nil {
		return nil, fmt.Errorf("chat completion error: %s: %s", raw.Error.Type, raw.Error.Message)
	}
	if len(raw.Choices) == 0 {
		return nil, fmt.Errorf("chat completion error: response has no choices")
	}
	choice := raw.Choices[0]
	return &Response{
		Text:         choice.Message.Content,
		FinishReason: choice.FinishReason,
		Usage:        normalizeUsage(raw),
	}, nil
}

func normalizeUsage(raw chatResponse) map[string]int {
	usage := make(map[string]int)
	if raw.Usage.PromptTokens > 0 {
		usage["prompt_tokens"] = raw.Usage.PromptTokens
	}
	if raw.Usage.CompletionTokens > 0 {
		usage["completion_tokens"] = raw.Usage.CompletionTokens
	}
	if raw.Usage.TotalTokens > 0 {
		usage["total_tokens"] = raw.Usage.TotalTokens
	}
	if len(usage) == 0 {
		return nil
	}
	return usage
}

func (c *Client) logPayload(path string, payload []byte) {
	if !c.Debug {
		return
	}
	log.Printf("[llm] request %s payload: %s", path, truncate(string(payload), 2048))
}

func (c *Client) logResponse(path string, resp []byte) {
	if !c.Debug {
		return
	}
	log.Printf("[llm] response %s payload: %s", path, truncate(string(resp), 2048))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
