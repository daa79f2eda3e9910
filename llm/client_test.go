package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lexcodex/codeforge/telemetry"
)

type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func TestClientChat(t *testing.T) {
	client := NewClient("http://fake", "sk-test", "gpt-4")
	client.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) *http.Response {
			assert.Equal(t, "/v1/chat/completions", req.URL.Path)
			assert.Equal(t, "Bearer sk-test", req.Header.Get("Authorization"))
			var payload map[string]interface{}
			assert.NoError(t, json.NewDecoder(req.Body).Decode(&payload))
			assert.Equal(t, "gpt-4", payload["model"])
			assert.Equal(t, 0.7, payload["temperature"])
			return &http.Response{
				StatusCode: 200,
				Body: io.NopCloser(strings.NewReader(`{
					"choices":[{"message":{"role":"assistant","content":"hello"},"finish_reason":"stop"}],
					"usage":{"prompt_tokens":5,"completion_tokens":2,"total_tokens":7}
				}`)),
				Header: make(http.Header),
			}
		}),
	}

	resp, err := client.Chat(context.Background(), []Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hi"},
	}, &Options{Temperature: 0.7})
	assert.NoError(t, err)
	assert.Equal(t, "hello", resp.Text)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 7, resp.Usage["total_tokens"])
}

func TestClientChatHTTPError(t *testing.T) {
	client := NewClient("http://fake", "", "gpt-4")
	client.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: 429,
				Status:     "429 Too Many Requests",
				Body:       io.NopCloser(strings.NewReader(`rate limited`)),
				Header:     make(http.Header),
			}
		}),
	}
	_, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestClientChatAPIError(t *testing.T) {
	client := NewClient("http://fake", "", "gpt-4")
	client.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader(`{"error":{"message":"bad key","type":"auth"}}`)),
				Header:     make(http.Header),
			}
		}),
	}
	_, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bad key")
}

func TestClientChatNoChoices(t *testing.T) {
	client := NewClient("http://fake", "", "gpt-4")
	client.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader(`{"choices":[]}`)),
				Header:     make(http.Header),
			}
		}),
	}
	_, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil)
	assert.Error(t, err)
}

type stubModel struct {
	resp *Response
	err  error
}

func (s stubModel) Chat(ctx context.Context, messages []Message, options *Options) (*Response, error) {
	return s.resp, s.err
}

type sinkCollector struct {
	events []telemetry.Event
}

func (c *sinkCollector) Emit(event telemetry.Event) { c.events = append(c.events, event) }

func TestInstrumentedModelEmitsEvents(t *testing.T) {
	sink := &sinkCollector{}
	model := NewInstrumentedModel(stubModel{resp: &Response{Text: "ok", FinishReason: "stop"}}, sink, false)

	resp, err := model.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, &Options{Model: "gpt-4o"})
	assert.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Len(t, sink.events, 2)
	assert.Equal(t, telemetry.EventModelRequest, sink.events[0].Type)
	assert.Equal(t, telemetry.EventModelResponse, sink.events[1].Type)
	assert.Equal(t, "gpt-4o", sink.events[0].Metadata["model"])
}
