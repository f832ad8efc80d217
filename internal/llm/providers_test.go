package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insightJSON = `{"name":"Ada","age":36}`

// stubServer replies with status and body, and captures the last request
// body.
func stubServer(t *testing.T, status int, body string, captured *[]byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			*captured, _ = io.ReadAll(r.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After-Ms", "1")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func anthropicReply(text, stop string) string {
	b, _ := json.Marshal(map[string]any{
		"id":          "msg_01",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5-20251001",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 12, "output_tokens": 8},
	})
	return string(b)
}

func openaiReply(text, finish string) string {
	b, _ := json.Marshal(map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": text},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 8, "total_tokens": 20},
	})
	return string(b)
}

func schemaRequest() Request {
	req := UserPrompt("You are terse.", "Describe Ada.")
	req.Schema = personSchema()
	req.MaxTokens = 200
	req.Temperature = 0.7
	return req
}

func TestAnthropicGenerate(t *testing.T) {
	var body []byte
	srv := stubServer(t, http.StatusOK, anthropicReply(insightJSON, "end_turn"), &body)

	p, err := NewAnthropicProvider(ProviderConfig{APIKey: "test-key", Model: "claude-haiku", BaseURL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku-4-5-20251001", p.ModelID())

	resp, err := p.Generate(context.Background(), schemaRequest())
	require.NoError(t, err)
	assert.JSONEq(t, insightJSON, string(resp.Content))
	assert.Equal(t, 20, resp.Usage.TotalTokens)
	assert.Equal(t, StopEnd, resp.StopReason)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(body, &sent))
	assert.Equal(t, "claude-haiku-4-5-20251001", sent["model"])
	assert.EqualValues(t, 200, sent["max_tokens"])
	assert.Contains(t, string(body), "You are terse.")
}

func TestAnthropicErrors(t *testing.T) {
	t.Run("rate limit", func(t *testing.T) {
		srv := stubServer(t, http.StatusTooManyRequests, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`, nil)
		p, err := NewAnthropicProvider(ProviderConfig{APIKey: "test-key", Model: "claude-haiku", BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = p.Generate(context.Background(), schemaRequest())
		var rl *ErrRateLimit
		assert.True(t, errors.As(err, &rl), "got %v", err)
	})

	t.Run("truncated", func(t *testing.T) {
		srv := stubServer(t, http.StatusOK, anthropicReply(`{"name":"A`, "max_tokens"), nil)
		p, err := NewAnthropicProvider(ProviderConfig{APIKey: "test-key", Model: "claude-haiku", BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = p.Generate(context.Background(), schemaRequest())
		var maxTok *ErrMaxTokensExceeded
		assert.True(t, errors.As(err, &maxTok), "got %v", err)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := NewAnthropicProvider(ProviderConfig{})
		assert.Error(t, err)
	})
}

func TestOpenAIGenerate(t *testing.T) {
	var body []byte
	srv := stubServer(t, http.StatusOK, openaiReply(insightJSON, "stop"), &body)

	p, err := NewOpenAIProvider(ProviderConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), schemaRequest())
	require.NoError(t, err)
	assert.JSONEq(t, insightJSON, string(resp.Content))
	assert.Equal(t, "gpt-4o-mini", resp.Model)
	assert.Equal(t, 12, resp.Usage.InputTokens)

	var sent struct {
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
		ResponseFormat struct {
			Type       string `json:"type"`
			JSONSchema struct {
				Name string `json:"name"`
			} `json:"json_schema"`
		} `json:"response_format"`
	}
	require.NoError(t, json.Unmarshal(body, &sent))
	require.Len(t, sent.Messages, 2)
	assert.Equal(t, "system", sent.Messages[0].Role)
	assert.Equal(t, "json_schema", sent.ResponseFormat.Type)
	assert.Equal(t, "test-person", sent.ResponseFormat.JSONSchema.Name)
}

func TestOpenAIErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{
			name:   "rate limit",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"message":"slow down","type":"rate_limit_exceeded"}}`,
			check:  func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) },
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"error":{"message":"boom","type":"server_error"}}`,
			check:  func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) },
		},
		{
			name:   "schema mismatch",
			status: http.StatusOK,
			body:   openaiReply(`{"name":"Ada"}`, "stop"),
			check:  func(err error) bool { var e *ErrInvalidResponse; return errors.As(err, &e) },
		},
		{
			name:   "length",
			status: http.StatusOK,
			body:   openaiReply(`{"na`, "length"),
			check:  func(err error) bool { var e *ErrMaxTokensExceeded; return errors.As(err, &e) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := stubServer(t, tt.status, tt.body, nil)
			p, err := NewOpenAIProvider(ProviderConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
			require.NoError(t, err)

			_, err = p.Generate(context.Background(), schemaRequest())
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error type %T: %v", err, err)
		})
	}
}

func TestOpenRouterUsesOpenAIWireFormat(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.Equal(t, "Bearer sk-or", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, openaiReply(insightJSON, "stop"))
	}))
	t.Cleanup(srv.Close)

	p, err := NewOpenRouterProvider(ProviderConfig{APIKey: "sk-or", Model: "google/gemini-2.0-flash-exp", BaseURL: srv.URL + "/api/v1"})
	require.NoError(t, err)
	assert.Equal(t, "google/gemini-2.0-flash-exp", p.ModelID())

	_, err = p.Generate(context.Background(), schemaRequest())
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/chat/completions", path)

	_, err = NewOpenRouterProvider(ProviderConfig{})
	assert.Error(t, err)
}

func TestGeminiGenerate(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		reply, _ := json.Marshal(map[string]any{
			"candidates": []map[string]any{{
				"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": insightJSON}}},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]any{"promptTokenCount": 12, "candidatesTokenCount": 8, "totalTokenCount": 20},
		})
		_, _ = w.Write(reply)
	}))
	t.Cleanup(srv.Close)

	p, err := NewGeminiProvider(context.Background(), ProviderConfig{APIKey: "test-key", Model: "gemini-flash", BaseURL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", p.ModelID())

	resp, err := p.Generate(context.Background(), schemaRequest())
	require.NoError(t, err)
	assert.JSONEq(t, insightJSON, string(resp.Content))
	assert.Equal(t, 20, resp.Usage.TotalTokens)
	assert.True(t, strings.HasSuffix(path, "models/gemini-2.0-flash:generateContent"), "path %q", path)
}

func TestModelAliases(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-20250514", modelFor("claude-sonnet", anthropicAliases))
	assert.Equal(t, "gemini-2.5-pro", modelFor("gemini-2.5-pro", geminiAliases))
	assert.Equal(t, "", modelFor("", openaiAliases))
}
