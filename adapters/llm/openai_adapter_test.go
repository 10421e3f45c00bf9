package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/khoahotran/credably/internal/config"
	"github.com/khoahotran/credably/pkg/logger"
)

func completionServer(t *testing.T, content string, gotBody *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if gotBody != nil {
			*gotBody = string(body)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
}

func newAdapter(t *testing.T, baseURL string) *openAIAdapter {
	t.Helper()
	var cfg config.Config
	cfg.OpenAI.APIKey = "test-key"
	cfg.OpenAI.BaseURL = baseURL
	cfg.OpenAI.Model = "gpt-4o-mini"
	svc, err := NewOpenAIAdapter(cfg, logger.NewNop())
	require.NoError(t, err)
	return svc.(*openAIAdapter)
}

func TestCompleteJSONRequestsJSONObject(t *testing.T) {
	var body string
	srv := completionServer(t, `{"skills":[{"name":"Go"}]}`, &body)
	defer srv.Close()

	out, err := newAdapter(t, srv.URL).CompleteJSON(context.Background(), "system text", "user text")
	require.NoError(t, err)
	assert.Equal(t, "Go", gjson.Get(out, "skills.0.name").String())

	assert.Equal(t, "json_object", gjson.Get(body, "response_format.type").String())
	assert.Equal(t, "gpt-4o-mini", gjson.Get(body, "model").String())
	assert.Equal(t, "system", gjson.Get(body, "messages.0.role").String())
	assert.Equal(t, "user text", gjson.Get(body, "messages.1.content").String())
}

func TestCompleteJSONStripsCodeFence(t *testing.T) {
	srv := completionServer(t, "```json\n{\"ok\":true}\n```", nil)
	defer srv.Close()

	out, err := newAdapter(t, srv.URL).CompleteJSON(context.Background(), "s", "p")
	require.NoError(t, err)
	assert.True(t, gjson.Get(out, "ok").Bool())
}

func TestCompleteJSONRejectsProse(t *testing.T) {
	srv := completionServer(t, "Sure! Here are your skills.", nil)
	defer srv.Close()

	_, err := newAdapter(t, srv.URL).CompleteJSON(context.Background(), "s", "p")
	assert.ErrorContains(t, err, "malformed JSON")
}

func TestNewOpenAIAdapterNeedsKey(t *testing.T) {
	_, err := NewOpenAIAdapter(config.Config{}, logger.NewNop())
	assert.Error(t, err)
}
