package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outputBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"output": []any{map[string]any{
			"type": "message",
			"role": "assistant",
			"content": []any{map[string]any{
				"type": "output_text",
				"text": text,
			}},
		}},
	})
	return string(b)
}

func newTestClient(t *testing.T, srv *httptest.Server, retries int, temp *float64) *Client {
	t.Helper()
	c, err := New(nil, Config{APIKey: "sk-test", BaseURL: srv.URL, MaxRetries: retries, Timeout: 5 * time.Second, Temperature: temp})
	require.NoError(t, err)
	return c
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(nil, Config{})
	require.Error(t, err)
}

func TestGenerateJSONSendsStrictSchema(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/responses", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(outputBody(`{"analysis":"ok"}`)))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 0, nil)
	out, err := c.GenerateJSON(context.Background(), "Estimate.", "student", "admission_chance", map[string]any{"type": "object"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out["analysis"])

	format := got["text"].(map[string]any)["format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	assert.Equal(t, "admission_chance", format["name"])
	assert.Equal(t, true, format["strict"])
	_, hasTemp := got["temperature"]
	assert.False(t, hasTemp)
	input := got["input"].([]any)
	assert.True(t, strings.HasPrefix(input[0].(map[string]any)["content"].(string), "ASPIRE_PROMPT_STYLE_V1"))
}

func TestGenerateJSONNoRetryByDefault(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 0, nil)
	_, err := c.GenerateJSON(context.Background(), "s", "u", "n", map[string]any{})
	var he *HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusServiceUnavailable, he.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGenerateJSONRetriesWhenConfigured(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(outputBody(`{"a":1}`)))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 1, nil)
	out, err := c.GenerateJSON(context.Background(), "s", "u", "n", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, float64(1), out["a"])
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGenerateJSONDropsRejectedTemperature(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		atomic.AddInt32(&calls, 1)
		if _, ok := body["temperature"]; ok {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"Unsupported parameter: 'temperature'"}}`))
			return
		}
		_, _ = w.Write([]byte(outputBody(`{}`)))
	}))
	defer srv.Close()

	temp := 0.2
	c := newTestClient(t, srv, 0, &temp)
	_, err := c.GenerateJSON(context.Background(), "s", "u", "n", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	_, err = c.GenerateJSON(context.Background(), "s", "u", "n", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGenerateJSONMalformedOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(outputBody(`not json`)))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 0, nil)
	_, err := c.GenerateJSON(context.Background(), "s", "u", "n", map[string]any{})
	require.Error(t, err)
}
