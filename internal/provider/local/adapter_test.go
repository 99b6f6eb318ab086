package local_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/promptbench/internal/domain"
	"github.com/davidbz/promptbench/internal/provider/local"
)

func newProvider(t *testing.T, baseURL string) *local.Provider {
	t.Helper()
	provider, err := local.NewProvider(local.Config{
		BaseURL:      baseURL,
		Model:        "gpt-oss-20b",
		Timeout:      5,
		ProbeTimeout: 1,
	})
	require.NoError(t, err)
	return provider
}

func completionBody(content string, withUsage bool) string {
	resp := map[string]any{
		"id":    "cmpl-1",
		"model": "gpt-oss-20b",
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	if withUsage {
		resp["usage"] = map[string]any{
			"prompt_tokens":     12,
			"completion_tokens": 34,
			"total_tokens":      46,
		}
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestComplete_ExactUsage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/chat/completions", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "gpt-oss-20b", req["model"])
		require.Equal(t, false, req["stream"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("the answer", true)))
	}))
	defer server.Close()

	provider := newProvider(t, server.URL)

	resp, err := provider.Complete(context.Background(), &domain.CompletionRequest{
		Messages: []domain.Message{{Role: "user", Content: "the question"}},
	})

	require.NoError(t, err)
	require.Equal(t, "the answer", resp.Content)
	require.Equal(t, "local", resp.Backend)
	require.Equal(t, 12, resp.Usage.PromptTokens)
	require.Equal(t, 34, resp.Usage.CompletionTokens)
	require.Equal(t, domain.TokenCountExact, resp.Usage.Mode)
}

func TestComplete_MissingUsageFallsBackToEstimate(t *testing.T) {
	content := strings.Repeat("word ", 20) // 100 chars

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody(content, false)))
	}))
	defer server.Close()

	provider := newProvider(t, server.URL)

	resp, err := provider.Complete(context.Background(), &domain.CompletionRequest{
		Messages: []domain.Message{{Role: "user", Content: "12345678"}}, // 8 chars
	})

	require.NoError(t, err)
	require.Equal(t, domain.TokenCountEstimated, resp.Usage.Mode)
	require.Equal(t, 2, resp.Usage.PromptTokens)
	require.Equal(t, 25, resp.Usage.CompletionTokens)
	require.Equal(t, 27, resp.Usage.TotalTokens)
}

func TestComplete_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider := newProvider(t, server.URL)

	_, err := provider.Complete(context.Background(), &domain.CompletionRequest{
		Messages: []domain.Message{{Role: "user", Content: "hi"}},
	})

	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
	require.Contains(t, err.Error(), "model not loaded")
}

func TestComplete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"cmpl-1","model":"m","choices":[]}`))
	}))
	defer server.Close()

	provider := newProvider(t, server.URL)

	_, err := provider.Complete(context.Background(), &domain.CompletionRequest{
		Messages: []domain.Message{{Role: "user", Content: "hi"}},
	})

	require.Error(t, err)
	require.Contains(t, err.Error(), "no response choices")
}

func TestPing(t *testing.T) {
	t.Run("healthy server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/models", r.URL.Path)
			_, _ = w.Write([]byte(`{"data":[]}`))
		}))
		defer server.Close()

		provider := newProvider(t, server.URL)
		require.NoError(t, provider.Ping(context.Background()))
	})

	t.Run("unreachable server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close() // shut down before probing

		provider := newProvider(t, server.URL)
		err := provider.Ping(context.Background())
		require.ErrorIs(t, err, domain.ErrConnectivity)
	})

	t.Run("error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		provider := newProvider(t, server.URL)
		err := provider.Ping(context.Background())
		require.ErrorIs(t, err, domain.ErrConnectivity)
	})
}
