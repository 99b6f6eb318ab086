// Package local provides an adapter for OpenAI-compatible local inference
// servers such as LM Studio or Ollama. It implements the domain.Provider
// interface over a plain HTTP client and performs a connectivity probe
// before a batch is started, since a dead local server would fail every
// subsequent prompt.
package local

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/davidbz/promptbench/internal/domain"
	"github.com/davidbz/promptbench/internal/observability"
)

const providerName = "local"

// Provider implements the domain.Provider interface for local inference.
type Provider struct {
	baseURL      string
	model        string
	httpClient   *http.Client
	probeTimeout time.Duration
}

// NewProvider creates a new local provider.
func NewProvider(config Config) (*Provider, error) {
	if config.BaseURL == "" {
		return nil, errors.New("local base URL is required")
	}

	return &Provider{
		baseURL: config.BaseURL,
		model:   config.Model,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
		probeTimeout: time.Duration(config.ProbeTimeout) * time.Second,
	}, nil
}

// Wire structures for the OpenAI-compatible chat completions endpoint.
type chatRequest struct {
	Model       string           `json:"model"`
	Messages    []domain.Message `json:"messages"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
	Temperature float64          `json:"temperature,omitempty"`
	Stream      bool             `json:"stream"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	// Usage is optional: local servers may or may not report token counts.
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete sends a non-streaming completion request to the local server.
func (p *Provider) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling local inference server")

	model := req.Model
	if model == "" {
		model = p.model
	}

	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Stream:      false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.baseURL+"/v1/chat/completions",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("local server returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&chatResp); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	if len(chatResp.Choices) == 0 {
		return nil, errors.New("no response choices found in API response")
	}

	content := chatResp.Choices[0].Message.Content
	usage := resolveUsage(&chatResp, req, content)

	logger.Debug("local completion succeeded",
		observability.Int("prompt_tokens", usage.PromptTokens),
		observability.Int("completion_tokens", usage.CompletionTokens),
		observability.String("token_count", string(usage.Mode)),
	)

	return &domain.CompletionResponse{
		ID:         chatResp.ID,
		Model:      model,
		Backend:    providerName,
		Content:    content,
		Usage:      usage,
		FinishTime: time.Now(),
	}, nil
}

// resolveUsage prefers exact counts from the server and falls back to the
// chars/4 estimate when usage is absent. The mode tag is fixed here, at
// parse time.
func resolveUsage(resp *chatResponse, req *domain.CompletionRequest, content string) domain.Usage {
	if resp.Usage != nil {
		return domain.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
			Mode:             domain.TokenCountExact,
		}
	}

	promptText := ""
	for _, msg := range req.Messages {
		promptText += msg.Content
	}
	promptTokens := domain.EstimateTokens(promptText)
	completionTokens := domain.EstimateTokens(content)

	return domain.Usage{
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
		Mode:             domain.TokenCountEstimated,
	}
}

// Ping probes the server's models endpoint with a short timeout. A failure
// wraps domain.ErrConnectivity so the runner can fail fast.
func (p *Provider) Ping(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, p.probeTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(probeCtx, http.MethodGet, p.baseURL+"/v1/models", nil)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConnectivity, err)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConnectivity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: models endpoint returned status %d", domain.ErrConnectivity, resp.StatusCode)
	}

	return nil
}

// Name returns the backend identifier.
func (p *Provider) Name() string {
	return providerName
}

// Model returns the configured default model.
func (p *Provider) Model() string {
	return p.model
}
