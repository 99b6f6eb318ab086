// Package runner drives one backend through the full prompt set, strictly
// sequentially, and produces one ResponseRecord per prompt. A single failed
// prompt never aborts the batch; a failed connectivity probe aborts it
// before any prompt is sent.
package runner

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/davidbz/promptbench/internal/domain"
	"github.com/davidbz/promptbench/internal/observability"
)

// Options configure one batch execution.
type Options struct {
	// Model is the model identifier requested from the backend.
	Model string
	// MaxTokens and Temperature apply to every request in the batch.
	MaxTokens   int
	Temperature float64
	// Delay throttles sequential requests.
	Delay time.Duration
	// Probe runs the backend's connectivity probe before the first prompt
	// and fails the whole batch on error.
	Probe bool
}

// Runner executes a prompt batch against one backend.
type Runner struct {
	provider domain.Provider
	costCalc domain.CostCalculator
	opts     Options
}

// New creates a batch runner for one backend.
func New(provider domain.Provider, costCalc domain.CostCalculator, opts Options) *Runner {
	return &Runner{
		provider: provider,
		costCalc: costCalc,
		opts:     opts,
	}
}

// Run executes every prompt in order and returns the full record collection,
// error markers included. The returned slice always has one entry per prompt
// unless the probe fails or the context is cancelled.
func (r *Runner) Run(ctx context.Context, prompts []domain.Prompt) ([]domain.ResponseRecord, error) {
	ctx = observability.WithBackend(ctx, r.provider.Name())
	ctx = observability.WithModel(ctx, r.opts.Model)
	logger := observability.FromContext(ctx)

	if r.opts.Probe {
		if err := r.provider.Ping(ctx); err != nil {
			logger.Error("connectivity probe failed", observability.Error(err))
			return nil, fmt.Errorf("aborting batch: %w", err)
		}
		logger.Info("connectivity probe succeeded")
	}

	records := make([]domain.ResponseRecord, 0, len(prompts))

	for i, prompt := range prompts {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		promptCtx := observability.WithPromptID(ctx, prompt.ID)
		promptLogger := observability.FromContext(promptCtx)
		promptLogger.Info("processing prompt",
			observability.Int("index", i+1),
			observability.Int("total", len(prompts)),
			observability.String("category", prompt.Category),
		)

		record := r.execute(promptCtx, prompt)
		records = append(records, record)

		if record.Failed() {
			promptLogger.Warn("prompt failed",
				observability.String("error", record.Error),
				observability.Float64("latency_seconds", record.LatencySeconds),
			)
		} else {
			promptLogger.Info("prompt succeeded",
				observability.Float64("latency_seconds", record.LatencySeconds),
				observability.Int("total_tokens", record.TotalTokens),
				observability.Float64("cost_usd", record.CostUSD),
			)
		}

		if r.opts.Delay > 0 && i < len(prompts)-1 {
			time.Sleep(r.opts.Delay)
		}
	}

	return records, nil
}

// execute sends one prompt and converts the outcome into a ResponseRecord.
// Failures become error-marker records with the measured latency and zero
// token and cost figures.
func (r *Runner) execute(ctx context.Context, prompt domain.Prompt) domain.ResponseRecord {
	req := &domain.CompletionRequest{
		Model:       r.opts.Model,
		Messages:    []domain.Message{{Role: prompt.Role, Content: prompt.Content}},
		MaxTokens:   r.opts.MaxTokens,
		Temperature: r.opts.Temperature,
	}

	start := time.Now()
	resp, err := r.provider.Complete(ctx, req)
	latency := time.Since(start).Seconds()

	if err != nil {
		return domain.ResponseRecord{
			PromptID:       prompt.ID,
			Model:          r.opts.Model,
			Response:       "ERROR: " + err.Error(),
			LatencySeconds: latency,
			TokenCount:     domain.TokenCountEstimated,
			Timestamp:      time.Now(),
			Category:       prompt.Category,
			Error:          err.Error(),
		}
	}

	cost, _ := r.costCalc.Calculate(ctx, resp.Model, resp.Usage)

	return domain.ResponseRecord{
		PromptID:       prompt.ID,
		Model:          resp.Model,
		Response:       resp.Content,
		LatencySeconds: latency,
		InputTokens:    resp.Usage.PromptTokens,
		OutputTokens:   resp.Usage.CompletionTokens,
		TotalTokens:    resp.Usage.TotalTokens,
		TokenCount:     resp.Usage.Mode,
		CostUSD:        cost,
		Timestamp:      time.Now(),
		ResponseLength: utf8.RuneCountInString(resp.Content),
		WordsCount:     domain.CountWords(resp.Content),
		Category:       prompt.Category,
	}
}
