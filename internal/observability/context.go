package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	// RunIDKey holds the unique identifier of one benchmark batch.
	RunIDKey contextKey = "run_id"

	// BackendKey holds the backend name for this request.
	BackendKey contextKey = "backend"

	// ModelKey holds the model name for this request.
	ModelKey contextKey = "model"

	// PromptIDKey holds the prompt being executed.
	PromptIDKey contextKey = "prompt_id"
)

// WithRunID injects the batch run ID into context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// WithBackend injects the backend name into context.
func WithBackend(ctx context.Context, backend string) context.Context {
	return context.WithValue(ctx, BackendKey, backend)
}

// WithModel injects the model name into context.
func WithModel(ctx context.Context, model string) context.Context {
	return context.WithValue(ctx, ModelKey, model)
}

// WithPromptID injects the prompt ID into context.
func WithPromptID(ctx context.Context, promptID string) context.Context {
	return context.WithValue(ctx, PromptIDKey, promptID)
}

// GetRunID extracts the batch run ID from context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// GetBackend extracts the backend name from context.
func GetBackend(ctx context.Context) string {
	if backend, ok := ctx.Value(BackendKey).(string); ok {
		return backend
	}
	return ""
}

// GetModel extracts the model name from context.
func GetModel(ctx context.Context) string {
	if model, ok := ctx.Value(ModelKey).(string); ok {
		return model
	}
	return ""
}

// GetPromptID extracts the prompt ID from context.
func GetPromptID(ctx context.Context) string {
	if promptID, ok := ctx.Value(PromptIDKey).(string); ok {
		return promptID
	}
	return ""
}

// GenerateRunID generates a unique identifier for one benchmark batch (UUID).
func GenerateRunID() string {
	return uuid.New().String()
}
