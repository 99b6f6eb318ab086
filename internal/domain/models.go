package domain

import "time"

// Prompt categories shipped with the benchmark data set.
const (
	CategoryInstruction = "instruction"
	CategoryReasoning   = "reasoning"
	CategoryCreative    = "creative"
	CategoryCoding      = "coding"
)

// Categories returns the known prompt categories in canonical order.
func Categories() []string {
	return []string{CategoryInstruction, CategoryReasoning, CategoryCreative, CategoryCoding}
}

// Prompt is a single benchmark input. Prompts are authored statically and
// never mutated at runtime.
type Prompt struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // user, assistant, system
	Content string `json:"content"`
}

// CompletionRequest represents a unified chat-completion request.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// TokenCountMode records whether token counts came from the API or were
// estimated client-side. Resolved at parse time, never inferred later.
type TokenCountMode string

const (
	// TokenCountExact means the backend reported usage in its response.
	TokenCountExact TokenCountMode = "exact"

	// TokenCountEstimated means usage was absent and the counts were derived
	// with the chars/4 heuristic.
	TokenCountEstimated TokenCountMode = "estimated"
)

// Usage tracks token consumption for one completion.
type Usage struct {
	PromptTokens     int            `json:"prompt_tokens"`
	CompletionTokens int            `json:"completion_tokens"`
	TotalTokens      int            `json:"total_tokens"`
	Mode             TokenCountMode `json:"mode"`
}

// CompletionResponse represents a unified chat-completion response.
type CompletionResponse struct {
	ID         string    `json:"id"`
	Model      string    `json:"model"`
	Backend    string    `json:"backend"`
	Content    string    `json:"content"`
	Usage      Usage     `json:"usage"`
	FinishTime time.Time `json:"finish_time"`
}

// ResponseRecord is the persisted outcome of sending one Prompt to one
// backend. Identified by (prompt_id, model); written once, never mutated.
type ResponseRecord struct {
	PromptID       string         `json:"prompt_id"`
	Model          string         `json:"model"`
	Response       string         `json:"response"`
	LatencySeconds float64        `json:"latency_seconds"`
	InputTokens    int            `json:"input_tokens"`
	OutputTokens   int            `json:"output_tokens"`
	TotalTokens    int            `json:"total_tokens"`
	TokenCount     TokenCountMode `json:"token_count"`
	CostUSD        float64        `json:"cost_usd"`
	Timestamp      time.Time      `json:"timestamp"`
	ResponseLength int            `json:"response_length"`
	WordsCount     int            `json:"words_count"`
	Category       string         `json:"category"`
	Error          string         `json:"error,omitempty"`
}

// Failed reports whether this record is an error marker rather than a
// successful completion.
func (r ResponseRecord) Failed() bool {
	return r.Error != ""
}
