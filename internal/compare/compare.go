// Package compare joins two completed result stores on prompt ID and
// produces per-prompt differential metrics plus aggregate statistics. The
// reference side is the cloud backend, the candidate side the local one,
// but the math only cares about the roles, not the backends.
package compare

import (
	"fmt"
	"sort"

	"github.com/davidbz/promptbench/internal/domain"
	"github.com/davidbz/promptbench/internal/resultstore"
)

// Side is the snapshot of one backend's record inside a comparison.
type Side struct {
	Model          string  `json:"model"`
	Response       string  `json:"response"`
	LatencySeconds float64 `json:"latency_seconds"`
	TotalTokens    int     `json:"total_tokens"`
	CostUSD        float64 `json:"cost_usd"`
	ResponseLength int     `json:"response_length"`
	WordsCount     int     `json:"words_count"`
	HasError       bool    `json:"has_error"`
}

// Metrics holds the differential figures for one joined prompt.
type Metrics struct {
	// LatencyRatio is candidate latency over reference latency. Zero when
	// either side's latency is zero or missing; such prompts are excluded
	// from ratio aggregation but still counted for success rates.
	LatencyRatio   float64 `json:"latency_ratio"`
	LengthRatio    float64 `json:"length_ratio"`
	CostSavings    float64 `json:"cost_savings"`
	BothSuccessful bool    `json:"both_successful"`
}

// PromptComparison is the join of two ResponseRecords sharing a prompt ID.
type PromptComparison struct {
	PromptID  string  `json:"prompt_id"`
	Category  string  `json:"category"`
	Reference Side    `json:"reference"`
	Candidate Side    `json:"candidate"`
	Metrics   Metrics `json:"metrics"`
}

// Result is the full join outcome. Prompt IDs present on only one side are
// reported in the missing lists rather than silently dropped.
type Result struct {
	Comparisons      []PromptComparison `json:"comparisons"`
	MissingReference []string           `json:"missing_reference,omitempty"`
	MissingCandidate []string           `json:"missing_candidate,omitempty"`
}

// Compare joins the two record collections on prompt ID. It returns
// domain.ErrNoJoinableRecords when the intersection is empty.
func Compare(reference, candidate []domain.ResponseRecord) (*Result, error) {
	refIndex := resultstore.Index(reference)
	candIndex := resultstore.Index(candidate)

	var common []string
	for id := range refIndex {
		if _, ok := candIndex[id]; ok {
			common = append(common, id)
		}
	}
	if len(common) == 0 {
		return nil, fmt.Errorf("%w: %d reference and %d candidate records",
			domain.ErrNoJoinableRecords, len(reference), len(candidate))
	}
	sort.Strings(common)

	result := &Result{
		Comparisons: make([]PromptComparison, 0, len(common)),
	}

	for _, id := range common {
		ref := refIndex[id]
		cand := candIndex[id]
		result.Comparisons = append(result.Comparisons, joinRecords(ref, cand))
	}

	for id := range refIndex {
		if _, ok := candIndex[id]; !ok {
			result.MissingCandidate = append(result.MissingCandidate, id)
		}
	}
	for id := range candIndex {
		if _, ok := refIndex[id]; !ok {
			result.MissingReference = append(result.MissingReference, id)
		}
	}
	sort.Strings(result.MissingCandidate)
	sort.Strings(result.MissingReference)

	return result, nil
}

func joinRecords(ref, cand domain.ResponseRecord) PromptComparison {
	metrics := Metrics{
		CostSavings:    ref.CostUSD - cand.CostUSD,
		BothSuccessful: !ref.Failed() && !cand.Failed(),
	}

	if ref.LatencySeconds > 0 && cand.LatencySeconds > 0 {
		metrics.LatencyRatio = cand.LatencySeconds / ref.LatencySeconds
	}
	if ref.ResponseLength > 0 && cand.ResponseLength > 0 {
		metrics.LengthRatio = float64(cand.ResponseLength) / float64(ref.ResponseLength)
	}

	category := ref.Category
	if category == "" {
		category = cand.Category
	}

	return PromptComparison{
		PromptID:  ref.PromptID,
		Category:  category,
		Reference: toSide(ref),
		Candidate: toSide(cand),
		Metrics:   metrics,
	}
}

func toSide(r domain.ResponseRecord) Side {
	return Side{
		Model:          r.Model,
		Response:       r.Response,
		LatencySeconds: r.LatencySeconds,
		TotalTokens:    r.TotalTokens,
		CostUSD:        r.CostUSD,
		ResponseLength: r.ResponseLength,
		WordsCount:     r.WordsCount,
		HasError:       r.Failed(),
	}
}
