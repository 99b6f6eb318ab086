package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/davidbz/promptbench/internal/compare"
)

// WriteCSV flattens the comparisons into one row per joined prompt, for
// spreadsheet and notebook consumption.
func WriteCSV(dir string, result *compare.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, ComparisonCSVFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{
		"prompt_id", "category",
		"reference_model", "candidate_model",
		"reference_latency", "candidate_latency",
		"reference_tokens", "candidate_tokens",
		"reference_cost", "candidate_cost",
		"reference_response_length", "candidate_response_length",
		"reference_words", "candidate_words",
		"latency_ratio", "length_ratio", "cost_savings",
		"both_successful", "reference_has_error", "candidate_has_error",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, comp := range result.Comparisons {
		row := []string{
			comp.PromptID,
			comp.Category,
			comp.Reference.Model,
			comp.Candidate.Model,
			formatFloat(comp.Reference.LatencySeconds),
			formatFloat(comp.Candidate.LatencySeconds),
			strconv.Itoa(comp.Reference.TotalTokens),
			strconv.Itoa(comp.Candidate.TotalTokens),
			formatFloat(comp.Reference.CostUSD),
			formatFloat(comp.Candidate.CostUSD),
			strconv.Itoa(comp.Reference.ResponseLength),
			strconv.Itoa(comp.Candidate.ResponseLength),
			strconv.Itoa(comp.Reference.WordsCount),
			strconv.Itoa(comp.Candidate.WordsCount),
			formatFloat(comp.Metrics.LatencyRatio),
			formatFloat(comp.Metrics.LengthRatio),
			formatFloat(comp.Metrics.CostSavings),
			strconv.FormatBool(comp.Metrics.BothSuccessful),
			strconv.FormatBool(comp.Reference.HasError),
			strconv.FormatBool(comp.Candidate.HasError),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", comp.PromptID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
