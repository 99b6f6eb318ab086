package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davidbz/promptbench/internal/compare"
)

// WriteMarkdown renders a human-readable summary table into dir.
func WriteMarkdown(dir string, analysis *compare.Analysis) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, SummaryMarkdownFile)
	if err := os.WriteFile(path, []byte(RenderMarkdown(analysis)), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown produces the Markdown summary for an analysis.
func RenderMarkdown(analysis *compare.Analysis) string {
	var sb strings.Builder

	sb.WriteString("## Benchmark Comparison\n\n")

	o := analysis.Overview
	sb.WriteString(fmt.Sprintf("- Comparisons: %d (%d successful, %.1f%%)\n",
		o.TotalComparisons, o.SuccessfulComparisons, o.SuccessRate*100))
	sb.WriteString(fmt.Sprintf("- Mean latency ratio (candidate/reference): %.2f\n", o.MeanLatencyRatio))
	sb.WriteString(fmt.Sprintf("- Mean response length ratio: %.2f\n", o.MeanLengthRatio))
	sb.WriteString(fmt.Sprintf("- Total cost savings: $%.4f\n", o.TotalCostSavingsUSD))
	if o.MissingReference > 0 || o.MissingCandidate > 0 {
		sb.WriteString(fmt.Sprintf("- Missing records: %d reference-only gaps, %d candidate-only gaps\n",
			o.MissingReference, o.MissingCandidate))
	}
	sb.WriteString("\n")

	sb.WriteString("| Backend | Records | Success | Mean Latency | Mean Length | Mean Words | Total Cost |\n")
	sb.WriteString("|---------|---------|---------|--------------|-------------|------------|------------|\n")
	writeBackendRow(&sb, "reference", analysis.Reference)
	writeBackendRow(&sb, "candidate", analysis.Candidate)
	sb.WriteString("\n")

	if len(analysis.Categories) > 0 {
		sb.WriteString("### By Category\n\n")
		sb.WriteString("| Category | Count | Latency Ratio | Length Ratio | Cost Savings |\n")
		sb.WriteString("|----------|-------|---------------|--------------|--------------|\n")
		for _, name := range analysis.CategoryNames() {
			c := analysis.Categories[name]
			sb.WriteString(fmt.Sprintf("| %s | %d | %.2f | %.2f | $%.4f |\n",
				name, c.Count, c.MeanLatencyRatio, c.MeanLengthRatio, c.TotalCostSavings))
		}
		sb.WriteString("\n")
	}

	if len(analysis.Projection) > 0 {
		sb.WriteString("### Projected Savings\n\n")
		for _, p := range analysis.Projection {
			sb.WriteString(fmt.Sprintf("- %d requests: $%.2f\n", p.Requests, p.ProjectedSavingsUSD))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeBackendRow(sb *strings.Builder, label string, s compare.BackendStats) {
	sb.WriteString(fmt.Sprintf("| %s | %d | %.1f%% | %.2fs | %.0f | %.0f | $%.4f |\n",
		label, s.Records, s.SuccessRate*100, s.MeanLatencySeconds,
		s.MeanResponseLength, s.MeanWordsCount, s.TotalCostUSD))
}
