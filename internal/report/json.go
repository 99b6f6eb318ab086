// Package report renders Comparator output into durable formats: nested
// JSON documents, a flat CSV, and a Markdown summary table. Export failures
// abort only the export step; the in-memory analysis stays valid.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/davidbz/promptbench/internal/compare"
)

// Default export file names.
const (
	DetailedComparisonFile  = "detailed_comparison.json"
	PerformanceAnalysisFile = "performance_analysis.json"
	ComparisonCSVFile       = "comparison_data.csv"
	SummaryMarkdownFile     = "comparison_summary.md"
)

// analysisDocument wraps the analysis with its generation stamp. The stamp
// lives here, not in the analysis itself, so the computed numbers stay
// reproducible.
type analysisDocument struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Analysis    *compare.Analysis `json:"analysis"`
}

// WriteJSON writes the detailed comparison and the performance analysis
// documents into dir.
func WriteJSON(dir string, result *compare.Result, analysis *compare.Analysis) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	if err := writeJSONFile(filepath.Join(dir, DetailedComparisonFile), result); err != nil {
		return err
	}

	doc := analysisDocument{
		GeneratedAt: time.Now().UTC(),
		Analysis:    analysis,
	}
	return writeJSONFile(filepath.Join(dir, PerformanceAnalysisFile), doc)
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
