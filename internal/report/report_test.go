package report_test

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/promptbench/internal/compare"
	"github.com/davidbz/promptbench/internal/domain"
	"github.com/davidbz/promptbench/internal/report"
)

func sampleResult(t *testing.T) (*compare.Result, *compare.Analysis) {
	t.Helper()

	reference := []domain.ResponseRecord{
		{
			PromptID: "p1", Model: "gpt-4", Response: "cloud answer",
			LatencySeconds: 2, TotalTokens: 30, CostUSD: 0.02,
			ResponseLength: 12, WordsCount: 2, Category: domain.CategoryInstruction,
		},
		{
			PromptID: "p2", Model: "gpt-4", Response: "another",
			LatencySeconds: 3, TotalTokens: 20, CostUSD: 0.01,
			ResponseLength: 7, WordsCount: 1, Category: domain.CategoryCoding,
		},
	}
	candidate := []domain.ResponseRecord{
		{
			PromptID: "p1", Model: "gpt-oss-20b", Response: "local answer",
			LatencySeconds: 8, TotalTokens: 28, ResponseLength: 12, WordsCount: 2,
			Category: domain.CategoryInstruction,
		},
		{
			PromptID: "p2", Model: "gpt-oss-20b", Response: "other",
			LatencySeconds: 9, TotalTokens: 18, ResponseLength: 5, WordsCount: 1,
			Category: domain.CategoryCoding,
		},
	}

	result, err := compare.Compare(reference, candidate)
	require.NoError(t, err)
	return result, compare.Analyze(result, reference, candidate)
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	result, analysis := sampleResult(t)

	require.NoError(t, report.WriteJSON(dir, result, analysis))

	var loaded compare.Result
	data, err := os.ReadFile(filepath.Join(dir, report.DetailedComparisonFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &loaded))
	require.Len(t, loaded.Comparisons, 2)
	require.Equal(t, "p1", loaded.Comparisons[0].PromptID)

	var doc struct {
		GeneratedAt string            `json:"generated_at"`
		Analysis    *compare.Analysis `json:"analysis"`
	}
	data, err = os.ReadFile(filepath.Join(dir, report.PerformanceAnalysisFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &doc))
	require.NotEmpty(t, doc.GeneratedAt)
	require.Equal(t, analysis.Overview, doc.Analysis.Overview)
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	result, _ := sampleResult(t)

	require.NoError(t, report.WriteCSV(dir, result))

	f, err := os.Open(filepath.Join(dir, report.ComparisonCSVFile))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	// Header plus one row per comparison.
	require.Len(t, rows, 3)
	require.Equal(t, "prompt_id", rows[0][0])
	require.Equal(t, "p1", rows[1][0])
	require.Equal(t, "gpt-oss-20b", rows[1][3])
	require.Len(t, rows[1], len(rows[0]))
}

func TestWriteMarkdown(t *testing.T) {
	dir := t.TempDir()
	_, analysis := sampleResult(t)

	require.NoError(t, report.WriteMarkdown(dir, analysis))

	data, err := os.ReadFile(filepath.Join(dir, report.SummaryMarkdownFile))
	require.NoError(t, err)

	rendered := string(data)
	require.Contains(t, rendered, "## Benchmark Comparison")
	require.Contains(t, rendered, "| reference |")
	require.Contains(t, rendered, "| candidate |")
	require.Contains(t, rendered, "| coding |")
	require.Contains(t, rendered, "| instruction |")
	require.Contains(t, rendered, "### Projected Savings")
}

func TestWriteJSON_UnwritablePath(t *testing.T) {
	result, analysis := sampleResult(t)

	// A file where the directory should be makes MkdirAll fail.
	base := t.TempDir()
	blocked := filepath.Join(base, "taken")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	err := report.WriteJSON(filepath.Join(blocked, "out"), result, analysis)
	require.Error(t, err)
}
