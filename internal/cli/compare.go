package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davidbz/promptbench/internal/compare"
	"github.com/davidbz/promptbench/internal/observability"
	"github.com/davidbz/promptbench/internal/report"
	"github.com/davidbz/promptbench/internal/resultstore"
)

var compareFlags struct {
	reference string
	candidate string
	outputDir string
	exportCSV bool
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two completed result files and export the analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompare()
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareFlags.reference, "reference", "results/openai_outputs.json",
		"Reference backend result file (backend A)")
	compareCmd.Flags().StringVar(&compareFlags.candidate, "candidate", "results/local_outputs.json",
		"Candidate backend result file (backend B)")
	compareCmd.Flags().StringVar(&compareFlags.outputDir, "output-dir", "results", "Directory for exports")
	compareCmd.Flags().BoolVar(&compareFlags.exportCSV, "csv", false, "Also export the flat CSV")
}

func runCompare() error {
	logger, err := observability.InitLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reference, err := resultstore.Load(compareFlags.reference)
	if err != nil {
		return err
	}
	candidate, err := resultstore.Load(compareFlags.candidate)
	if err != nil {
		return err
	}

	logger.Info("loaded result stores",
		observability.Int("reference_records", len(reference)),
		observability.Int("candidate_records", len(candidate)),
	)

	result, err := compare.Compare(reference, candidate)
	if err != nil {
		return err
	}
	analysis := compare.Analyze(result, reference, candidate)

	if err := report.WriteJSON(compareFlags.outputDir, result, analysis); err != nil {
		return err
	}
	if err := report.WriteMarkdown(compareFlags.outputDir, analysis); err != nil {
		return err
	}
	if compareFlags.exportCSV {
		if err := report.WriteCSV(compareFlags.outputDir, result); err != nil {
			return err
		}
	}

	logger.Info("comparison complete",
		observability.Int("comparisons", analysis.Overview.TotalComparisons),
		observability.Int("successful", analysis.Overview.SuccessfulComparisons),
		observability.Float64("mean_latency_ratio", analysis.Overview.MeanLatencyRatio),
		observability.Float64("total_savings_usd", analysis.Overview.TotalCostSavingsUSD),
		observability.String("output_dir", compareFlags.outputDir),
	)

	fmt.Print(report.RenderMarkdown(analysis))
	return nil
}
