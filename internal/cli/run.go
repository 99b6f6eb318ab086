package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/davidbz/promptbench/internal/config"
	"github.com/davidbz/promptbench/internal/domain"
	"github.com/davidbz/promptbench/internal/observability"
	"github.com/davidbz/promptbench/internal/promptstore"
	"github.com/davidbz/promptbench/internal/resultstore"
	"github.com/davidbz/promptbench/internal/runner"
)

var runFlags struct {
	backend     string
	url         string
	model       string
	categories  []string
	promptsDir  string
	outputDir   string
	pricingFile string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the prompt set against one backend and persist results",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context())
	},
}

func init() {
	runCmd.Flags().StringVar(&runFlags.backend, "backend", "", "Backend to benchmark: openai or local (required)")
	runCmd.Flags().StringVar(&runFlags.url, "url", "", "Backend base URL (overrides env config)")
	runCmd.Flags().StringVar(&runFlags.model, "model", "", "Model identifier (overrides env config)")
	runCmd.Flags().StringSliceVar(&runFlags.categories, "categories", domain.Categories(),
		"Prompt categories to run")
	runCmd.Flags().StringVar(&runFlags.promptsDir, "prompts-dir", "", "Directory holding <category>.json prompt files")
	runCmd.Flags().StringVar(&runFlags.outputDir, "output-dir", "", "Directory for the result file")
	runCmd.Flags().StringVar(&runFlags.pricingFile, "pricing-file", "", "YAML pricing table overriding built-in prices")
	_ = runCmd.MarkFlagRequired("backend")
}

func runBatch(ctx context.Context) error {
	if runFlags.backend != "openai" && runFlags.backend != "local" {
		return fmt.Errorf("unknown backend %q: expected openai or local", runFlags.backend)
	}

	cfg := config.Load()
	applyRunFlags(cfg)

	container, err := buildContainer(cfg)
	if err != nil {
		return err
	}

	return container.Invoke(func(
		reg domain.ProviderRegistry,
		costCalc domain.CostCalculator,
		logger *zap.Logger,
	) error {
		defer func() { _ = logger.Sync() }()

		ctx := observability.WithRunID(ctx, observability.GenerateRunID())
		log := observability.FromContext(ctx)

		provider, err := reg.Get(ctx, runFlags.backend)
		if err != nil {
			return err
		}

		prompts, missing, err := promptstore.LoadAll(cfg.Runner.PromptsDir, runFlags.categories)
		if err != nil {
			return err
		}
		for _, category := range missing {
			log.Warn("prompt category file not found, skipping",
				observability.String("category", category))
		}
		if len(prompts) == 0 {
			return errors.New("no prompts found for the requested categories")
		}

		opts := runner.Options{
			Model:       provider.Model(),
			MaxTokens:   cfg.Runner.MaxTokens,
			Temperature: cfg.Runner.Temperature,
			Delay:       requestDelay(cfg, runFlags.backend),
			// Only local backends get the fail-fast probe: a dead local
			// server would fail every prompt, while cloud failures are
			// better surfaced per prompt.
			Probe: runFlags.backend == "local",
		}

		log.Info("starting batch",
			observability.String("backend", runFlags.backend),
			observability.String("model", opts.Model),
			observability.Int("prompts", len(prompts)),
		)

		records, err := runner.New(provider, costCalc, opts).Run(ctx, prompts)
		if err != nil {
			return err
		}

		outPath := filepath.Join(cfg.Output.ResultsDir, runFlags.backend+"_outputs.json")
		if err := resultstore.Save(outPath, records); err != nil {
			return err
		}

		logBatchSummary(log, records, outPath)
		return nil
	})
}

func applyRunFlags(cfg *config.Config) {
	if runFlags.url != "" {
		switch runFlags.backend {
		case "openai":
			cfg.OpenAI.BaseURL = runFlags.url
		case "local":
			cfg.Local.BaseURL = runFlags.url
		}
	}
	if runFlags.model != "" {
		switch runFlags.backend {
		case "openai":
			cfg.OpenAI.Model = runFlags.model
		case "local":
			cfg.Local.Model = runFlags.model
		}
	}
	if runFlags.promptsDir != "" {
		cfg.Runner.PromptsDir = runFlags.promptsDir
	}
	if runFlags.outputDir != "" {
		cfg.Output.ResultsDir = runFlags.outputDir
	}
	if runFlags.pricingFile != "" {
		cfg.Output.PricingFile = runFlags.pricingFile
	}
}

func requestDelay(cfg *config.Config, backend string) time.Duration {
	if backend == "local" {
		return time.Duration(cfg.Runner.LocalDelayMS) * time.Millisecond
	}
	return time.Duration(cfg.Runner.CloudDelayMS) * time.Millisecond
}

func logBatchSummary(log *zap.Logger, records []domain.ResponseRecord, outPath string) {
	var failures int
	var totalCost, totalLatency float64
	for _, r := range records {
		if r.Failed() {
			failures++
		}
		totalCost += r.CostUSD
		totalLatency += r.LatencySeconds
	}

	log.Info("batch complete",
		observability.Int("records", len(records)),
		observability.Int("failures", failures),
		observability.Float64("total_cost_usd", totalCost),
		observability.Float64("total_latency_seconds", totalLatency),
		observability.String("output", outPath),
	)
}
