package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/promptbench/internal/config"
)

func TestDefaultPricing(t *testing.T) {
	table := config.DefaultPricing()

	gpt4, ok := table["gpt-4"]
	require.True(t, ok)
	require.InDelta(t, 0.03, gpt4.InputCostPer1K, 0.0001)
	require.InDelta(t, 0.06, gpt4.OutputCostPer1K, 0.0001)
	require.Contains(t, table, "gpt-4-turbo")
	require.Contains(t, table, "gpt-4o")
}

func TestLoadPricingFile(t *testing.T) {
	t.Run("empty path yields empty table", func(t *testing.T) {
		table, err := config.LoadPricingFile("")
		require.NoError(t, err)
		require.Empty(t, table)
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pricing.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
models:
  gpt-4:
    input_per_1k: 0.01
    output_per_1k: 0.02
  my-finetune:
    input_per_1k: 0.001
    output_per_1k: 0.002
`), 0o644))

		table, err := config.LoadPricingFile(path)
		require.NoError(t, err)
		require.Len(t, table, 2)
		require.InDelta(t, 0.01, table["gpt-4"].InputCostPer1K, 0.0001)
		require.InDelta(t, 0.002, table["my-finetune"].OutputCostPer1K, 0.0001)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadPricingFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("models: [broken"), 0o644))
		_, err := config.LoadPricingFile(path)
		require.Error(t, err)
	})
}
