package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/davidbz/promptbench/internal/domain"
)

// pricingEntry is one model's pricing in the YAML pricing file.
type pricingEntry struct {
	InputPer1K  float64 `yaml:"input_per_1k"`
	OutputPer1K float64 `yaml:"output_per_1k"`
}

// pricingFile is the on-disk pricing table format:
//
//	models:
//	  gpt-4:
//	    input_per_1k: 0.03
//	    output_per_1k: 0.06
type pricingFile struct {
	Models map[string]pricingEntry `yaml:"models"`
}

// DefaultPricing returns the built-in OpenAI pricing table (USD per 1K
// tokens). Entries may be overridden by a pricing file.
func DefaultPricing() map[string]domain.PricingConfig {
	return map[string]domain.PricingConfig{
		"gpt-4":       {InputCostPer1K: 0.03, OutputCostPer1K: 0.06},
		"gpt-4-turbo": {InputCostPer1K: 0.01, OutputCostPer1K: 0.03},
		"gpt-4o":      {InputCostPer1K: 0.005, OutputCostPer1K: 0.015},
	}
}

// LoadPricingFile parses a YAML pricing table. An empty path yields an empty
// table so callers can merge it unconditionally.
func LoadPricingFile(path string) (map[string]domain.PricingConfig, error) {
	if path == "" {
		return map[string]domain.PricingConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing file %s: %w", path, err)
	}

	var file pricingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse pricing file %s: %w", path, err)
	}

	table := make(map[string]domain.PricingConfig, len(file.Models))
	for model, entry := range file.Models {
		table[model] = domain.PricingConfig{
			InputCostPer1K:  entry.InputPer1K,
			OutputCostPer1K: entry.OutputPer1K,
		}
	}

	return table, nil
}
