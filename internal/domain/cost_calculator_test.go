package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/promptbench/internal/domain"
)

func TestStandardCostCalculator_Calculate(t *testing.T) {
	ctx := context.Background()
	registry := domain.NewInMemoryPricingRegistry()

	err := registry.RegisterPricing(ctx, "gpt-4", domain.PricingConfig{
		InputCostPer1K:  0.03,
		OutputCostPer1K: 0.06,
	})
	require.NoError(t, err)

	calculator := domain.NewStandardCostCalculator(registry)

	tests := []struct {
		name         string
		model        string
		usage        domain.Usage
		expectedCost float64
		expectError  bool
	}{
		{
			name:  "priced model",
			model: "gpt-4",
			usage: domain.Usage{
				PromptTokens:     1000,
				CompletionTokens: 500,
			},
			expectedCost: 0.06, // (1000/1000 * 0.03) + (500/1000 * 0.06)
		},
		{
			name:  "unpriced local model is free",
			model: "gpt-oss-20b",
			usage: domain.Usage{
				PromptTokens:     1000,
				CompletionTokens: 500,
			},
			expectedCost: 0,
		},
		{
			name:        "empty model returns error",
			model:       "",
			usage:       domain.Usage{},
			expectError: true,
		},
		{
			name:         "zero tokens cost nothing",
			model:        "gpt-4",
			usage:        domain.Usage{},
			expectedCost: 0,
		},
		{
			name:  "partial thousands",
			model: "gpt-4",
			usage: domain.Usage{
				PromptTokens:     250,
				CompletionTokens: 100,
			},
			expectedCost: 0.0135, // (250/1000 * 0.03) + (100/1000 * 0.06)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost, err := calculator.Calculate(ctx, tt.model, tt.usage)

			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.InDelta(t, tt.expectedCost, cost, 0.0001)
			require.GreaterOrEqual(t, cost, 0.0)
		})
	}
}

func TestInMemoryPricingRegistry_RegisterAll(t *testing.T) {
	ctx := context.Background()
	registry := domain.NewInMemoryPricingRegistry()

	err := registry.RegisterAll(ctx, map[string]domain.PricingConfig{
		"gpt-4":  {InputCostPer1K: 0.03, OutputCostPer1K: 0.06},
		"gpt-4o": {InputCostPer1K: 0.005, OutputCostPer1K: 0.015},
	})
	require.NoError(t, err)

	// Overrides replace existing entries.
	err = registry.RegisterAll(ctx, map[string]domain.PricingConfig{
		"gpt-4": {InputCostPer1K: 0.01, OutputCostPer1K: 0.02},
	})
	require.NoError(t, err)

	pricing, err := registry.GetPricing(ctx, "gpt-4")
	require.NoError(t, err)
	require.InDelta(t, 0.01, pricing.InputCostPer1K, 0.0001)
	require.InDelta(t, 0.02, pricing.OutputCostPer1K, 0.0001)

	_, err = registry.GetPricing(ctx, "unknown-model")
	require.Error(t, err)
}
