package cli

import (
	"context"
	"fmt"

	"go.uber.org/dig"

	"github.com/davidbz/promptbench/internal/config"
	"github.com/davidbz/promptbench/internal/domain"
	"github.com/davidbz/promptbench/internal/observability"
	"github.com/davidbz/promptbench/internal/provider/local"
	"github.com/davidbz/promptbench/internal/provider/openai"
	"github.com/davidbz/promptbench/internal/provider/registry"
)

// buildContainer wires configuration, observability, pricing and the two
// backend providers into a dig container. The OpenAI provider is only
// registered when an API key is configured; local-only runs work without
// one.
func buildContainer(cfg *config.Config) (*dig.Container, error) {
	container := dig.New()

	// Configuration
	if err := container.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, fmt.Errorf("failed to provide config: %w", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		return nil, fmt.Errorf("failed to provide config dependencies: %w", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		return nil, fmt.Errorf("failed to provide logger: %w", err)
	}

	// Pricing and cost
	if err := container.Provide(func(outCfg *config.OutputConfig) (domain.PricingRegistry, error) {
		return buildPricingRegistry(outCfg.PricingFile)
	}); err != nil {
		return nil, fmt.Errorf("failed to provide pricing registry: %w", err)
	}
	if err := container.Provide(func(pricing domain.PricingRegistry) domain.CostCalculator {
		return domain.NewStandardCostCalculator(pricing)
	}); err != nil {
		return nil, fmt.Errorf("failed to provide cost calculator: %w", err)
	}

	// Provider registry
	if err := container.Provide(func() domain.ProviderRegistry {
		return registry.NewRegistry()
	}); err != nil {
		return nil, fmt.Errorf("failed to provide provider registry: %w", err)
	}

	// Backends
	if err := container.Provide(func(localCfg *local.Config) (*local.Provider, error) {
		return local.NewProvider(*localCfg)
	}); err != nil {
		return nil, fmt.Errorf("failed to provide local provider: %w", err)
	}
	if err := container.Provide(func(openaiCfg *openai.Config) (*openai.Provider, error) {
		if openaiCfg.APIKey == "" {
			// Resolved lazily; the run command only needs the backend it
			// was asked for.
			return nil, nil
		}
		return openai.NewProvider(*openaiCfg)
	}); err != nil {
		return nil, fmt.Errorf("failed to provide OpenAI provider: %w", err)
	}

	// Register backends (invoked for side effects)
	if err := container.Invoke(func(
		reg domain.ProviderRegistry,
		localProvider *local.Provider,
		openaiProvider *openai.Provider,
	) error {
		ctx := context.Background()

		if err := reg.Register(ctx, localProvider); err != nil {
			return fmt.Errorf("failed to register local provider: %w", err)
		}
		if openaiProvider != nil {
			if err := reg.Register(ctx, openaiProvider); err != nil {
				return fmt.Errorf("failed to register OpenAI provider: %w", err)
			}
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to register providers: %w", err)
	}

	return container, nil
}

// buildPricingRegistry merges an optional YAML pricing file over the
// built-in table. Local models stay unpriced and therefore free.
func buildPricingRegistry(pricingFile string) (domain.PricingRegistry, error) {
	reg := domain.NewInMemoryPricingRegistry()
	ctx := context.Background()

	if err := reg.RegisterAll(ctx, config.DefaultPricing()); err != nil {
		return nil, err
	}

	overrides, err := config.LoadPricingFile(pricingFile)
	if err != nil {
		return nil, err
	}
	if err := reg.RegisterAll(ctx, overrides); err != nil {
		return nil, err
	}

	return reg, nil
}
