package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/promptbench/internal/provider/local"
	"github.com/davidbz/promptbench/internal/provider/openai"
)

// Config represents the full benchmark configuration.
type Config struct {
	Runner RunnerConfig
	Output OutputConfig
	OpenAI openai.Config
	Local  local.Config
}

// RunnerConfig contains batch execution settings.
type RunnerConfig struct {
	PromptsDir string `env:"PROMPTS_DIR" envDefault:"data/prompts"`
	MaxTokens  int    `env:"MAX_TOKENS"  envDefault:"1000"`
	// Temperature applies to every request in a batch so the two backends
	// sample under identical settings.
	Temperature float64 `env:"TEMPERATURE" envDefault:"0.7"`
	// CloudDelayMS and LocalDelayMS throttle sequential requests to avoid
	// rate limiting (cloud) or overwhelming a local server.
	CloudDelayMS int `env:"CLOUD_DELAY_MS" envDefault:"500"`
	LocalDelayMS int `env:"LOCAL_DELAY_MS" envDefault:"100"`
}

// OutputConfig contains result and report destination settings.
type OutputConfig struct {
	ResultsDir  string `env:"RESULTS_DIR"  envDefault:"results"`
	PricingFile string `env:"PRICING_FILE" envDefault:""`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out

	Runner *RunnerConfig
	Output *OutputConfig
	OpenAI *openai.Config
	Local  *local.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Runner: &cfg.Runner,
		Output: &cfg.Output,
		OpenAI: &cfg.OpenAI,
		Local:  &cfg.Local,
	}
}
