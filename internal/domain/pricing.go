package domain

// PricingConfig contains model pricing information.
type PricingConfig struct {
	InputCostPer1K  float64 // USD per 1K input tokens
	OutputCostPer1K float64 // USD per 1K output tokens
}

// Zero reports whether this pricing carries no cost, as for local inference.
func (p PricingConfig) Zero() bool {
	return p.InputCostPer1K == 0 && p.OutputCostPer1K == 0
}
