package compare

import (
	"sort"

	"github.com/davidbz/promptbench/internal/domain"
)

// Projection request counts used for linear cost extrapolation.
var projectionSizes = []int{1000, 10000}

// BackendStats summarizes one backend's full result store.
type BackendStats struct {
	Records            int     `json:"records"`
	Successes          int     `json:"successes"`
	SuccessRate        float64 `json:"success_rate"`
	MeanLatencySeconds float64 `json:"mean_latency_seconds"`
	MeanResponseLength float64 `json:"mean_response_length"`
	MeanWordsCount     float64 `json:"mean_words_count"`
	TotalCostUSD       float64 `json:"total_cost_usd"`
}

// CategoryStats summarizes the joined comparisons of one prompt category.
type CategoryStats struct {
	Count            int     `json:"count"`
	MeanLatencyRatio float64 `json:"mean_latency_ratio"`
	MeanLengthRatio  float64 `json:"mean_length_ratio"`
	TotalCostSavings float64 `json:"total_cost_savings"`
}

// Projection extrapolates the observed per-prompt cost delta linearly.
type Projection struct {
	Requests            int     `json:"requests"`
	ProjectedSavingsUSD float64 `json:"projected_savings_usd"`
}

// Overview aggregates the joined comparisons as a whole.
type Overview struct {
	TotalComparisons      int     `json:"total_comparisons"`
	SuccessfulComparisons int     `json:"successful_comparisons"`
	SuccessRate           float64 `json:"success_rate"`
	MeanLatencyRatio      float64 `json:"mean_latency_ratio"`
	MeanLengthRatio       float64 `json:"mean_length_ratio"`
	TotalCostSavingsUSD   float64 `json:"total_cost_savings_usd"`
	MissingReference      int     `json:"missing_reference"`
	MissingCandidate      int     `json:"missing_candidate"`
}

// Analysis is the aggregate statistics block forwarded to the reporter. It
// is fully determined by its inputs; re-running Analyze on the same stores
// yields identical numbers.
type Analysis struct {
	Overview   Overview                 `json:"overview"`
	Reference  BackendStats             `json:"reference"`
	Candidate  BackendStats             `json:"candidate"`
	Categories map[string]CategoryStats `json:"categories"`
	Projection []Projection             `json:"projections"`
}

// Analyze computes aggregate statistics from a join result and the two full
// record stores it was built from.
func Analyze(result *Result, reference, candidate []domain.ResponseRecord) *Analysis {
	analysis := &Analysis{
		Reference:  backendStats(reference),
		Candidate:  backendStats(candidate),
		Categories: make(map[string]CategoryStats),
	}

	var (
		successful    int
		latencyRatios float64
		latencyCount  int
		lengthRatios  float64
		lengthCount   int
		totalSavings  float64
	)

	perCategory := make(map[string]*categoryAccumulator)

	for _, comp := range result.Comparisons {
		if !comp.Metrics.BothSuccessful {
			continue
		}
		successful++
		totalSavings += comp.Metrics.CostSavings

		acc := perCategory[comp.Category]
		if acc == nil {
			acc = &categoryAccumulator{}
			perCategory[comp.Category] = acc
		}
		acc.count++
		acc.savings += comp.Metrics.CostSavings

		// Zero ratios mark prompts excluded from ratio math (zero or
		// missing latency/length on either side).
		if comp.Metrics.LatencyRatio > 0 {
			latencyRatios += comp.Metrics.LatencyRatio
			latencyCount++
			acc.latencyRatios += comp.Metrics.LatencyRatio
			acc.latencyCount++
		}
		if comp.Metrics.LengthRatio > 0 {
			lengthRatios += comp.Metrics.LengthRatio
			lengthCount++
			acc.lengthRatios += comp.Metrics.LengthRatio
			acc.lengthCount++
		}
	}

	analysis.Overview = Overview{
		TotalComparisons:      len(result.Comparisons),
		SuccessfulComparisons: successful,
		SuccessRate:           ratio(successful, len(result.Comparisons)),
		MeanLatencyRatio:      mean(latencyRatios, latencyCount),
		MeanLengthRatio:       mean(lengthRatios, lengthCount),
		TotalCostSavingsUSD:   totalSavings,
		MissingReference:      len(result.MissingReference),
		MissingCandidate:      len(result.MissingCandidate),
	}

	for category, acc := range perCategory {
		analysis.Categories[category] = CategoryStats{
			Count:            acc.count,
			MeanLatencyRatio: mean(acc.latencyRatios, acc.latencyCount),
			MeanLengthRatio:  mean(acc.lengthRatios, acc.lengthCount),
			TotalCostSavings: acc.savings,
		}
	}

	if successful > 0 {
		avgSavings := totalSavings / float64(successful)
		for _, size := range projectionSizes {
			analysis.Projection = append(analysis.Projection, Projection{
				Requests:            size,
				ProjectedSavingsUSD: avgSavings * float64(size),
			})
		}
	}

	return analysis
}

type categoryAccumulator struct {
	count         int
	savings       float64
	latencyRatios float64
	latencyCount  int
	lengthRatios  float64
	lengthCount   int
}

// backendStats summarizes one full store. Means are computed over successful
// records only; success rate and totals cover every record.
func backendStats(records []domain.ResponseRecord) BackendStats {
	stats := BackendStats{Records: len(records)}

	var latency, length, words float64
	for _, r := range records {
		stats.TotalCostUSD += r.CostUSD
		if r.Failed() {
			continue
		}
		stats.Successes++
		latency += r.LatencySeconds
		length += float64(r.ResponseLength)
		words += float64(r.WordsCount)
	}

	stats.SuccessRate = ratio(stats.Successes, stats.Records)
	stats.MeanLatencySeconds = mean(latency, stats.Successes)
	stats.MeanResponseLength = mean(length, stats.Successes)
	stats.MeanWordsCount = mean(words, stats.Successes)

	return stats
}

// CategoryNames returns the analysis categories in sorted order, for stable
// rendering.
func (a *Analysis) CategoryNames() []string {
	names := make([]string, 0, len(a.Categories))
	for name := range a.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mean(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}
