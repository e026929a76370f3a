package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// LatencyMetrics summarizes a latency-style scenario (interactive or I/O)
type LatencyMetrics struct {
	BaselineMean   float64
	BaselineStd    float64
	VariantMean    float64
	VariantStd     float64
	ImprovementPct float64 // Positive when the variant is faster
}

// StarvationMetrics summarizes the aging scenario.
// A ratio is low-priority finish time divided by dominant finish time.
type StarvationMetrics struct {
	BaselineRatio float64
	VariantRatio  float64
	ReductionPct  float64 // Positive when the variant starves less
}

// Describe returns the arithmetic mean and population standard deviation of xs.
// xs must be non-empty.
func Describe(xs []float64) (mean, std float64) {
	return stat.PopMeanStdDev(xs, nil)
}

// Improvement returns ((baseline - variant) / baseline) * 100.
// A zero baseline makes the percentage undefined and is rejected.
func Improvement(baseline, variant float64) (float64, error) {
	if baseline == 0 || !finite(baseline) {
		return 0, &DegenerateInputError{Quantity: "baseline", Value: baseline}
	}
	pct := (baseline - variant) / baseline * 100
	if !finite(pct) {
		return 0, &DegenerateInputError{Quantity: "improvement", Value: pct}
	}
	return pct, nil
}

// Latency computes the descriptive statistics and mean improvement of a sample set
func Latency(s SampleSet) (LatencyMetrics, error) {
	if len(s.Baseline) == 0 || len(s.Variant) == 0 {
		return LatencyMetrics{}, &InputShapeError{Scenario: "latency", Field: "samples"}
	}

	var m LatencyMetrics
	m.BaselineMean, m.BaselineStd = Describe(s.Baseline)
	m.VariantMean, m.VariantStd = Describe(s.Variant)

	pct, err := Improvement(m.BaselineMean, m.VariantMean)
	if err != nil {
		if de, ok := err.(*DegenerateInputError); ok {
			de.Quantity = "baseline mean"
		}
		return LatencyMetrics{}, err
	}
	m.ImprovementPct = pct
	return m, nil
}

// Starvation computes the slowdown ratios and their percentage reduction
func Starvation(in StarvationInput) (StarvationMetrics, error) {
	baselineRatio, err := ratio("baseline", in.Baseline)
	if err != nil {
		return StarvationMetrics{}, err
	}
	variantRatio, err := ratio("variant", in.Variant)
	if err != nil {
		return StarvationMetrics{}, err
	}

	pct, err := Improvement(baselineRatio, variantRatio)
	if err != nil {
		if de, ok := err.(*DegenerateInputError); ok {
			de.Quantity = "baseline ratio"
		}
		return StarvationMetrics{}, err
	}

	return StarvationMetrics{
		BaselineRatio: baselineRatio,
		VariantRatio:  variantRatio,
		ReductionPct:  pct,
	}, nil
}

func ratio(field string, ft FinishTimes) (float64, error) {
	if err := ft.validate(field); err != nil {
		return 0, err
	}
	if ft.Dominant == 0 {
		return 0, &DegenerateInputError{Quantity: field + " dominant finish time", Value: ft.Dominant}
	}
	r := ft.LowPriority / ft.Dominant
	if math.IsInf(r, 0) {
		return 0, &DegenerateInputError{Quantity: field + " ratio", Value: r}
	}
	return r, nil
}
