package metrics

import (
	"fmt"
	"math"
)

// IOProcessCount is the number of I/O-bound processes in the I/O latency benchmark
const IOProcessCount = 3

// Scenario names used in error messages and artifact bookkeeping
const (
	ScenarioInteractive = "interactive"
	ScenarioStarvation  = "starvation"
	ScenarioIO          = "io"
)

// SampleSet holds one scenario's raw measurements for both schedulers.
// Build it with NewSampleSet or NewIOSampleSet and treat it as read-only.
type SampleSet struct {
	Baseline []float64
	Variant  []float64
}

// NewSampleSet validates and copies the two series of a distribution-style scenario.
// The series may differ in length.
func NewSampleSet(scenario string, baseline, variant []float64) (SampleSet, error) {
	if err := checkSeries(scenario, "baseline", baseline); err != nil {
		return SampleSet{}, err
	}
	if err := checkSeries(scenario, "variant", variant); err != nil {
		return SampleSet{}, err
	}

	return SampleSet{
		Baseline: append([]float64(nil), baseline...),
		Variant:  append([]float64(nil), variant...),
	}, nil
}

// NewIOSampleSet builds the I/O latency sample set, which needs exactly one
// average latency per I/O process in each series
func NewIOSampleSet(baseline, variant []float64) (SampleSet, error) {
	if len(baseline) != IOProcessCount {
		return SampleSet{}, &InputShapeError{Scenario: ScenarioIO, Field: "baseline", Want: IOProcessCount, Got: len(baseline)}
	}
	if len(variant) != IOProcessCount {
		return SampleSet{}, &InputShapeError{Scenario: ScenarioIO, Field: "variant", Want: IOProcessCount, Got: len(variant)}
	}
	return NewSampleSet(ScenarioIO, baseline, variant)
}

// Aligned returns the number of index-aligned pairs (the shorter length)
func (s SampleSet) Aligned() int {
	return min(len(s.Baseline), len(s.Variant))
}

// FinishTimes are the completion times of the dominant and low-priority
// processes in one starvation run
type FinishTimes struct {
	Dominant    float64 `yaml:"dominant"`
	LowPriority float64 `yaml:"low_priority"`
}

// StarvationInput pairs the baseline and variant finish times
type StarvationInput struct {
	Baseline FinishTimes
	Variant  FinishTimes
}

// NewFinishTimes builds FinishTimes from parsed slot values. Each slot must
// carry exactly one scalar. field names the run ("baseline" or "variant").
func NewFinishTimes(field string, dominant, lowPriority []float64) (FinishTimes, error) {
	if len(dominant) != 1 {
		return FinishTimes{}, &InputShapeError{Scenario: ScenarioStarvation, Field: field + ".dominant", Want: 1, Got: len(dominant)}
	}
	if len(lowPriority) != 1 {
		return FinishTimes{}, &InputShapeError{Scenario: ScenarioStarvation, Field: field + ".low_priority", Want: 1, Got: len(lowPriority)}
	}

	ft := FinishTimes{Dominant: dominant[0], LowPriority: lowPriority[0]}
	if err := ft.validate(field); err != nil {
		return FinishTimes{}, err
	}
	return ft, nil
}

func (ft FinishTimes) validate(field string) error {
	if !finite(ft.Dominant) {
		return &DegenerateInputError{Quantity: field + " dominant finish time", Value: ft.Dominant}
	}
	if !finite(ft.LowPriority) {
		return &DegenerateInputError{Quantity: field + " low-priority finish time", Value: ft.LowPriority}
	}
	return nil
}

func checkSeries(scenario, field string, xs []float64) error {
	if len(xs) == 0 {
		return &InputShapeError{Scenario: scenario, Field: field}
	}
	for i, x := range xs {
		if !finite(x) {
			return &DegenerateInputError{Quantity: fmt.Sprintf("%s %s sample %d", scenario, field, i), Value: x}
		}
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
