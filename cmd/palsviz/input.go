package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/neehar-mavuduru/palsviz/metrics"
	"github.com/neehar-mavuduru/palsviz/pipeline"
)

// answers holds the raw prompt text for every scenario. A blank answer means
// "use the demonstration values" for that scenario.
type answers struct {
	InteractiveBaseline string
	InteractiveVariant  string

	AgingBaselineDominant    string
	AgingBaselineLowPriority string
	AgingVariantDominant     string
	AgingVariantLowPriority  string

	IOBaseline string
	IOVariant  string
}

// parseValues parses comma-separated numbers such as "5, 12,8"
func parseValues(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	fields := strings.Split(s, ",")
	values := make([]float64, 0, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, fmt.Errorf("value %d is empty", i+1)
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d (%q) is not a number", i+1, f)
		}
		values = append(values, v)
	}
	return values, nil
}

// validateValues accepts blank input or a comma-separated list of numbers
func validateValues(s string) error {
	_, err := parseValues(s)
	return err
}

// validateIOValues accepts blank input or exactly one value per I/O process
func validateIOValues(s string) error {
	values, err := parseValues(s)
	if err != nil {
		return err
	}
	if len(values) != 0 && len(values) != metrics.IOProcessCount {
		return fmt.Errorf("enter exactly %d values, got %d", metrics.IOProcessCount, len(values))
	}
	return nil
}

// validateScalar accepts blank input or a single number
func validateScalar(s string) error {
	values, err := parseValues(s)
	if err != nil {
		return err
	}
	if len(values) > 1 {
		return fmt.Errorf("enter a single value")
	}
	return nil
}

// apply fills cfg from the answers. A scenario with any blank answer falls
// back to the demonstration values as a whole.
func (a answers) apply(cfg *pipeline.Config) error {
	interactive, err := samplePair(a.InteractiveBaseline, a.InteractiveVariant)
	if err != nil {
		return fmt.Errorf("interactive: %w", err)
	}
	cfg.Interactive = interactive

	if err := a.applyAging(cfg); err != nil {
		return fmt.Errorf("aging: %w", err)
	}

	io, err := samplePair(a.IOBaseline, a.IOVariant)
	if err != nil {
		return fmt.Errorf("io: %w", err)
	}
	cfg.IO = io

	return nil
}

func (a answers) applyAging(cfg *pipeline.Config) error {
	raw := []string{a.AgingBaselineDominant, a.AgingBaselineLowPriority, a.AgingVariantDominant, a.AgingVariantLowPriority}
	slots := make([][]float64, len(raw))
	for i, s := range raw {
		if strings.TrimSpace(s) == "" {
			cfg.Aging = pipeline.AgingInput{UseExampleDefaults: true}
			return nil
		}
		v, err := parseValues(s)
		if err != nil {
			return err
		}
		slots[i] = v
	}

	baseline, err := metrics.NewFinishTimes("baseline", slots[0], slots[1])
	if err != nil {
		return err
	}
	variant, err := metrics.NewFinishTimes("variant", slots[2], slots[3])
	if err != nil {
		return err
	}
	cfg.Aging = pipeline.AgingInput{Baseline: &baseline, Variant: &variant}
	return nil
}

func samplePair(baseline, variant string) (pipeline.SampleInput, error) {
	b, err := parseValues(baseline)
	if err != nil {
		return pipeline.SampleInput{}, fmt.Errorf("baseline: %w", err)
	}
	v, err := parseValues(variant)
	if err != nil {
		return pipeline.SampleInput{}, fmt.Errorf("variant: %w", err)
	}
	if len(b) == 0 || len(v) == 0 {
		return pipeline.SampleInput{UseExampleDefaults: true}, nil
	}
	return pipeline.SampleInput{BaselineSamples: b, VariantSamples: v}, nil
}
