package pipeline

import "github.com/neehar-mavuduru/palsviz/metrics"

// Demonstration values substituted when a scenario has no measurements
var (
	ExampleInteractiveBaseline = []float64{5, 12, 8, 15, 20, 7, 18, 10, 14, 9, 16, 11, 13, 8, 19, 6, 17, 12, 10, 15}
	ExampleInteractiveVariant  = []float64{3, 4, 5, 4, 6, 5, 7, 5, 4, 6, 5, 4, 6, 5, 7, 4, 5, 6, 5, 4}

	ExampleAgingBaseline = metrics.FinishTimes{Dominant: 500, LowPriority: 7500}
	ExampleAgingVariant  = metrics.FinishTimes{Dominant: 500, LowPriority: 2800}

	ExampleIOBaseline = []float64{15, 18, 12}
	ExampleIOVariant  = []float64{7, 9, 6}
)

// ExampleConfig returns the default configuration with every scenario filled
// in with the demonstration values
func ExampleConfig() Config {
	cfg := DefaultConfig()
	cfg.Interactive = SampleInput{
		BaselineSamples: clone(ExampleInteractiveBaseline),
		VariantSamples:  clone(ExampleInteractiveVariant),
	}
	baseline, variant := ExampleAgingBaseline, ExampleAgingVariant
	cfg.Aging = AgingInput{Baseline: &baseline, Variant: &variant}
	cfg.IO = SampleInput{
		BaselineSamples: clone(ExampleIOBaseline),
		VariantSamples:  clone(ExampleIOVariant),
	}
	return cfg
}

func clone(xs []float64) []float64 {
	return append([]float64(nil), xs...)
}
