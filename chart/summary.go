package chart

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/neehar-mavuduru/palsviz/metrics"
)

var summaryCategories = []string{"Interactive\nLatency", "Starvation\nPrevention", "I/O\nResponsiveness"}

// SummaryInput carries the three scenario metrics in fixed order.
// A nil field means that scenario produced no metrics.
type SummaryInput struct {
	Interactive *metrics.LatencyMetrics
	Starvation  *metrics.StarvationMetrics
	IO          *metrics.LatencyMetrics
}

// IncompleteSummaryError is returned when the summary is requested before
// every scenario has metrics
type IncompleteSummaryError struct {
	Missing []string
}

func (e *IncompleteSummaryError) Error() string {
	return fmt.Sprintf("summary needs all scenario metrics, missing: %s", strings.Join(e.Missing, ", "))
}

// Improvements returns the per-scenario percentages in chart order
func (in SummaryInput) Improvements() ([]float64, error) {
	var missing []string
	if in.Interactive == nil {
		missing = append(missing, metrics.ScenarioInteractive)
	}
	if in.Starvation == nil {
		missing = append(missing, metrics.ScenarioStarvation)
	}
	if in.IO == nil {
		missing = append(missing, metrics.ScenarioIO)
	}
	if len(missing) > 0 {
		return nil, &IncompleteSummaryError{Missing: missing}
	}

	return []float64{
		in.Interactive.ImprovementPct,
		in.Starvation.ReductionPct,
		in.IO.ImprovementPct,
	}, nil
}

// Summary builds the cross-scenario improvement chart
func Summary(in SummaryInput) (Chart, error) {
	pcts, err := in.Improvements()
	if err != nil {
		return Chart{}, err
	}

	colors := []color.RGBA{ColorSummaryInteractive, ColorSummaryStarvation, ColorSummaryIO}
	bars := make([]Bar, len(pcts))
	for i, pct := range pcts {
		bars[i] = Bar{
			Value:      pct,
			Label:      FormatSignedPercent(pct),
			LabelBelow: pct <= 0,
			Color:      colors[i],
		}
	}

	return Chart{
		Name: NameSummary,
		Panels: []Panel{{
			Title:      LabelVariant + " Performance Improvements Over Baseline",
			YLabel:     "Improvement (%)",
			Categories: append([]string(nil), summaryCategories...),
			Series:     []Series{{Color: ColorSummaryInteractive, Bars: bars}},
			ZeroLine:   true,
		}},
	}, nil
}
