package chart

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/neehar-mavuduru/palsviz/metrics"
)

// Ticket allocations used by the benchmark programs, shown in category labels
var (
	starvationCategories = []string{"Dominant\n(200 tickets)", "Low-Priority\n(1 ticket)"}
	ioCategories         = []string{"I/O Process 0\n(5 tickets)", "I/O Process 1\n(10 tickets)", "I/O Process 2\n(15 tickets)"}
)

// distributionTickStride thins the per-burst axis labels
const distributionTickStride = 2

// InteractiveLayout builds the two-panel interactive latency chart: mean
// wakeup latency with standard deviation error bars, and the per-burst distribution
func InteractiveLayout(s metrics.SampleSet, m metrics.LatencyMetrics) Chart {
	return Chart{
		Name:   NameInteractive,
		Panels: []Panel{meanPanel(m), distributionPanel(s)},
	}
}

func meanPanel(m metrics.LatencyMetrics) Panel {
	means := []float64{m.BaselineMean, m.VariantMean}
	stds := []float64{m.BaselineStd, m.VariantStd}

	// The baseline bar wins a tie
	taller := 0
	if means[1] > means[0] {
		taller = 1
	}

	return Panel{
		Title:      "Interactive Latency: Mean Wakeup Time",
		YLabel:     "Wakeup Latency (ticks)",
		Categories: []string{LabelBaseline, LabelVariant},
		Series: []Series{{
			Color: ColorBaseline,
			Bars: []Bar{
				{Value: means[0], Error: stds[0], Label: FormatValue(means[0]), Color: ColorBaseline},
				{Value: means[1], Error: stds[1], Label: FormatValue(means[1]), Color: ColorVariant},
			},
		}},
		Annotations: []Annotation{{
			Text:   FormatPercent(m.ImprovementPct) + "% improvement",
			Anchor: AnchorData,
			X:      float64(taller),
			Y:      means[taller] + stds[taller],
			Boxed:  true,
		}},
	}
}

func distributionPanel(s metrics.SampleSet) Panel {
	n := s.Aligned()
	categories := make([]string, n)
	for i := range categories {
		categories[i] = strconv.Itoa(i)
	}

	return Panel{
		Title:      "Latency Distribution Across Bursts",
		XLabel:     "Burst Number",
		YLabel:     "Latency (ticks)",
		Categories: categories,
		TickStride: distributionTickStride,
		Series: []Series{
			plainSeries(LabelBaseline, ColorBaseline, s.Baseline[:n], nil),
			plainSeries(LabelVariant, ColorVariant, s.Variant[:n], nil),
		},
		Legend: true,
	}
}

// StarvationLayout builds the aging comparison chart: completion times of the
// dominant and low-priority processes under both schedulers
func StarvationLayout(in metrics.StarvationInput, m metrics.StarvationMetrics) Chart {
	baseline := []float64{in.Baseline.Dominant, in.Baseline.LowPriority}
	variant := []float64{in.Variant.Dominant, in.Variant.LowPriority}

	text := fmt.Sprintf("%s: Low-priority %sx slower\n%s: Low-priority %sx slower\nImprovement: %s%% reduction",
		LabelBaseline, FormatRatio(m.BaselineRatio),
		LabelVariant, FormatRatio(m.VariantRatio),
		FormatPercent(m.ReductionPct))

	return Chart{
		Name: NameStarvation,
		Panels: []Panel{{
			Title:      "Starvation Prevention: Process Completion Times",
			YLabel:     "Completion Time (ticks)",
			Categories: append([]string(nil), starvationCategories...),
			Series: []Series{
				plainSeries(LabelBaseline, ColorBaseline, baseline, FormatTime),
				plainSeries(LabelVariant, ColorVariant, variant, FormatTime),
			},
			Annotations: []Annotation{{Text: text, Anchor: AnchorTopRight, Boxed: true}},
			Legend:      true,
		}},
	}
}

// IOLayout builds the I/O responsiveness chart: average wakeup latency per I/O process
func IOLayout(s metrics.SampleSet, m metrics.LatencyMetrics) Chart {
	n := min(s.Aligned(), len(ioCategories))

	return Chart{
		Name: NameIO,
		Panels: []Panel{{
			Title:      "I/O Responsiveness: Average Wakeup Latency",
			YLabel:     "Average Wakeup Latency (ticks)",
			Categories: append([]string(nil), ioCategories[:n]...),
			Series: []Series{
				plainSeries(LabelBaseline, ColorBaseline, s.Baseline[:n], FormatValue),
				plainSeries(LabelVariant, ColorVariant, s.Variant[:n], FormatValue),
			},
			Annotations: []Annotation{{
				Text:   "Average Improvement: " + FormatPercent(m.ImprovementPct) + "%",
				Anchor: AnchorTopRight,
				Boxed:  true,
			}},
			Legend: true,
		}},
	}
}

func plainSeries(name string, c color.RGBA, values []float64, label func(float64) string) Series {
	bars := make([]Bar, len(values))
	for i, v := range values {
		bars[i] = Bar{Value: v}
		if label != nil {
			bars[i].Label = label(v)
		}
	}
	return Series{Name: name, Color: c, Bars: bars}
}
