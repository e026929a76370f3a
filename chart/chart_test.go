package chart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neehar-mavuduru/palsviz/metrics"
)

func exampleInteractive(t *testing.T) (metrics.SampleSet, metrics.LatencyMetrics) {
	t.Helper()
	s, err := metrics.NewSampleSet(metrics.ScenarioInteractive,
		[]float64{5, 12, 8, 15, 20, 7, 18, 10, 14, 9, 16, 11, 13, 8, 19, 6, 17, 12, 10, 15},
		[]float64{3, 4, 5, 4, 6, 5, 7, 5, 4, 6, 5, 4, 6, 5, 7, 4, 5, 6, 5, 4})
	require.NoError(t, err)
	m, err := metrics.Latency(s)
	require.NoError(t, err)
	return s, m
}

func exampleStarvation(t *testing.T) (metrics.StarvationInput, metrics.StarvationMetrics) {
	t.Helper()
	in := metrics.StarvationInput{
		Baseline: metrics.FinishTimes{Dominant: 500, LowPriority: 7500},
		Variant:  metrics.FinishTimes{Dominant: 500, LowPriority: 2800},
	}
	m, err := metrics.Starvation(in)
	require.NoError(t, err)
	return in, m
}

func exampleIO(t *testing.T) (metrics.SampleSet, metrics.LatencyMetrics) {
	t.Helper()
	s, err := metrics.NewIOSampleSet([]float64{15, 18, 12}, []float64{7, 9, 6})
	require.NoError(t, err)
	m, err := metrics.Latency(s)
	require.NoError(t, err)
	return s, m
}

func TestFormat(t *testing.T) {
	t.Run("PercentAndRatioUseOneDecimal", func(t *testing.T) {
		assert.Equal(t, "62.7", FormatPercent(62.666666))
		assert.Equal(t, "15.0", FormatRatio(15))
		assert.Equal(t, "5.6", FormatRatio(5.6))
		assert.Equal(t, "-3.0", FormatPercent(-3))
	})

	t.Run("SignedPercent", func(t *testing.T) {
		assert.Equal(t, "+51.1%", FormatSignedPercent(51.111))
		assert.Equal(t, "-12.5%", FormatSignedPercent(-12.5))
		assert.Equal(t, "0.0%", FormatSignedPercent(0))
		assert.Equal(t, "0.0%", FormatSignedPercent(-0.01))
	})

	t.Run("WholeTimesHaveNoDecimals", func(t *testing.T) {
		assert.Equal(t, "7500", FormatTime(7500))
		assert.Equal(t, "2800", FormatTime(2800.0))
		assert.Equal(t, "512.5", FormatTime(512.5))
	})
}

func TestInteractiveLayout(t *testing.T) {
	s, m := exampleInteractive(t)
	c := InteractiveLayout(s, m)

	assert.Equal(t, NameInteractive, c.Name)
	require.Len(t, c.Panels, 2)

	t.Run("MeanPanelHasErrorBars", func(t *testing.T) {
		p := c.Panels[0]
		require.Len(t, p.Series, 1)
		bars := p.Series[0].Bars
		require.Len(t, bars, 2)
		assert.Equal(t, m.BaselineMean, bars[0].Value)
		assert.Equal(t, m.BaselineStd, bars[0].Error)
		assert.Equal(t, m.VariantStd, bars[1].Error)
		assert.Equal(t, "5.0", bars[1].Label)
		assert.Equal(t, ColorBaseline, bars[0].FillColor(p.Series[0].Color))
		assert.Equal(t, ColorVariant, bars[1].FillColor(p.Series[0].Color))
	})

	t.Run("ImprovementAnnotationSitsAboveTallerBar", func(t *testing.T) {
		require.Len(t, c.Panels[0].Annotations, 1)
		a := c.Panels[0].Annotations[0]
		assert.Equal(t, "59.2% improvement", a.Text)
		assert.Equal(t, AnchorData, a.Anchor)
		assert.Equal(t, 0.0, a.X)
		assert.InDelta(t, m.BaselineMean+m.BaselineStd, a.Y, 1e-12)
		assert.True(t, a.Boxed)
	})

	t.Run("TieGoesToBaseline", func(t *testing.T) {
		tie := InteractiveLayout(s, metrics.LatencyMetrics{BaselineMean: 4, BaselineStd: 1, VariantMean: 4, VariantStd: 3})
		assert.Equal(t, 0.0, tie.Panels[0].Annotations[0].X)
		assert.Equal(t, 5.0, tie.Panels[0].Annotations[0].Y)

		slower := InteractiveLayout(s, metrics.LatencyMetrics{BaselineMean: 4, VariantMean: 6, VariantStd: 1})
		assert.Equal(t, 1.0, slower.Panels[0].Annotations[0].X)
		assert.Equal(t, 7.0, slower.Panels[0].Annotations[0].Y)
	})

	t.Run("DistributionPanelThinsTicks", func(t *testing.T) {
		p := c.Panels[1]
		assert.Len(t, p.Categories, 20)
		assert.Equal(t, 2, p.TickStride)
		assert.Equal(t, []int{0, 2, 4, 6, 8, 10, 12, 14, 16, 18}, p.VisibleTicks())
		require.Len(t, p.Series, 2)
		assert.Equal(t, LabelBaseline, p.Series[0].Name)
		assert.Equal(t, ColorBaseline, p.Series[0].Color)
		assert.Equal(t, ColorVariant, p.Series[1].Color)
		assert.Equal(t, 20.0, p.Series[0].Bars[4].Value)
		assert.True(t, p.Legend)
	})

	t.Run("DistributionStopsAtShorterSeries", func(t *testing.T) {
		short, err := metrics.NewSampleSet(metrics.ScenarioInteractive, []float64{1, 2, 3, 4, 5}, []float64{1, 2, 3})
		require.NoError(t, err)
		p := distributionPanel(short)
		assert.Len(t, p.Categories, 3)
		assert.Len(t, p.Series[0].Bars, 3)
		assert.Len(t, p.Series[1].Bars, 3)
		assert.Equal(t, []int{0, 2}, p.VisibleTicks())
	})
}

func TestStarvationLayout(t *testing.T) {
	in, m := exampleStarvation(t)
	c := StarvationLayout(in, m)

	assert.Equal(t, NameStarvation, c.Name)
	require.Len(t, c.Panels, 1)
	p := c.Panels[0]

	assert.Len(t, p.Categories, 2)
	require.Len(t, p.Series, 2)
	assert.Equal(t, "500", p.Series[0].Bars[0].Label)
	assert.Equal(t, "7500", p.Series[0].Bars[1].Label)
	assert.Equal(t, "2800", p.Series[1].Bars[1].Label)

	require.Len(t, p.Annotations, 1)
	a := p.Annotations[0]
	assert.Equal(t, AnchorTopRight, a.Anchor)
	assert.Equal(t, "Baseline: Low-priority 15.0x slower\nPALS: Low-priority 5.6x slower\nImprovement: 62.7% reduction", a.Text)
}

func TestIOLayout(t *testing.T) {
	s, m := exampleIO(t)
	c := IOLayout(s, m)

	assert.Equal(t, NameIO, c.Name)
	require.Len(t, c.Panels, 1)
	p := c.Panels[0]

	assert.Len(t, p.Categories, 3)
	require.Len(t, p.Series, 2)
	assert.Equal(t, []string{"15.0", "18.0", "12.0"}, []string{p.Series[0].Bars[0].Label, p.Series[0].Bars[1].Label, p.Series[0].Bars[2].Label})
	assert.Equal(t, "7.0", p.Series[1].Bars[0].Label)

	require.Len(t, p.Annotations, 1)
	assert.Equal(t, "Average Improvement: 51.1%", p.Annotations[0].Text)
	assert.Equal(t, AnchorTopRight, p.Annotations[0].Anchor)
}

func TestLayoutsAreDeterministic(t *testing.T) {
	s, m := exampleInteractive(t)
	assert.Equal(t, InteractiveLayout(s, m), InteractiveLayout(s, m))

	in, sm := exampleStarvation(t)
	assert.Equal(t, StarvationLayout(in, sm), StarvationLayout(in, sm))

	ios, iom := exampleIO(t)
	assert.Equal(t, IOLayout(ios, iom), IOLayout(ios, iom))
}

func TestLayoutsDoNotShareCategories(t *testing.T) {
	ios, iom := exampleIO(t)
	c := IOLayout(ios, iom)
	c.Panels[0].Categories[0] = "changed"

	again := IOLayout(ios, iom)
	assert.Equal(t, "I/O Process 0\n(5 tickets)", again.Panels[0].Categories[0])
}

func TestSummary(t *testing.T) {
	_, im := exampleInteractive(t)
	_, sm := exampleStarvation(t)
	_, iom := exampleIO(t)

	t.Run("OneBarPerScenario", func(t *testing.T) {
		c, err := Summary(SummaryInput{Interactive: &im, Starvation: &sm, IO: &iom})
		require.NoError(t, err)

		assert.Equal(t, NameSummary, c.Name)
		require.Len(t, c.Panels, 1)
		p := c.Panels[0]
		assert.True(t, p.ZeroLine)
		require.Len(t, p.Series, 1)

		bars := p.Series[0].Bars
		require.Len(t, bars, 3)
		assert.InDelta(t, im.ImprovementPct, bars[0].Value, 1e-12)
		assert.InDelta(t, sm.ReductionPct, bars[1].Value, 1e-12)
		assert.InDelta(t, iom.ImprovementPct, bars[2].Value, 1e-12)
		assert.Equal(t, "+62.7%", bars[1].Label)
		assert.Equal(t, "+51.1%", bars[2].Label)
		assert.False(t, bars[0].LabelBelow)

		assert.Equal(t, ColorSummaryInteractive, bars[0].Color)
		assert.Equal(t, ColorSummaryStarvation, bars[1].Color)
		assert.Equal(t, ColorSummaryIO, bars[2].Color)
	})

	t.Run("NegativeLabelGoesBelow", func(t *testing.T) {
		worse := metrics.LatencyMetrics{ImprovementPct: -8.3}
		c, err := Summary(SummaryInput{Interactive: &worse, Starvation: &sm, IO: &iom})
		require.NoError(t, err)

		bar := c.Panels[0].Series[0].Bars[0]
		assert.True(t, bar.LabelBelow)
		assert.Equal(t, "-8.3%", bar.Label)
	})

	t.Run("MissingMetricIsIncomplete", func(t *testing.T) {
		_, err := Summary(SummaryInput{Interactive: &im, IO: &iom})
		var ie *IncompleteSummaryError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, []string{metrics.ScenarioStarvation}, ie.Missing)

		_, err = Summary(SummaryInput{})
		require.True(t, errors.As(err, &ie))
		assert.Len(t, ie.Missing, 3)
	})

	t.Run("Deterministic", func(t *testing.T) {
		a, err := Summary(SummaryInput{Interactive: &im, Starvation: &sm, IO: &iom})
		require.NoError(t, err)
		b, err := Summary(SummaryInput{Interactive: &im, Starvation: &sm, IO: &iom})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}
