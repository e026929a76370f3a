package render

import (
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neehar-mavuduru/palsviz/chart"
	"github.com/neehar-mavuduru/palsviz/metrics"
)

func exampleCharts(t *testing.T) []chart.Chart {
	t.Helper()

	interactive, err := metrics.NewSampleSet(metrics.ScenarioInteractive,
		[]float64{5, 12, 8, 15, 20, 7, 18, 10, 14, 9, 16, 11, 13, 8, 19, 6, 17, 12, 10, 15},
		[]float64{3, 4, 5, 4, 6, 5, 7, 5, 4, 6, 5, 4, 6, 5, 7, 4, 5, 6, 5, 4})
	require.NoError(t, err)
	interactiveMetrics, err := metrics.Latency(interactive)
	require.NoError(t, err)

	aging := metrics.StarvationInput{
		Baseline: metrics.FinishTimes{Dominant: 500, LowPriority: 7500},
		Variant:  metrics.FinishTimes{Dominant: 500, LowPriority: 2800},
	}
	agingMetrics, err := metrics.Starvation(aging)
	require.NoError(t, err)

	io, err := metrics.NewIOSampleSet([]float64{15, 18, 12}, []float64{7, 9, 6})
	require.NoError(t, err)
	ioMetrics, err := metrics.Latency(io)
	require.NoError(t, err)

	summary, err := chart.Summary(chart.SummaryInput{
		Interactive: &interactiveMetrics,
		Starvation:  &agingMetrics,
		IO:          &ioMetrics,
	})
	require.NoError(t, err)

	return []chart.Chart{
		chart.InteractiveLayout(interactive, interactiveMetrics),
		chart.StarvationLayout(aging, agingMetrics),
		chart.IOLayout(io, ioMetrics),
		summary,
	}
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.DPI = 40
	return cfg
}

func decodeSize(t *testing.T, path string) image.Config {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	return cfg
}

func TestConfigValidate(t *testing.T) {
	t.Run("AppliesDefaults", func(t *testing.T) {
		cfg := Config{}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("NormalizesFormat", func(t *testing.T) {
		cfg := Config{Format: ".PNG"}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "png", cfg.Format)
	})

	t.Run("RejectsVectorFormats", func(t *testing.T) {
		cfg := Config{Format: "svg"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("RejectsHugePanels", func(t *testing.T) {
		cfg := Config{DPI: 5000}
		assert.Error(t, cfg.Validate())
	})
}

func TestRenderer(t *testing.T) {
	t.Run("WritesEveryExampleChart", func(t *testing.T) {
		dir := t.TempDir()
		r, err := New(smallConfig())
		require.NoError(t, err)

		sizes := make(map[string]image.Config)
		for _, c := range exampleCharts(t) {
			path := r.Path(dir, c.Name)
			require.NoError(t, r.Render(c, path), c.Name)
			sizes[c.Name] = decodeSize(t, path)
		}

		interactive := sizes[chart.NameInteractive]
		aging := sizes[chart.NameStarvation]
		summary := sizes[chart.NameSummary]

		assert.Greater(t, interactive.Width, summary.Width, "two panels are wider than one")
		assert.Greater(t, aging.Width, summary.Width)
		assert.Equal(t, interactive.Height, summary.Height)
		assert.Equal(t, 7*40, summary.Width)
	})

	t.Run("PathUsesFormatExtension", func(t *testing.T) {
		cfg := smallConfig()
		cfg.Format = "jpg"
		r, err := New(cfg)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("out", "io_latency.jpg"), r.Path("out", chart.NameIO))
	})

	t.Run("EncodesJPEG", func(t *testing.T) {
		cfg := smallConfig()
		cfg.Format = "jpeg"
		r, err := New(cfg)
		require.NoError(t, err)

		c := exampleCharts(t)[3]
		path := r.Path(t.TempDir(), c.Name)
		require.NoError(t, r.Render(c, path))
		assert.Equal(t, 7*40, decodeSize(t, path).Width)
	})

	t.Run("MissingDirectoryFails", func(t *testing.T) {
		r, err := New(smallConfig())
		require.NoError(t, err)

		dir := filepath.Join(t.TempDir(), "missing")
		c := exampleCharts(t)[2]
		err = r.Render(c, r.Path(dir, c.Name))
		require.Error(t, err)

		var renderErr *RenderError
		require.True(t, errors.As(err, &renderErr))
		assert.Equal(t, "write", renderErr.Op)
		assert.Equal(t, chart.NameIO, renderErr.Chart)
		assert.NoDirExists(t, dir, "renderer must not create directories")
	})

	t.Run("FailureLeavesNoPartialFiles", func(t *testing.T) {
		dir := t.TempDir()
		r, err := New(smallConfig())
		require.NoError(t, err)

		bad := chart.Chart{Name: "empty"}
		err = r.Render(bad, r.Path(dir, bad.Name))
		require.Error(t, err)

		var renderErr *RenderError
		require.True(t, errors.As(err, &renderErr))
		assert.Equal(t, "layout", renderErr.Op)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("OverwritesExistingArtifact", func(t *testing.T) {
		dir := t.TempDir()
		r, err := New(smallConfig())
		require.NoError(t, err)

		c := exampleCharts(t)[3]
		path := r.Path(dir, c.Name)
		require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))
		require.NoError(t, r.Render(c, path))
		assert.Equal(t, 7*40, decodeSize(t, path).Width)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
