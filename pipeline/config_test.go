package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neehar-mavuduru/palsviz/metrics"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "palsviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("ParsesEveryScenario", func(t *testing.T) {
		path := writeConfig(t, `
output_dir: charts
format: jpg
dpi: 150
interactive:
  baseline_samples: [5, 12, 8]
  variant_samples: [3, 4, 5]
aging:
  baseline: {dominant: 400, low_priority: 6000}
  variant: {dominant: 400, low_priority: 2000}
io:
  baseline_samples: [15, 18, 12]
  variant_samples: [7, 9, 6]
upload:
  bucket: pals-charts
  object_prefix: nightly
  retry_delay: 500ms
`)
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())

		assert.Equal(t, "charts", cfg.OutputDir)
		assert.Equal(t, "jpg", cfg.Render.Format)
		assert.Equal(t, 150, cfg.Render.DPI)
		assert.Equal(t, 7.0, cfg.Render.PanelWidthInches, "unset geometry keeps defaults")
		assert.Equal(t, []float64{5, 12, 8}, cfg.Interactive.BaselineSamples)
		require.NotNil(t, cfg.Aging.Baseline)
		assert.Equal(t, metrics.FinishTimes{Dominant: 400, LowPriority: 6000}, *cfg.Aging.Baseline)
		assert.Equal(t, "pals-charts", cfg.Upload.Bucket)
		assert.Equal(t, 500*time.Millisecond, cfg.Upload.RetryDelay)
		assert.Equal(t, 3, cfg.Upload.MaxRetries)

		assert.Empty(t, cfg.ApplyDefaults())
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("MalformedYAML", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "interactive: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("RoundTripsExampleConfig", func(t *testing.T) {
		data, err := ExampleConfig().Marshal()
		require.NoError(t, err)

		cfg, err := LoadConfig(writeConfig(t, string(data)))
		require.NoError(t, err)
		assert.Equal(t, ExampleInteractiveBaseline, cfg.Interactive.BaselineSamples)
		assert.Equal(t, ExampleIOVariant, cfg.IO.VariantSamples)
		assert.Empty(t, cfg.ApplyDefaults())
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("FillsOutputDir", func(t *testing.T) {
		cfg := Config{}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
		assert.Equal(t, "png", cfg.Render.Format)
	})

	t.Run("RejectsUnsupportedFormat", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Render.Format = "svg"
		assert.Error(t, cfg.Validate())
	})

	t.Run("SkipsUploadWithoutBucket", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, cfg.Validate())
		assert.Zero(t, cfg.Upload.MaxRetries)
	})
}

func TestConfig_ApplyDefaults(t *testing.T) {
	t.Run("EmptyConfigUsesExamplesEverywhere", func(t *testing.T) {
		cfg := DefaultConfig()
		substituted := cfg.ApplyDefaults()

		assert.Equal(t, []string{metrics.ScenarioInteractive, metrics.ScenarioStarvation, metrics.ScenarioIO}, substituted)
		assert.Equal(t, ExampleInteractiveBaseline, cfg.Interactive.BaselineSamples)
		assert.Equal(t, ExampleAgingVariant, *cfg.Aging.Variant)
		assert.Equal(t, ExampleIOBaseline, cfg.IO.BaselineSamples)
	})

	t.Run("OneMissingSeriesReplacesBoth", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Interactive.BaselineSamples = []float64{1, 2, 3}
		cfg.ApplyDefaults()

		assert.Equal(t, ExampleInteractiveBaseline, cfg.Interactive.BaselineSamples)
		assert.Equal(t, ExampleInteractiveVariant, cfg.Interactive.VariantSamples)
	})

	t.Run("ExplicitFlagOverridesMeasurements", func(t *testing.T) {
		cfg := ExampleConfig()
		cfg.IO = SampleInput{
			BaselineSamples:    []float64{1, 1, 1},
			VariantSamples:     []float64{1, 1, 1},
			UseExampleDefaults: true,
		}
		assert.Equal(t, []string{metrics.ScenarioIO}, cfg.ApplyDefaults())
		assert.Equal(t, ExampleIOBaseline, cfg.IO.BaselineSamples)
		assert.False(t, cfg.IO.UseExampleDefaults)
	})

	t.Run("DoesNotAliasExampleData", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ApplyDefaults()
		cfg.Interactive.BaselineSamples[0] = 999

		assert.Equal(t, 5.0, ExampleInteractiveBaseline[0])
	})
}
