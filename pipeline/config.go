package pipeline

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neehar-mavuduru/palsviz/metrics"
	"github.com/neehar-mavuduru/palsviz/render"
	"github.com/neehar-mavuduru/palsviz/uploader"
)

// DefaultOutputDir is where charts go when no directory is configured
const DefaultOutputDir = "pals_visualizations"

// Config is the full input of one visualization run
type Config struct {
	OutputDir string `yaml:"output_dir"`

	// Image format and geometry sit at the top level of the file
	Render render.Config `yaml:",inline"`

	Interactive SampleInput `yaml:"interactive"`
	Aging       AgingInput  `yaml:"aging"`
	IO          SampleInput `yaml:"io"`

	// Upload is only used when Bucket is set
	Upload uploader.Config `yaml:"upload"`
}

// SampleInput holds the two measured series of a latency scenario
type SampleInput struct {
	BaselineSamples    []float64 `yaml:"baseline_samples,omitempty"`
	VariantSamples     []float64 `yaml:"variant_samples,omitempty"`
	UseExampleDefaults bool      `yaml:"use_example_defaults"`
}

// AgingInput holds the completion times of the starvation scenario
type AgingInput struct {
	Baseline           *metrics.FinishTimes `yaml:"baseline,omitempty"`
	Variant            *metrics.FinishTimes `yaml:"variant,omitempty"`
	UseExampleDefaults bool                 `yaml:"use_example_defaults"`
}

// DefaultConfig returns a configuration with no measurements; ApplyDefaults
// fills every scenario with demonstration values
func DefaultConfig() Config {
	return Config{
		OutputDir: DefaultOutputDir,
		Render:    render.DefaultConfig(),
	}
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks if the configuration is valid and applies defaults where needed
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}

	if err := c.Render.Validate(); err != nil {
		return fmt.Errorf("render config validation failed: %w", err)
	}

	if c.Upload.Bucket != "" {
		if err := c.Upload.Validate(); err != nil {
			return fmt.Errorf("upload config validation failed: %w", err)
		}
	}

	return nil
}

// ApplyDefaults substitutes demonstration values for every scenario that asks
// for them or is missing measurements. A scenario with only one series is
// treated as missing. It returns the scenarios that were substituted.
func (c *Config) ApplyDefaults() []string {
	var substituted []string

	if c.Interactive.needsDefaults() {
		c.Interactive = SampleInput{
			BaselineSamples: clone(ExampleInteractiveBaseline),
			VariantSamples:  clone(ExampleInteractiveVariant),
		}
		substituted = append(substituted, metrics.ScenarioInteractive)
	}

	if c.Aging.UseExampleDefaults || c.Aging.Baseline == nil || c.Aging.Variant == nil {
		baseline, variant := ExampleAgingBaseline, ExampleAgingVariant
		c.Aging = AgingInput{Baseline: &baseline, Variant: &variant}
		substituted = append(substituted, metrics.ScenarioStarvation)
	}

	if c.IO.needsDefaults() {
		c.IO = SampleInput{
			BaselineSamples: clone(ExampleIOBaseline),
			VariantSamples:  clone(ExampleIOVariant),
		}
		substituted = append(substituted, metrics.ScenarioIO)
	}

	for _, s := range substituted {
		log.Printf("[INFO] Using example data for the %s scenario", s)
	}
	return substituted
}

func (s SampleInput) needsDefaults() bool {
	return s.UseExampleDefaults || len(s.BaselineSamples) == 0 || len(s.VariantSamples) == 0
}
