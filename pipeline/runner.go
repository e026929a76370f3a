// Package pipeline runs the three benchmark scenarios through metrics,
// chart layout and rendering, and aggregates them into the summary chart.
package pipeline

import (
	"fmt"
	"log"

	"github.com/neehar-mavuduru/palsviz/chart"
	"github.com/neehar-mavuduru/palsviz/metrics"
)

// Renderer persists a chart as an image file
type Renderer interface {
	Render(c chart.Chart, path string) error
	Path(dir, name string) string
}

// Artifact is the outcome of producing one chart file
type Artifact struct {
	Name string
	Path string
	Err  error
}

// Report lists every artifact of a run in production order
type Report struct {
	OutputDir string
	Artifacts []Artifact
}

// Written returns the paths of the artifacts that were produced
func (r Report) Written() []string {
	var paths []string
	for _, a := range r.Artifacts {
		if a.Err == nil {
			paths = append(paths, a.Path)
		}
	}
	return paths
}

// Failed returns the artifacts that could not be produced
func (r Report) Failed() []Artifact {
	var failed []Artifact
	for _, a := range r.Artifacts {
		if a.Err != nil {
			failed = append(failed, a)
		}
	}
	return failed
}

// Err summarizes the failures of a run, or returns nil
func (r Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d charts failed, first: %s: %w", len(failed), len(r.Artifacts), failed[0].Name, failed[0].Err)
}

// Runner produces the four charts of a run. It never creates the output
// directory; the caller does.
type Runner struct {
	renderer  Renderer
	outputDir string
}

// NewRunner creates a runner writing into outputDir
func NewRunner(renderer Renderer, outputDir string) *Runner {
	return &Runner{renderer: renderer, outputDir: outputDir}
}

// Run processes interactive, starvation and I/O in order, then the summary.
// A failing scenario is recorded and the remaining ones still run; the
// summary fails when any scenario metric is missing.
func (r *Runner) Run(cfg Config) Report {
	report := Report{OutputDir: r.outputDir}
	var summary chart.SummaryInput

	// Interactive
	name := chart.NameInteractive
	if s, m, err := latency(metrics.ScenarioInteractive, cfg.Interactive, false); err != nil {
		report.Artifacts = append(report.Artifacts, r.fail(name, err))
	} else {
		summary.Interactive = &m
		report.Artifacts = append(report.Artifacts, r.render(chart.InteractiveLayout(s, m)))
	}

	// Starvation
	name = chart.NameStarvation
	if in, err := starvationInput(cfg.Aging); err != nil {
		report.Artifacts = append(report.Artifacts, r.fail(name, err))
	} else if m, err := metrics.Starvation(in); err != nil {
		report.Artifacts = append(report.Artifacts, r.fail(name, err))
	} else {
		summary.Starvation = &m
		report.Artifacts = append(report.Artifacts, r.render(chart.StarvationLayout(in, m)))
	}

	// I/O
	name = chart.NameIO
	if s, m, err := latency(metrics.ScenarioIO, cfg.IO, true); err != nil {
		report.Artifacts = append(report.Artifacts, r.fail(name, err))
	} else {
		summary.IO = &m
		report.Artifacts = append(report.Artifacts, r.render(chart.IOLayout(s, m)))
	}

	// Summary
	if c, err := chart.Summary(summary); err != nil {
		report.Artifacts = append(report.Artifacts, r.fail(chart.NameSummary, err))
	} else {
		report.Artifacts = append(report.Artifacts, r.render(c))
	}

	return report
}

func (r *Runner) render(c chart.Chart) Artifact {
	path := r.renderer.Path(r.outputDir, c.Name)
	if err := r.renderer.Render(c, path); err != nil {
		return r.fail(c.Name, err)
	}
	log.Printf("[INFO] Saved %s", path)
	return Artifact{Name: c.Name, Path: path}
}

func (r *Runner) fail(name string, err error) Artifact {
	log.Printf("[ERROR] Failed to produce %s: %v", name, err)
	return Artifact{Name: name, Path: r.renderer.Path(r.outputDir, name), Err: err}
}

func latency(scenario string, in SampleInput, io bool) (metrics.SampleSet, metrics.LatencyMetrics, error) {
	var (
		s   metrics.SampleSet
		err error
	)
	if io {
		s, err = metrics.NewIOSampleSet(in.BaselineSamples, in.VariantSamples)
	} else {
		s, err = metrics.NewSampleSet(scenario, in.BaselineSamples, in.VariantSamples)
	}
	if err != nil {
		return s, metrics.LatencyMetrics{}, err
	}

	m, err := metrics.Latency(s)
	return s, m, err
}

func starvationInput(in AgingInput) (metrics.StarvationInput, error) {
	if in.Baseline == nil {
		return metrics.StarvationInput{}, &metrics.InputShapeError{Scenario: metrics.ScenarioStarvation, Field: "baseline"}
	}
	if in.Variant == nil {
		return metrics.StarvationInput{}, &metrics.InputShapeError{Scenario: metrics.ScenarioStarvation, Field: "variant"}
	}
	return metrics.StarvationInput{Baseline: *in.Baseline, Variant: *in.Variant}, nil
}
