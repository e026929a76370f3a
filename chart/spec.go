// Package chart turns scenario metrics into declarative chart descriptions.
//
// A Chart is plain data: panels of grouped bars with labels, error bars and
// annotation text. Nothing here draws; the render package consumes a Chart
// exactly once. Builders are deterministic, so the same input always yields
// an equal Chart.
package chart

import "image/color"

// Artifact names, one per rendered chart
const (
	NameInteractive = "interactive_latency"
	NameStarvation  = "aging_comparison"
	NameIO          = "io_latency"
	NameSummary     = "summary_improvements"
)

// Series colors. Baseline and variant keep the same color on every chart.
var (
	ColorBaseline = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	ColorVariant  = color.RGBA{R: 0x27, G: 0xae, B: 0x60, A: 0xff}

	// Summary bars, in scenario order
	ColorSummaryInteractive = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}
	ColorSummaryStarvation  = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	ColorSummaryIO          = color.RGBA{R: 0xf3, G: 0x9c, B: 0x12, A: 0xff}
)

// Series display names
const (
	LabelBaseline = "Baseline"
	LabelVariant  = "PALS"
)

// Chart is one composite image: its panels are laid out left to right
type Chart struct {
	Name   string
	Panels []Panel
}

// Panel is one set of axes with grouped bars
type Panel struct {
	Title  string
	XLabel string
	YLabel string

	// Categories are the x tick labels, one per bar group
	Categories []string
	// TickStride shows every n-th category label (0 or 1 shows all)
	TickStride int

	// Series are drawn side by side within each group; every series has
	// one bar per category
	Series []Series

	Annotations []Annotation

	ZeroLine bool // Horizontal reference line at y=0
	Legend   bool
}

// Series is one scheduler's (or scenario's) bars within a panel
type Series struct {
	Name  string
	Color color.RGBA
	Bars  []Bar
}

// Bar is a single bar
type Bar struct {
	Value      float64
	Error      float64    // Symmetric error bar half-height, 0 for none
	Label      string     // Value label text, empty for none
	LabelBelow bool       // Place the label under the bar end instead of above it
	Color      color.RGBA // Overrides the series color when A != 0
}

// Anchor selects the coordinate system of an annotation
type Anchor int

const (
	// AnchorData places the annotation at (X, Y) in data coordinates, centered above the point
	AnchorData Anchor = iota
	// AnchorTopRight places the annotation in the panel's top-right corner
	AnchorTopRight
)

// Annotation is free text drawn on a panel. Text may span several lines.
type Annotation struct {
	Text   string
	Anchor Anchor
	X, Y   float64 // Used with AnchorData only
	Boxed  bool    // Draw on a highlighted box
}

// FillColor returns the color the bar is drawn with
func (b Bar) FillColor(series color.RGBA) color.RGBA {
	if b.Color.A != 0 {
		return b.Color
	}
	return series
}

// VisibleTicks returns the indexes of the categories whose label is shown
func (p Panel) VisibleTicks() []int {
	stride := p.TickStride
	if stride <= 0 {
		stride = 1
	}
	ticks := make([]int, 0, (len(p.Categories)+stride-1)/stride)
	for i := 0; i < len(p.Categories); i += stride {
		ticks = append(ticks, i)
	}
	return ticks
}
