package render

import (
	"fmt"
	"image/color"
	"math"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/neehar-mavuduru/palsviz/chart"
)

const (
	// Headroom above the tallest bar for value labels and annotations
	yHeadroom = 1.25

	groupWidth  = 0.7
	singleWidth = 0.6
)

var (
	gridColor  = color.Gray{Y: 200}
	errorColor = color.Gray{Y: 40}
	// Semi-transparent highlight behind boxed annotations
	highlightColor = color.NRGBA{R: 255, G: 255, B: 0, A: 110}
)

// buildPlot turns one panel description into a gonum plot
func buildPlot(panel chart.Panel, width vg.Length) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panel.Title
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.Title.TextStyle.Font.Size = vg.Points(13)
	p.X.Label.Text = panel.XLabel
	p.Y.Label.Text = panel.YLabel
	p.X.Label.TextStyle.Font.Weight = xfont.WeightBold
	p.Y.Label.TextStyle.Font.Weight = xfont.WeightBold

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = gridColor
	grid.Horizontal.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(grid)

	nSeries := len(panel.Series)
	barWidth := groupWidth / float64(max(nSeries, 1))
	if nSeries == 1 {
		barWidth = singleWidth
	}

	labelStyle := p.Y.Label.TextStyle
	labelStyle.Font.Weight = xfont.WeightBold
	labelStyle.Font.Size = vg.Points(9)
	labelStyle.XAlign = text.XCenter

	var (
		above, below            plotter.XYLabels
		errs                    errorPoints
		yMin, yMax              float64
		hasErrors, anyNonFinite bool
	)

	for s, series := range panel.Series {
		offset := (float64(s) - float64(nSeries-1)/2) * barWidth
		b := &bars{
			width:   barWidth,
			outline: draw.LineStyle{Color: color.Black, Width: vg.Points(0.6)},
			legend:  series.Color,
		}

		for i, bar := range series.Bars {
			if math.IsNaN(bar.Value) || math.IsInf(bar.Value, 0) {
				anyNonFinite = true
				continue
			}
			x := float64(i) + offset
			b.xs = append(b.xs, x)
			b.values = append(b.values, bar.Value)
			b.colors = append(b.colors, bar.FillColor(series.Color))

			top := bar.Value
			if bar.Error > 0 {
				hasErrors = true
				errs.XYs = append(errs.XYs, plotter.XY{X: x, Y: bar.Value})
				errs.YErrors = append(errs.YErrors, struct{ Low, High float64 }{bar.Error, bar.Error})
				top += bar.Error
			}
			yMax = math.Max(yMax, top)
			yMin = math.Min(yMin, bar.Value)

			if bar.Label == "" {
				continue
			}
			if bar.LabelBelow {
				below.XYs = append(below.XYs, plotter.XY{X: x, Y: bar.Value})
				below.Labels = append(below.Labels, bar.Label)
			} else {
				above.XYs = append(above.XYs, plotter.XY{X: x, Y: top})
				above.Labels = append(above.Labels, bar.Label)
			}
		}

		p.Add(b)
		if panel.Legend {
			p.Legend.Add(series.Name, b)
		}
	}
	if anyNonFinite {
		return nil, fmt.Errorf("panel %q has non-finite bar values", panel.Title)
	}

	if hasErrors {
		eb, err := plotter.NewYErrorBars(errs)
		if err != nil {
			return nil, fmt.Errorf("failed to build error bars: %w", err)
		}
		eb.Color = errorColor
		eb.Width = vg.Points(1)
		eb.CapWidth = width / 40
		p.Add(eb)
	}

	if panel.ZeroLine {
		zero := plotter.NewFunction(func(float64) float64 { return 0 })
		zero.Color = color.Black
		zero.Width = vg.Points(0.8)
		p.Add(zero)
	}

	if err := addLabels(p, above, labelStyle, text.YBottom, vg.Points(3)); err != nil {
		return nil, err
	}
	if err := addLabels(p, below, labelStyle, text.YTop, -vg.Points(3)); err != nil {
		return nil, err
	}

	annotationStyle := p.Y.Label.TextStyle
	annotationStyle.Font.Size = vg.Points(10)
	annotationStyle.Font.Weight = xfont.WeightBold
	if len(panel.Annotations) > 0 {
		p.Add(&annotations{items: panel.Annotations, style: annotationStyle})
	}

	ticks := make([]plot.Tick, 0, len(panel.Categories))
	for _, i := range panel.VisibleTicks() {
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: panel.Categories[i]})
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)

	p.X.Min = -0.5
	p.X.Max = float64(max(len(panel.Categories), 1)) - 0.5

	if yMax <= 0 && yMin >= 0 {
		yMax = 1
	}
	p.Y.Max = yMax * yHeadroom
	p.Y.Min = yMin * yHeadroom

	p.Legend.Top = true
	p.Legend.Padding = vg.Millimeter

	return p, nil
}

func addLabels(p *plot.Plot, l plotter.XYLabels, base text.Style, align text.YAlignment, dy vg.Length) error {
	if len(l.Labels) == 0 {
		return nil
	}
	labels, err := plotter.NewLabels(l)
	if err != nil {
		return fmt.Errorf("failed to build value labels: %w", err)
	}
	base.YAlign = align
	for i := range labels.TextStyle {
		labels.TextStyle[i] = base
	}
	labels.Offset = vg.Point{Y: dy}
	p.Add(labels)
	return nil
}

// errorPoints feeds symmetric error bars to plotter.NewYErrorBars
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// bars draws filled rectangles from zero with widths in data units
type bars struct {
	xs      []float64
	values  []float64
	colors  []color.RGBA
	width   float64
	outline draw.LineStyle
	legend  color.RGBA
}

func (b *bars) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	for i, v := range b.values {
		x0, x1 := trX(b.xs[i]-b.width/2), trX(b.xs[i]+b.width/2)
		y0, y1 := trY(0), trY(v)
		pts := []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
		c.FillPolygon(b.colors[i], c.ClipPolygonXY(pts))
		outline := append(pts, pts[0])
		c.StrokeLines(b.outline, c.ClipLinesXY(outline)...)
	}
}

func (b *bars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	for i, x := range b.xs {
		xmin = math.Min(xmin, x-b.width/2)
		xmax = math.Max(xmax, x+b.width/2)
		ymin = math.Min(ymin, b.values[i])
		ymax = math.Max(ymax, b.values[i])
	}
	if len(b.xs) == 0 {
		xmin, xmax = 0, 0
	}
	return xmin, xmax, ymin, ymax
}

func (b *bars) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(b.legend, c.ClipPolygonY(pts))
	c.StrokeLines(b.outline, append(pts, pts[0]))
}

// annotations draws free text either at a data coordinate or pinned to the
// top-right corner of the plotting area
type annotations struct {
	items []chart.Annotation
	style text.Style
}

func (a *annotations) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	pad := vg.Points(4)

	for _, item := range a.items {
		sty := a.style
		var pt vg.Point
		switch item.Anchor {
		case chart.AnchorTopRight:
			sty.XAlign = text.XRight
			sty.YAlign = text.YTop
			pt = vg.Point{X: c.Max.X - 2*pad, Y: c.Max.Y - 2*pad}
		default:
			sty.XAlign = text.XCenter
			sty.YAlign = text.YBottom
			// Clear the value label drawn at the same point
			pt = vg.Point{X: trX(item.X), Y: trY(item.Y) + 5*pad}
		}

		if item.Boxed {
			w, h := sty.Width(item.Text), sty.Height(item.Text)
			minX := pt.X + w*vg.Length(sty.XAlign) - pad
			minY := pt.Y + h*vg.Length(sty.YAlign) - pad
			maxX, maxY := minX+w+2*pad, minY+h+2*pad
			box := []vg.Point{{X: minX, Y: minY}, {X: maxX, Y: minY}, {X: maxX, Y: maxY}, {X: minX, Y: maxY}}
			c.FillPolygon(highlightColor, box)
			c.StrokeLines(draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)}, append(box, box[0]))
		}
		c.FillText(sty, pt, item.Text)
	}
}
