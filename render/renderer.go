// Package render draws chart descriptions into raster image files using gonum/plot.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/neehar-mavuduru/palsviz/chart"
)

// Renderer writes one composite image per chart. It holds no state besides
// its configuration and is safe to reuse.
type Renderer struct {
	config Config
}

// New creates a renderer
func New(config Config) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Renderer{config: config}, nil
}

// Format returns the image format (and file extension) in use
func (r *Renderer) Format() string {
	return r.config.Format
}

// Path returns the artifact path for a chart name inside dir
func (r *Renderer) Path(dir, name string) string {
	return filepath.Join(dir, name+"."+r.config.Format)
}

// Render draws every panel of c side by side into one image at path
func (r *Renderer) Render(c chart.Chart, path string) error {
	if len(c.Panels) == 0 {
		return &RenderError{Chart: c.Name, Path: path, Op: "layout", Err: errors.New("chart has no panels")}
	}

	var buf bytes.Buffer
	if err := r.encode(c, &buf); err != nil {
		return &RenderError{Chart: c.Name, Path: path, Op: "encode", Err: err}
	}

	if err := writeArtifact(path, buf.Bytes()); err != nil {
		return &RenderError{Chart: c.Name, Path: path, Op: "write", Err: err}
	}
	return nil
}

func (r *Renderer) encode(c chart.Chart, w io.Writer) error {
	panelWidth := vg.Length(r.config.PanelWidthInches) * vg.Inch
	width := panelWidth * vg.Length(len(c.Panels))
	height := vg.Length(r.config.HeightInches) * vg.Inch

	plots := make([]*plot.Plot, len(c.Panels))
	for i, panel := range c.Panels {
		p, err := buildPlot(panel, panelWidth)
		if err != nil {
			return fmt.Errorf("panel %d: %w", i, err)
		}
		plots[i] = p
	}

	img := vgimg.NewWith(
		vgimg.UseWH(width, height),
		vgimg.UseDPI(r.config.DPI),
	)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(plots),
		PadX:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{plots}, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[0][i])
	}

	var wt io.WriterTo
	switch r.config.Format {
	case "png":
		wt = vgimg.PngCanvas{Canvas: img}
	case "jpg", "jpeg":
		wt = vgimg.JpegCanvas{Canvas: img}
	case "tif", "tiff":
		wt = vgimg.TiffCanvas{Canvas: img}
	default:
		return fmt.Errorf("unsupported format %q", r.config.Format)
	}

	_, err := wt.WriteTo(w)
	return err
}
