// Package plot renders the finishing-time histogram as a PNG bar chart.
package plot

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/baditaflorin/monegros/internal/core/domain"
	"github.com/baditaflorin/monegros/internal/ports"
)

// Chart geometry in pixels.
const (
	SlotWidth = 48
	BarWidth  = 36
	Margins   = 120
	MinWidth  = 480
	Height    = 400
)

// dpi is the resolution vgimg rasterizes PNG output at.
const dpi = 96

// BarColor fills every histogram bar.
var BarColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// PNGRenderer draws bar charts with gonum/plot.
type PNGRenderer struct{}

// NewPNGRenderer creates a renderer.
func NewPNGRenderer() ports.HistogramRenderer {
	return &PNGRenderer{}
}

// Size returns the image dimensions used for n bars.
func Size(n int) (width, height int) {
	width = Margins + n*SlotWidth
	if width < MinWidth {
		width = MinWidth
	}
	return width, Height
}

func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / dpi
}

// Render writes the chart as PNG to w.
func (r *PNGRenderer) Render(w io.Writer, title string, counts []domain.TimeCount) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (HH:MM)"
	p.Y.Label.Text = "Number of Bikers"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	if len(counts) > 0 {
		values := make(plotter.Values, len(counts))
		labels := make([]string, len(counts))
		for i, c := range counts {
			values[i] = float64(c.Count)
			labels[i] = c.Group
		}

		bars, err := plotter.NewBarChart(values, pixels(BarWidth))
		if err != nil {
			return fmt.Errorf("build bar chart: %w", err)
		}
		bars.Color = BarColor
		bars.LineStyle.Width = 0
		p.Add(bars)
		p.NominalX(labels...)
	}

	width, height := Size(len(counts))
	wt, err := p.WriterTo(pixels(width), pixels(height), "png")
	if err != nil {
		return fmt.Errorf("create png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SaveFile renders counts to path, creating the parent directory.
func SaveFile(r ports.HistogramRenderer, path, title string, counts []domain.TimeCount) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	if err := r.Render(f, title, counts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
