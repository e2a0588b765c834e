// Package chart renders the sampled distribution of a statistic as a histogram
// with the reference value marked.
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/KaramelBytes/onomast-cli/internal/utils"
)

// DefaultFormats are written when Histogram.Formats is empty.
var DefaultFormats = []string{"jpg", "tif"}

var red = color.RGBA{R: 220, A: 255}

// Histogram describes one figure.
type Histogram struct {
	Title  string
	XLabel string
	// Values are the sampled statistic values, one per subset.
	Values []int
	Target int
	// TailLabel annotates the tail to the right of Target, e.g. "12.5%".
	TailLabel string
	// Mode is the most frequent value, used to place annotations.
	Mode int

	SampleLabel    string
	ReferenceLabel string

	Width, Height vg.Length
	DPI           int
	Formats       []string
}

// Build assembles the plot without rendering it.
func (h Histogram) Build() (*plot.Plot, error) {
	if len(h.Values) == 0 {
		return nil, fmt.Errorf("histogram %q: no values", h.XLabel)
	}
	lo, hi := slices.Min(h.Values), slices.Max(h.Values)

	freq := make(map[int]int, hi-lo+1)
	for _, v := range h.Values {
		freq[v]++
	}
	bins := make([]plotter.HistogramBin, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		bins = append(bins, plotter.HistogramBin{Min: float64(v) - 0.5, Max: float64(v) + 0.5, Weight: float64(freq[v])})
	}
	hist := &plotter.Histogram{
		Bins:      bins,
		Width:     1,
		FillColor: color.RGBA{R: 31, G: 119, B: 180, A: 255},
		LineStyle: plotter.DefaultLineStyle,
	}
	hist.LineStyle.Width = vg.Points(0.5)

	modeCount := float64(freq[h.Mode])
	right := float64(hi) + 5
	target := float64(h.Target)

	marker, err := plotter.NewLine(plotter.XYs{{X: target, Y: 0}, {X: target, Y: modeCount * 1.05}})
	if err != nil {
		return nil, fmt.Errorf("target line: %w", err)
	}
	marker.LineStyle.Color = red
	marker.LineStyle.Width = vg.Points(1)

	tail, err := plotter.NewLine(plotter.XYs{{X: target, Y: 0}, {X: max(right, target), Y: 0}})
	if err != nil {
		return nil, fmt.Errorf("tail line: %w", err)
	}
	tail.LineStyle.Color = red
	tail.LineStyle.Width = vg.Points(3)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: []plotter.XY{
			{X: target + (right-target)/2, Y: modeCount * 0.02},
			{X: target, Y: modeCount * 0.75},
		},
		Labels: []string{h.TailLabel, strconv.Itoa(h.Target)},
	})
	if err != nil {
		return nil, fmt.Errorf("labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = red
	}
	labels.Offset = vg.Point{X: vg.Points(3)}

	p := plot.New()
	p.Title.Text = h.Title
	p.X.Label.Text = h.XLabel
	p.Y.Label.Text = "Count"
	p.Add(hist, marker, tail, labels)
	p.X.Min = float64(min(lo, h.Target)) - 5
	p.X.Max = max(right, target+5)
	p.Y.Min = 0
	p.Legend.Add(orDefault(h.SampleLabel, "seals and bullae"), hist)
	p.Legend.Add(orDefault(h.ReferenceLabel, "handles"), marker)
	p.Legend.Top = true
	return p, nil
}

// Save renders the figure once per format into dir, naming files after the
// x-axis label, and returns the written paths.
func (h Histogram) Save(dir string) ([]string, error) {
	p, err := h.Build()
	if err != nil {
		return nil, err
	}
	w, ht := h.Width, h.Height
	if w == 0 {
		w = 6 * vg.Inch
	}
	if ht == 0 {
		ht = 4 * vg.Inch
	}
	dpi := h.DPI
	if dpi <= 0 {
		dpi = 300
	}
	c := vgimg.NewWith(vgimg.UseWH(w, ht), vgimg.UseDPI(dpi))
	p.Draw(draw.New(c))

	formats := h.Formats
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("ensure output dir: %w", err)
	}
	var written []string
	for _, f := range formats {
		var buf bytes.Buffer
		if err := encode(&buf, c, f); err != nil {
			return written, err
		}
		path := filepath.Join(dir, h.XLabel+"."+strings.ToLower(f))
		if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func encode(buf *bytes.Buffer, c *vgimg.Canvas, format string) error {
	var err error
	switch strings.ToLower(format) {
	case "jpg", "jpeg":
		_, err = vgimg.JpegCanvas{Canvas: c}.WriteTo(buf)
	case "tif", "tiff":
		_, err = vgimg.TiffCanvas{Canvas: c}.WriteTo(buf)
	case "png":
		_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(buf)
	default:
		return fmt.Errorf("unsupported image format: %s (use jpg, tif or png)", format)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
