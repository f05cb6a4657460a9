package plot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"neptune/internal/model"
	"neptune/internal/stats"
)

type PleasuresConfig struct {
	Bins    int
	Overlap float64
	Title   string
}

func (c PleasuresConfig) withDefaults() PleasuresConfig {
	if c.Bins <= 0 {
		c.Bins = 40
	}
	if c.Overlap <= 0 || c.Overlap >= 1 {
		c.Overlap = 0.9
	}
	return c
}

// Pleasures renders a ridgeline plot: one histogram silhouette of Col2 per
// Col1 value, stacked top to bottom with overlap, white lines on black.
func Pleasures(t model.Table, cfg PleasuresConfig, outPath string) error {
	cfg = cfg.withDefaults()

	groups := stats.GroupBySorted(t)
	all := make([]float64, 0, t.Len())
	for _, g := range groups {
		all = append(all, g.Values...)
	}
	if len(all) == 0 {
		return fmt.Errorf("table has no %s values to bin", t.Col2.Name)
	}
	min, max := floats.Min(all), floats.Max(all)
	if max == min {
		max = min + 1
	}

	histograms := make([][]float64, len(groups))
	peak := 0.0
	for i, g := range groups {
		counts, err := stats.Histogram(g.Values, cfg.Bins, min, max)
		if err != nil {
			return err
		}
		histograms[i] = counts
		if m := floats.Max(counts); m > peak {
			peak = m
		}
	}
	if peak == 0 {
		peak = 1
	}

	p := plot.New()
	p.Title.Text = cfg.Title
	if cfg.Title == "" {
		p.Title.Text = fmt.Sprintf("%s by %s", t.Col2.Name, t.Col1.Name)
	}
	p.BackgroundColor = color.Black
	p.Title.TextStyle.Color = color.White
	p.HideAxes()

	// First group at the top; later ridges paint over the ones behind.
	step := 1 - cfg.Overlap
	binWidth := (max - min) / float64(cfg.Bins)
	for i, counts := range histograms {
		baseline := -float64(i) * step
		xys := make(plotter.XYs, 0, len(counts)+2)
		xys = append(xys, plotter.XY{X: min, Y: baseline})
		for b, c := range counts {
			center := min + (float64(b)+0.5)*binWidth
			xys = append(xys, plotter.XY{X: center, Y: baseline + c/peak})
		}
		xys = append(xys, plotter.XY{X: max, Y: baseline})

		ridge, err := plotter.NewPolygon(xys)
		if err != nil {
			return err
		}
		ridge.Color = color.Black
		ridge.LineStyle.Color = color.White
		ridge.LineStyle.Width = vg.Points(1)
		p.Add(ridge)
	}

	return p.Save(8*vg.Inch, 10.5*vg.Inch, outPath)
}
