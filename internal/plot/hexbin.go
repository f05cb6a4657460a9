// Package plot renders tables as PNG figures: a density heatmap standing in
// for a hexbin jointplot, and a ridgeline plot of per-group histograms.
package plot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"neptune/internal/model"
	"neptune/internal/stats"
)

type HexbinConfig struct {
	XBins int
	YBins int
	Title string
}

func (c HexbinConfig) withDefaults() HexbinConfig {
	if c.XBins <= 0 {
		c.XBins = 40
	}
	if c.YBins <= 0 {
		c.YBins = 40
	}
	return c
}

// densityGrid adapts a stats.Grid to the heatmap's grid interface.
type densityGrid struct {
	grid stats.Grid
}

func (d densityGrid) Dims() (int, int) {
	return d.grid.XBins(), d.grid.YBins()
}

func (d densityGrid) Z(c, r int) float64 {
	return d.grid.Counts[r][c]
}

func (d densityGrid) X(c int) float64 {
	return d.grid.XCenter(c)
}

func (d densityGrid) Y(r int) float64 {
	return d.grid.YCenter(r)
}

// Hexbin renders the joint density of Col1 (x) against Col2 (y) and saves
// it as a PNG.
func Hexbin(t model.Table, cfg HexbinConfig, outPath string) error {
	cfg = cfg.withDefaults()

	grid, err := stats.DensityGrid(t, cfg.XBins, cfg.YBins)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = cfg.Title
	if cfg.Title == "" {
		p.Title.Text = fmt.Sprintf("%s by %s", t.Col2.Name, t.Col1.Name)
	}
	p.X.Label.Text = t.Col1.Name
	p.Y.Label.Text = t.Col2.Name

	heatMap := plotter.NewHeatMap(densityGrid{grid: grid}, palette.Heat(16, 1))
	p.Add(heatMap)

	return p.Save(6*vg.Inch, 4*vg.Inch, outPath)
}
