package stats

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"neptune/internal/model"
)

// Group is the Col2 values sharing one Col1 value, in row order.
type Group struct {
	Key    float64
	Values []float64
}

// GroupBySorted buckets rows by Col1 value, groups ordered by key
// ascending. Rows with an absent Col1 are dropped; absent Col2 values are
// dropped within their group.
func GroupBySorted(t model.Table) []Group {
	byKey := make(map[float64][]float64)
	keys := make([]float64, 0)
	for i := 0; i < t.Len(); i++ {
		k := t.Col1.Values[i]
		if !k.Valid {
			continue
		}
		key := k.Float64
		if _, seen := byKey[key]; !seen {
			keys = append(keys, key)
			byKey[key] = nil
		}
		if v := t.Col2.Values[i]; v.Valid {
			byKey[key] = append(byKey[key], v.Float64)
		}
	}
	sort.Float64s(keys)

	groups := make([]Group, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, Group{Key: k, Values: byKey[k]})
	}
	return groups
}

// Histogram counts values into bins of equal width over [min, max].
// Values outside the range are ignored; max itself lands in the last bin.
func Histogram(values []float64, bins int, min, max float64) ([]float64, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("histogram bins must be > 0, got %d", bins)
	}
	if max <= min {
		return nil, fmt.Errorf("histogram range is empty: [%g, %g]", min, max)
	}
	counts := make([]float64, bins)
	width := (max - min) / float64(bins)
	for _, v := range values {
		if v < min || v > max {
			continue
		}
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	return counts, nil
}

// Grid is a 2D counting grid over the valid row pairs of a table.
// Counts[yi][xi] is the number of rows landing in that cell.
type Grid struct {
	XMin, XMax float64
	YMin, YMax float64
	Counts     [][]float64
}

func (g Grid) XBins() int {
	if len(g.Counts) == 0 {
		return 0
	}
	return len(g.Counts[0])
}

func (g Grid) YBins() int {
	return len(g.Counts)
}

// XCenter returns the midpoint of x-bin i.
func (g Grid) XCenter(i int) float64 {
	width := (g.XMax - g.XMin) / float64(g.XBins())
	return g.XMin + (float64(i)+0.5)*width
}

func (g Grid) YCenter(j int) float64 {
	height := (g.YMax - g.YMin) / float64(g.YBins())
	return g.YMin + (float64(j)+0.5)*height
}

func (g Grid) MaxCount() float64 {
	max := 0.0
	for _, row := range g.Counts {
		for _, c := range row {
			if c > max {
				max = c
			}
		}
	}
	return max
}

// DensityGrid bins the rows where both columns are valid into an
// xBins x yBins counting grid spanning the observed value ranges.
func DensityGrid(t model.Table, xBins, yBins int) (Grid, error) {
	if xBins <= 0 || yBins <= 0 {
		return Grid{}, fmt.Errorf("grid bins must be > 0, got %dx%d", xBins, yBins)
	}

	xs := make([]float64, 0, t.Len())
	ys := make([]float64, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		x, y := t.Col1.Values[i], t.Col2.Values[i]
		if !x.Valid || !y.Valid {
			continue
		}
		xs = append(xs, x.Float64)
		ys = append(ys, y.Float64)
	}
	if len(xs) == 0 {
		return Grid{}, fmt.Errorf("table has no rows with both %s and %s present", t.Col1.Name, t.Col2.Name)
	}

	grid := Grid{
		XMin:   floats.Min(xs),
		XMax:   floats.Max(xs),
		YMin:   floats.Min(ys),
		YMax:   floats.Max(ys),
		Counts: make([][]float64, yBins),
	}
	// Degenerate ranges still need a non-zero cell width.
	if grid.XMax == grid.XMin {
		grid.XMax = grid.XMin + 1
	}
	if grid.YMax == grid.YMin {
		grid.YMax = grid.YMin + 1
	}
	for j := range grid.Counts {
		grid.Counts[j] = make([]float64, xBins)
	}

	xWidth := (grid.XMax - grid.XMin) / float64(xBins)
	yWidth := (grid.YMax - grid.YMin) / float64(yBins)
	for i := range xs {
		xi := int((xs[i] - grid.XMin) / xWidth)
		if xi >= xBins {
			xi = xBins - 1
		}
		yi := int((ys[i] - grid.YMin) / yWidth)
		if yi >= yBins {
			yi = yBins - 1
		}
		grid.Counts[yi][xi]++
	}
	return grid, nil
}
