// Package stats provides the column summaries, groupings, and binning that
// back table reports and plots.
package stats

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"neptune/internal/model"
)

type ColumnStats struct {
	Name   string  `json:"name"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Valid  int     `json:"valid"`
	Absent int     `json:"absent"`
}

// Summarize reports min/mean/max over the valid values of a column.
func Summarize(col model.Column) (ColumnStats, error) {
	values := ValidValues(col)
	absent := len(col.Values) - len(values)
	if len(values) == 0 {
		return ColumnStats{}, fmt.Errorf("column %s has no valid values", col.Name)
	}
	return ColumnStats{
		Name:   col.Name,
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		Mean:   stat.Mean(values, nil),
		Valid:  len(values),
		Absent: absent,
	}, nil
}

// ValidValues extracts the present values of a column, preserving order.
func ValidValues(col model.Column) []float64 {
	values := make([]float64, 0, len(col.Values))
	for _, v := range col.Values {
		if v.Valid {
			values = append(values, v.Float64)
		}
	}
	return values
}
