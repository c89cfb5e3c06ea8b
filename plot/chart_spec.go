package plot

import (
	"errors"
	"fmt"
	"math"

	"github.com/pivolan/mbti_top10/domain/models"
	"github.com/pivolan/mbti_top10/ranking"
)

const (
	// axisPadding keeps the longest bar off the chart edge.
	axisPadding = 1.1
	barColor    = "teal"
)

// Bar is one country in the chart. Missing or non finite values are drawn
// as empty bars.
type Bar struct {
	Country string
	Value   float64
	Missing bool
}

// ChartSpec describes a horizontal bar chart independent of the renderer.
// Bars are ordered from the largest value to the smallest, top to bottom.
type ChartSpec struct {
	Title        string
	SeriesName   string
	ValueAxis    string
	CategoryAxis string
	Color        string
	AxisMax      float64
	Bars         []Bar
}

// BuildBarChart turns a Top-N result into a chart description.
func BuildBarChart(cat models.Category, entries []models.RankedEntry) ChartSpec {
	spec := ChartSpec{
		Title:        fmt.Sprintf("Top %d countries by %s ratio", len(entries), cat),
		SeriesName:   cat.String(),
		ValueAxis:    fmt.Sprintf("%s ratio", cat),
		CategoryAxis: models.CountryColumn,
		Color:        barColor,
		AxisMax:      AxisUpperBound(entries),
		Bars:         make([]Bar, 0, len(entries)),
	}
	for _, e := range entries {
		bar := Bar{Country: e.Country, Value: e.Value}
		if !isFinite(e.Value) {
			bar.Value = 0
			bar.Missing = true
		}
		spec.Bars = append(spec.Bars, bar)
	}
	return spec
}

// AxisUpperBound is 1.1 times the largest value, 0 when there is nothing to draw.
func AxisUpperBound(entries []models.RankedEntry) float64 {
	return axisPadding * ranking.MaxValue(entries)
}

// ErrNotFinite is returned for specs holding NaN or infinite numbers, which
// neither renderer can draw.
var ErrNotFinite = errors.New("chart value is not finite")

func (s ChartSpec) checkFinite() error {
	if !isFinite(s.AxisMax) {
		return fmt.Errorf("%w: axis max %v", ErrNotFinite, s.AxisMax)
	}
	for _, b := range s.Bars {
		if !isFinite(b.Value) {
			return fmt.Errorf("%w: %s = %v", ErrNotFinite, b.Country, b.Value)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (s ChartSpec) Labels() []string {
	labels := make([]string, len(s.Bars))
	for i, b := range s.Bars {
		labels[i] = b.Country
	}
	return labels
}

func (s ChartSpec) Values() []float64 {
	values := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		values[i] = b.Value
	}
	return values
}
