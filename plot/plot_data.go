package plot

import (
	"fmt"

	"github.com/mozillazg/go-unidecode"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// teal
var barFillColor = drawing.ColorFromHex("008080")

type dataCountriesForGraph struct {
	xValues   []string
	yValues   []float64
	max       float64
	nameYAxis string
	nameGraph string
}

func newDataCountriesForGraph(spec ChartSpec) dataCountriesForGraph {
	return dataCountriesForGraph{
		xValues:   spec.Labels(),
		yValues:   spec.Values(),
		max:       spec.AxisMax,
		nameYAxis: spec.ValueAxis,
		nameGraph: spec.Title,
	}
}

func (d dataCountriesForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataCountriesForGraph) getNameYAxis() string {
	return d.nameYAxis
}

// axisMax never returns 0 so the value range stays drawable when every bar is empty.
func (d dataCountriesForGraph) axisMax() float64 {
	if d.max <= 0 {
		return 1
	}
	return d.max
}

func (d dataCountriesForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	if len(d.xValues) == 0 || minBarWidth <= 0 {
		return 0, 0
	}
	const (
		paddingY     = 100
		spacingRatio = 0.2
		minWidth     = 640
		aspectRatio  = 9.0 / 16.0
	)
	barSpacing := minBarWidth * spacingRatio
	width = int((minBarWidth+barSpacing)*float64(len(d.xValues))) + 2*paddingY
	if width < minWidth {
		width = minWidth
	}
	height = int(float64(width) * aspectRatio)
	return width, height
}

// generateBarValues transliterates labels since the bundled font only covers Latin.
func (d dataCountriesForGraph) generateBarValues() []chart.Value {
	bars := make([]chart.Value, 0, len(d.xValues))
	for i, label := range d.xValues {
		bars = append(bars, chart.Value{
			Value: d.yValues[i],
			Label: unidecode.Unidecode(label),
			Style: chart.Style{
				FillColor:   barFillColor,
				StrokeColor: barFillColor,
			},
		})
	}
	return bars
}

func (d dataCountriesForGraph) generateGrid() []chart.Tick {
	max := d.axisMax()
	gridStep := calculateGridStep(max)
	if gridStep <= 0 {
		return nil
	}
	var ticks []chart.Tick
	for i := 0; float64(i)*gridStep <= max; i++ {
		v := float64(i) * gridStep
		ticks = append(ticks, chart.Tick{
			Value: v,
			Label: formatTick(v, gridStep),
		})
	}
	return ticks
}

func formatTick(v, step float64) string {
	switch {
	case step >= 1:
		return fmt.Sprintf("%.0f", v)
	case step >= 0.1:
		return fmt.Sprintf("%.1f", v)
	case step >= 0.01:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.3f", v)
	}
}
