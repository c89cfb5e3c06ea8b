package plot

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
)

// ErrNoBars is returned when a PNG is requested for an empty result.
var ErrNoBars = errors.New("chart has no bars")

// RenderPNG draws spec as a static bar chart, largest bar first.
func RenderPNG(spec ChartSpec) ([]byte, error) {
	if len(spec.Bars) == 0 {
		return nil, ErrNoBars
	}
	if err := spec.checkFinite(); err != nil {
		return nil, err
	}
	return DrawPlotBar(newDataCountriesForGraph(spec))
}

func calculateGridStep(maxValue float64) float64 {
	if maxValue <= 0 {
		return 0
	}
	if maxValue < 1e-10 {
		return 1e-10
	}

	// order of magnitude, then a 1-2-5 step on the normalized value
	magnitude := math.Pow(10, math.Floor(math.Log10(maxValue)))
	normalized := maxValue / magnitude

	var step float64
	switch {
	case normalized <= 1:
		step = 0.2
	case normalized <= 2:
		step = 0.5
	case normalized <= 5:
		step = 1.0
	default:
		step = 2.0
	}
	finalStep := step * magnitude

	if finalStep >= 1000 {
		return math.Round(finalStep/100) * 100
	}
	if finalStep >= 100 {
		return math.Round(finalStep/10) * 10
	}
	return finalStep
}

func DrawPlotBar(data dataForGraph) ([]byte, error) {
	barValues := data.generateBarValues()
	paddingX := customizePaddingXBottom(barValues)
	width, height := data.calculateChartDimensions(60)

	bar := chart.BarChart{}
	bar.Title = data.GetNameGraph()
	bar.TitleStyle = chart.Style{FontSize: 14}
	bar.Background = chart.Style{
		FillColor: chart.ColorWhite,
		Padding: chart.Box{
			Top:    50,
			Left:   20,
			Right:  20,
			Bottom: paddingX,
		},
	}
	bar.Height = height + paddingX
	bar.Width = width
	bar.BarWidth = 60
	bar.Bars = barValues
	bar.YAxis = chart.YAxis{
		Name: data.getNameYAxis(),
		Range: &chart.ContinuousRange{
			Min: 0.0,
			Max: data.axisMax(),
		},
		Ticks: data.generateGrid(),
		Style: chart.Style{
			StrokeWidth: 1,
			StrokeColor: chart.ColorBlack,
			FontSize:    10,
		},
		GridMajorStyle: chart.Style{
			StrokeColor:     chart.ColorBlack,
			StrokeWidth:     1,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
	bar.XAxis = chart.Style{
		StrokeWidth:         1,
		StrokeColor:         chart.ColorBlack,
		TextRotationDegrees: 45,
		FontSize:            10,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := bar.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

func customizePaddingXBottom(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return count * 8
}
