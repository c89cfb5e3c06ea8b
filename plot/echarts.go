package plot

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHTML writes an interactive page with the chart. Hovering a bar shows
// the country and its value.
func RenderHTML(w io.Writer, spec ChartSpec) error {
	if err := spec.checkFinite(); err != nil {
		return err
	}
	return newBarChart(spec).Render(w)
}

func newBarChart(spec ChartSpec) *charts.Bar {
	xAxis := opts.XAxis{Name: spec.ValueAxis, Type: "value", Min: 0}
	if spec.AxisMax > 0 {
		xAxis.Max = spec.AxisMax
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: spec.Title,
			Width:     "900px",
			Height:    "520px",
		}),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: "{b}: {c}",
		}),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.CategoryAxis, Type: "category"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}),
	)

	// category axes grow upwards, so the ranking is fed in reverse to keep
	// the largest bar on top
	n := len(spec.Bars)
	labels := make([]string, n)
	data := make([]opts.BarData, n)
	for i, b := range spec.Bars {
		labels[n-1-i] = b.Country
		data[n-1-i] = opts.BarData{Name: b.Country, Value: b.Value}
	}

	bar.SetXAxis(labels).
		AddSeries(spec.SeriesName, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: spec.Color}))
	bar.XYReversal()
	return bar
}
