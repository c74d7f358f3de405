package util

import (
	"fmt"
	"io"

	"benefits-server/dayparser"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderWeekdayCoverage writes an HTML page with a bar chart of how many
// benefits can be used on each weekday, Monday first.
func RenderWeekdayCoverage(w io.Writer, title string, coverage [7]int) error {
	labels := make([]string, 0, len(coverage))
	bars := make([]opts.BarData, 0, len(coverage))
	for i, n := range coverage {
		labels = append(labels, dayparser.Day(i).SpanishName())
		bars = append(bars, opts.BarData{Name: labels[i], Value: n})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Cobertura semanal",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "Beneficios disponibles por día",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	bar.SetXAxis(labels).
		AddSeries("Beneficios", bars,
			charts.WithLabelOpts(opts.Label{
				Show:     opts.Bool(true),
				Position: "top",
			}),
		)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render coverage chart: %w", err)
	}
	return nil
}
