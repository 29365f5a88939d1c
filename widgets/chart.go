package widgets

import (
	"fmt"
	"strings"
	"time"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
)

const chartHeight = 7

// minLineChartWidth is the narrowest plot the line chart draws; below it
// the chart falls back to bars.
const minLineChartWidth = 16

type ChartPoint struct {
	Label string
	Value float64
}

// SampleSeries is the fixed data every mock chart plots.
var SampleSeries = []ChartPoint{
	{"Mon", 12}, {"Tue", 19}, {"Wed", 8}, {"Thu", 15}, {"Fri", 22}, {"Sat", 17}, {"Sun", 25},
}

// sampleStart anchors the line chart's time axis so output never depends
// on the clock.
var sampleStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Chart is a placeholder chart: a caption naming its type above a plot of
// SampleSeries. "line" is drawn with braille via ntcharts; any other type
// draws horizontal bars.
type Chart struct {
	Type string
	Data []ChartPoint
}

// Caption is the label line above the plot.
func (c Chart) Caption() string {
	return fmt.Sprintf("[Mock %s Chart Component]", c.Type)
}

func (c Chart) Render(width int) string {
	if width <= 0 {
		return ""
	}
	data := c.Data
	if data == nil {
		data = SampleSeries
	}
	caption := lipgloss.NewStyle().Foreground(ColorMuted).Italic(true).Render(Fit(c.Caption(), width))
	var plot string
	if c.Type == "line" && width >= minLineChartWidth {
		plot = lineChart(data, width)
	} else {
		plot = barChart(data, width)
	}
	if plot == "" {
		return caption
	}
	return caption + "\n" + Fit(plot, width)
}

func barChart(data []ChartPoint, width int) string {
	if len(data) == 0 {
		return "(no data)"
	}
	maxV := 0.0
	labelW := 0
	for _, p := range data {
		maxV = max(maxV, p.Value)
		labelW = max(labelW, len(p.Label))
	}
	if maxV <= 0 {
		maxV = 1
	}
	bar := lipgloss.NewStyle().Foreground(ColorTeal)
	lines := make([]string, 0, len(data))
	for _, p := range data {
		w := max(1, int((p.Value/maxV)*float64(max(1, width-labelW-1))))
		lines = append(lines, fmt.Sprintf("%-*s ", labelW, p.Label)+bar.Render(strings.Repeat("#", w)))
	}
	return strings.Join(lines, "\n")
}

func lineChart(data []ChartPoint, width int) string {
	if len(data) == 0 {
		return "(no data)"
	}
	maxV := 0.0
	for _, p := range data {
		maxV = max(maxV, p.Value)
	}
	if maxV == 0 {
		maxV = 1
	}
	start := sampleStart
	end := start.AddDate(0, 0, max(1, len(data)-1))

	chart := tslc.New(width, chartHeight)
	chart.SetXStep(1)
	chart.SetStyle(lipgloss.NewStyle().Foreground(ColorPeach))
	chart.AxisStyle = lipgloss.NewStyle().Foreground(ColorSurface2)
	chart.LabelStyle = lipgloss.NewStyle().Foreground(ColorOverlay1)
	chart.SetTimeRange(start, end)
	chart.SetViewTimeRange(start, end)
	chart.SetYRange(0, maxV)
	chart.SetViewYRange(0, maxV)
	for i, p := range data {
		chart.Push(tslc.TimePoint{Time: start.AddDate(0, 0, i), Value: p.Value})
	}
	chart.DrawBraille()
	return strings.TrimRight(chart.View(), "\n")
}
