package dashboard

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Image formats supported by the go-chart renderer.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// ContentTypeFor maps an image format to its MIME type.
func ContentTypeFor(format string) string {
	if strings.EqualFold(format, FormatSVG) {
		return "image/svg+xml"
	}
	return "image/png"
}

// NewGoChartFactory returns a ChartFactory drawing with go-chart at the given size.
func NewGoChartFactory(width, height int, format string) ChartFactory {
	format = strings.ToLower(format)
	if format != FormatSVG {
		format = FormatPNG
	}
	return func(cfg ChartConfig) (Chart, error) {
		if cfg.Kind != ChartPie && cfg.Kind != ChartBar {
			return nil, fmt.Errorf("unsupported chart kind %q", cfg.Kind)
		}
		return &goChart{cfg: cfg, width: width, height: height, format: format}, nil
	}
}

type goChart struct {
	cfg       ChartConfig
	width     int
	height    int
	format    string
	destroyed atomic.Bool
}

func (c *goChart) Config() ChartConfig { return c.cfg }

func (c *goChart) ContentType() string { return ContentTypeFor(c.format) }

func (c *goChart) Destroy() { c.destroyed.Store(true) }

func (c *goChart) Render(w io.Writer) error {
	if c.destroyed.Load() {
		return ErrChartDestroyed
	}

	provider := chart.PNG
	if c.format == FormatSVG {
		provider = chart.SVG
	}

	var err error
	switch c.cfg.Kind {
	case ChartPie:
		pie := c.pieChart()
		err = pie.Render(provider, w)
	case ChartBar:
		bar := c.barChart()
		err = bar.Render(provider, w)
	}
	if err != nil {
		return fmt.Errorf("chart render failed: %w", err)
	}
	return nil
}

func (c *goChart) pieChart() chart.PieChart {
	var values []chart.Value
	for _, s := range c.cfg.Segments {
		// Zero segments stay in the config for the legend but cannot be drawn.
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: s.Label,
			Value: s.Value,
			Style: fill(s.Color),
		})
	}
	if len(values) == 0 {
		values = []chart.Value{{Label: "No data", Value: 1, Style: fill(colorPlaceholder)}}
	}

	return chart.PieChart{
		Title:  c.cfg.Title,
		Width:  c.width,
		Height: c.height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		Values: values,
	}
}

func (c *goChart) barChart() chart.BarChart {
	var bars []chart.Value
	maxValue := 0.0
	for i, label := range c.cfg.Labels {
		for j, s := range c.cfg.Series {
			if i >= len(s.Values) {
				continue
			}
			v := s.Values[i]
			if v > maxValue {
				maxValue = v
			}
			name := ""
			if j == 0 {
				name = label
			}
			bars = append(bars, chart.Value{Label: name, Value: v, Style: fill(s.Color)})
		}
	}

	// An explicit range keeps an all-zero series drawable.
	top := 1.0
	if maxValue > 0 {
		top = maxValue * 1.1
	}

	barWidth, spacing := barGeometry(c.width, len(bars))

	return chart.BarChart{
		Title:  c.cfg.Title,
		Width:  c.width,
		Height: c.height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		BarWidth:   barWidth,
		BarSpacing: spacing,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}
}

// barGeometry fits n bars into the drawable width.
func barGeometry(width, n int) (barWidth, spacing int) {
	if n <= 0 {
		return 40, 10
	}
	usable := width - 120
	if usable < n*4 {
		usable = n * 4
	}
	slot := usable / n
	spacing = slot / 4
	if spacing < 1 {
		spacing = 1
	}
	barWidth = slot - spacing
	if barWidth > 60 {
		barWidth = 60
	}
	return barWidth, spacing
}

func fill(hex string) chart.Style {
	color := drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
	return chart.Style{FillColor: color, StrokeColor: color}
}
