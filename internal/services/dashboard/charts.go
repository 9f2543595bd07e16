package dashboard

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/folio/internal/models"
)

// ChartKind selects how a chart configuration is drawn.
type ChartKind string

const (
	ChartPie ChartKind = "pie"
	ChartBar ChartKind = "bar"
)

// Series names used by the growth chart.
const (
	SeriesCurrentValue = "Current Value"
	SeriesCostBasis    = "Cost Basis"
)

// Colours for the growth chart series and the empty allocation placeholder.
const (
	colorCurrentValue = "667eea"
	colorCostBasis    = "764ba2"
	colorPlaceholder  = "e5e7eb"
)

// ChartConfig describes one chart instance. It is built from a single
// DisplayMetrics value so the chart agrees with the table it sits next to.
type ChartConfig struct {
	Kind     ChartKind `json:"kind"`
	Title    string    `json:"title"`
	Labels   []string  `json:"labels"`
	Segments []Segment `json:"segments,omitempty"`
	Series   []Series  `json:"series,omitempty"`
	Tooltips []Tooltip `json:"tooltips,omitempty"`
}

// Segment is one slice of a pie chart.
type Segment struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Color   string  `json:"color"`
	Tooltip string  `json:"tooltip,omitempty"`
}

// Series is one bar series, aligned with ChartConfig.Labels.
type Series struct {
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	Values []float64 `json:"values"`
}

// Tooltip is the per-holding detail shown when a chart element is hovered.
type Tooltip struct {
	Label         string `json:"label"`
	SharePct      string `json:"sharePct"`
	Quantity      string `json:"quantity"`
	BuyPrice      string `json:"buyPrice"`
	CurrentPrice  string `json:"currentPrice"`
	ProfitLoss    string `json:"profitLoss"`
	ProfitLossPct string `json:"profitLossPct"`
}

func (t Tooltip) String() string {
	return fmt.Sprintf("%s: %s of portfolio | Qty %s | Buy %s | Now %s | P/L %s (%s)",
		t.Label, t.SharePct, t.Quantity, t.BuyPrice, t.CurrentPrice, t.ProfitLoss, t.ProfitLossPct)
}

func tooltipFor(h models.HoldingMetrics) Tooltip {
	return Tooltip{
		Label:         h.ChartLabel,
		SharePct:      h.SharePctText,
		Quantity:      QuantityText(h.Holding.Quantity),
		BuyPrice:      h.BuyPriceText,
		CurrentPrice:  h.CurrentPriceText,
		ProfitLoss:    h.ProfitLossText,
		ProfitLossPct: h.ProfitLossPctText,
	}
}

// AllocationConfig builds the allocation pie. With holdings there is one
// segment per holding coloured by palette index; without holdings the
// segments are the four asset categories of the snapshot.
func AllocationConfig(m *models.DisplayMetrics, palette []string) ChartConfig {
	cfg := ChartConfig{Kind: ChartPie, Title: "Portfolio Allocation"}

	if len(m.Holdings) == 0 {
		categories := []struct {
			label string
			value decimal.Decimal
		}{
			{"Stocks", m.AssetAllocation.Stocks},
			{"Bonds", m.AssetAllocation.Bonds},
			{"Crypto", m.AssetAllocation.Crypto},
			{"Cash", m.AssetAllocation.Cash},
		}
		for i, c := range categories {
			cfg.Labels = append(cfg.Labels, c.label)
			cfg.Segments = append(cfg.Segments, Segment{
				Label: c.label,
				Value: c.value.InexactFloat64(),
				Color: paletteColor(palette, i),
			})
		}
		return cfg
	}

	for i, h := range m.Holdings {
		tip := tooltipFor(h)
		cfg.Labels = append(cfg.Labels, h.ChartLabel)
		cfg.Tooltips = append(cfg.Tooltips, tip)
		cfg.Segments = append(cfg.Segments, Segment{
			Label:   h.ChartLabel,
			Value:   h.Holding.CurrentValue.InexactFloat64(),
			Color:   paletteColor(palette, i),
			Tooltip: tip.String(),
		})
	}
	return cfg
}

// GrowthConfig builds the comparison bars: current value against cost basis
// for each holding. Without holdings it is a single zero placeholder.
func GrowthConfig(m *models.DisplayMetrics) ChartConfig {
	cfg := ChartConfig{Kind: ChartBar, Title: "Portfolio Growth"}

	if len(m.Holdings) == 0 {
		cfg.Labels = []string{"No holdings"}
		cfg.Series = []Series{{Name: SeriesCurrentValue, Color: colorCurrentValue, Values: []float64{0}}}
		return cfg
	}

	current := Series{Name: SeriesCurrentValue, Color: colorCurrentValue}
	cost := Series{Name: SeriesCostBasis, Color: colorCostBasis}
	for _, h := range m.Holdings {
		cfg.Labels = append(cfg.Labels, h.ChartLabel)
		cfg.Tooltips = append(cfg.Tooltips, tooltipFor(h))
		current.Values = append(current.Values, h.Holding.CurrentValue.InexactFloat64())
		cost.Values = append(cost.Values, h.CostBasis.InexactFloat64())
	}
	cfg.Series = []Series{current, cost}
	return cfg
}

func paletteColor(palette []string, i int) string {
	if len(palette) == 0 {
		return colorCurrentValue
	}
	return palette[i%len(palette)]
}
