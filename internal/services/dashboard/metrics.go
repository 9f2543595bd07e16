// Package dashboard implements the dashboard refresh pipeline: fetch a
// snapshot, derive display metrics, bind them into view surfaces and
// re-render the allocation and growth charts.
package dashboard

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

// FormatOptions controls the display strings produced by Calculate.
type FormatOptions struct {
	Currency    string
	LabelLength int
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Calculate derives display metrics from a snapshot. It does not modify the snapshot.
func Calculate(s *models.PortfolioSnapshot, opts FormatOptions) *models.DisplayMetrics {
	cur := opts.Currency
	if cur == "" {
		cur = "USD"
	}

	m := &models.DisplayMetrics{
		Currency:        cur,
		AssetAllocation: s.AssetAllocation,
		Holdings:        make([]models.HoldingMetrics, 0, len(s.Holdings)),
		Summary: models.SummaryMetrics{
			TotalValue:         s.TotalValue,
			TotalCost:          s.TotalCost,
			ProfitLoss:         s.TotalProfitLoss,
			ProfitLossPct:      s.TotalProfitLossPercentage,
			TotalValueText:     common.FormatMoney(s.TotalValue, cur),
			TotalCostText:      common.FormatMoney(s.TotalCost, cur),
			ProfitLossText:     common.FormatMoney(s.TotalProfitLoss, cur),
			ProfitLossPctText:  common.FormatPercent(s.TotalProfitLossPercentage),
			ProfitLossStyle:    common.StyleFor(s.TotalProfitLoss),
			ProfitLossPctStyle: common.StyleFor(s.TotalProfitLossPercentage),
		},
	}

	// A zero total would make every share undefined; divide by one instead.
	denominator := s.TotalValue
	if denominator.IsZero() {
		denominator = one
	}

	for _, h := range s.Holdings {
		share := h.CurrentValue.Div(denominator)
		costBasis := CostBasis(h)

		m.Holdings = append(m.Holdings, models.HoldingMetrics{
			Holding:            h,
			Share:              share,
			CostBasis:          costBasis,
			ChartLabel:         ChartLabel(h, opts.LabelLength),
			SharePctText:       common.FormatPercent(share.Mul(hundred)),
			BuyPriceText:       common.FormatMoney(h.BuyPrice, cur),
			CurrentPriceText:   common.FormatMoney(h.CurrentPrice, cur),
			CurrentValueText:   common.FormatMoney(h.CurrentValue, cur),
			CostBasisText:      common.FormatMoney(costBasis, cur),
			ProfitLossText:     common.FormatMoney(h.ProfitLoss, cur),
			ProfitLossPctText:  common.FormatPercent(h.ProfitLossPercentage),
			ProfitLossStyle:    common.StyleFor(h.ProfitLoss),
			ProfitLossPctStyle: common.StyleFor(h.ProfitLossPercentage),
		})
	}

	return m
}

// CostBasis is quantity * buyPrice, unrounded.
func CostBasis(h models.Holding) decimal.Decimal {
	return decimal.NewFromInt(h.Quantity).Mul(h.BuyPrice)
}

// ChartLabel is the symbol followed by the company name, truncated for chart display.
func ChartLabel(h models.Holding, labelLength int) string {
	if h.CompanyName == "" {
		return h.Symbol
	}
	return h.Symbol + " - " + common.TruncateLabel(h.CompanyName, labelLength)
}

// QuantityText renders a unit count.
func QuantityText(q int64) string {
	return strconv.FormatInt(q, 10)
}
