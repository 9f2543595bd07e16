package dashboard

import (
	"strconv"

	"github.com/bobmcallan/folio/internal/models"
)

// DefaultSummaryRows caps the dashboard holdings table.
const DefaultSummaryRows = 10

// Row metadata keys used by the sell action on the holdings view.
const (
	MetaInvestmentID = "investmentId"
	MetaMaxQuantity  = "maxQuantity"
	MetaSymbol       = "symbol"
)

// Binder writes derived metrics into view surfaces.
type Binder struct {
	summaryRows int
}

// NewBinder creates a binder. A non-positive row cap uses DefaultSummaryRows.
func NewBinder(summaryRows int) *Binder {
	if summaryRows <= 0 {
		summaryRows = DefaultSummaryRows
	}
	return &Binder{summaryRows: summaryRows}
}

// BindSummary writes the four portfolio totals.
func (b *Binder) BindSummary(v *View, m *models.DisplayMetrics) {
	s := m.Summary
	v.SetText(SurfaceTotalValue, s.TotalValueText, "")
	v.SetText(SurfaceTotalCost, s.TotalCostText, "")
	v.SetText(SurfaceProfitLoss, s.ProfitLossText, s.ProfitLossStyle)
	v.SetText(SurfaceProfitLossPct, s.ProfitLossPctText, s.ProfitLossPctStyle)
}

// BindDashboardTable writes the first rows of the holdings in snapshot order.
func (b *Binder) BindDashboardTable(v *View, m *models.DisplayMetrics) {
	n := len(m.Holdings)
	if n > b.summaryRows {
		n = b.summaryRows
	}
	rows := make([]Row, 0, n)
	for _, h := range m.Holdings[:n] {
		rows = append(rows, Row{
			Key: h.Holding.InvestmentID,
			Cells: []Cell{
				{Text: h.Holding.Symbol},
				{Text: h.Holding.CompanyName},
				{Text: QuantityText(h.Holding.Quantity)},
				{Text: h.BuyPriceText},
				{Text: h.CurrentPriceText},
				{Text: h.CurrentValueText},
				{Text: h.ProfitLossText, Style: h.ProfitLossStyle},
				{Text: h.ProfitLossPctText, Style: h.ProfitLossPctStyle},
			},
		})
	}
	v.SetRows(SurfaceHoldingsTable, rows)
}

// BindHoldingsTable writes every holding, with buy date and sell metadata.
func (b *Binder) BindHoldingsTable(v *View, m *models.DisplayMetrics) {
	rows := make([]Row, 0, len(m.Holdings))
	for _, h := range m.Holdings {
		rows = append(rows, Row{
			Key: h.Holding.InvestmentID,
			Cells: []Cell{
				{Text: h.Holding.Symbol},
				{Text: h.Holding.CompanyName},
				{Text: QuantityText(h.Holding.Quantity)},
				{Text: h.BuyPriceText},
				{Text: h.CurrentPriceText},
				{Text: h.CurrentValueText},
				{Text: h.ProfitLossText, Style: h.ProfitLossStyle},
				{Text: h.ProfitLossPctText, Style: h.ProfitLossPctStyle},
				{Text: h.Holding.BuyDate},
			},
			Meta: map[string]string{
				MetaInvestmentID: strconv.FormatInt(h.Holding.InvestmentID, 10),
				MetaMaxQuantity:  QuantityText(h.Holding.Quantity),
				MetaSymbol:       h.Holding.Symbol,
			},
		})
	}
	v.SetRows(SurfaceAllHoldingsTable, rows)
}

// TableHeaders are the column titles, shared by both tables.
var TableHeaders = []string{
	"Symbol", "Company", "Quantity", "Buy Price", "Current Price", "Current Value", "P/L", "P/L %",
}

// HoldingsTableHeaders adds the buy date column of the holdings view.
var HoldingsTableHeaders = append(append([]string(nil), TableHeaders...), "Buy Date")
