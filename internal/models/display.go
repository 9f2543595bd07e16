package models

import "github.com/shopspring/decimal"

// DisplayMetrics is everything derived from a snapshot for one render pass.
type DisplayMetrics struct {
	Currency        string           `json:"currency"`
	Summary         SummaryMetrics   `json:"summary"`
	Holdings        []HoldingMetrics `json:"holdings"`
	AssetAllocation AssetAllocation  `json:"asset_allocation"`
}

// SummaryMetrics holds the portfolio totals with their display strings.
type SummaryMetrics struct {
	TotalValue         decimal.Decimal `json:"total_value"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	ProfitLoss         decimal.Decimal `json:"profit_loss"`
	ProfitLossPct      decimal.Decimal `json:"profit_loss_pct"`
	TotalValueText     string          `json:"total_value_text"`
	TotalCostText      string          `json:"total_cost_text"`
	ProfitLossText     string          `json:"profit_loss_text"`
	ProfitLossPctText  string          `json:"profit_loss_pct_text"`
	ProfitLossStyle    string          `json:"profit_loss_style"`
	ProfitLossPctStyle string          `json:"profit_loss_pct_style"`
}

// HoldingMetrics pairs a holding with the figures derived from it.
// The table, the charts and the chart tooltips all read from this value.
type HoldingMetrics struct {
	Holding            Holding         `json:"holding"`
	Share              decimal.Decimal `json:"share"` // fraction of total value, 0..1
	CostBasis          decimal.Decimal `json:"cost_basis"`
	ChartLabel         string          `json:"chart_label"`
	SharePctText       string          `json:"share_pct_text"`
	BuyPriceText       string          `json:"buy_price_text"`
	CurrentPriceText   string          `json:"current_price_text"`
	CurrentValueText   string          `json:"current_value_text"`
	CostBasisText      string          `json:"cost_basis_text"`
	ProfitLossText     string          `json:"profit_loss_text"`
	ProfitLossPctText  string          `json:"profit_loss_pct_text"`
	ProfitLossStyle    string          `json:"profit_loss_style"`
	ProfitLossPctStyle string          `json:"profit_loss_pct_style"`
}
