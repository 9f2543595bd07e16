package models

import "github.com/shopspring/decimal"

// RiskAnalysis is the backend's risk assessment of a user's portfolio.
type RiskAnalysis struct {
	UserID               int64           `json:"userId"`
	UserName             string          `json:"userName"`
	RiskCategory         string          `json:"riskCategory"`
	VolatilityScore      decimal.Decimal `json:"volatilityScore"`
	DiversificationScore decimal.Decimal `json:"diversificationScore"`
	MaxLossTolerance     decimal.Decimal `json:"maxLossTolerance"`
	InvestmentHorizon    string          `json:"investmentHorizon"`
	RiskLevel            string          `json:"riskLevel"`
	Recommendation       string          `json:"recommendation"`
	RiskFactors          []string        `json:"riskFactors"`
	Suggestions          []string        `json:"suggestions"`
}
