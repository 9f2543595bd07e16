// Package models defines data structures for Folio
package models

import "github.com/shopspring/decimal"

// PortfolioSnapshot is one fetched, read-only view of a user's portfolio.
// Numeric fields absent from the payload decode as zero.
type PortfolioSnapshot struct {
	PortfolioID               int64           `json:"portfolioId,omitempty"`
	UserID                    int64           `json:"userId,omitempty"`
	UserName                  string          `json:"userName,omitempty"`
	PortfolioName             string          `json:"portfolioName,omitempty"`
	Description               string          `json:"description,omitempty"`
	TotalValue                decimal.Decimal `json:"totalValue"`
	TotalCost                 decimal.Decimal `json:"totalCost"`
	TotalProfitLoss           decimal.Decimal `json:"totalProfitLoss"`
	TotalProfitLossPercentage decimal.Decimal `json:"totalProfitLossPercentage"`
	AssetAllocation           AssetAllocation `json:"assetAllocation"`
	Holdings                  []Holding       `json:"holdings"`
}

// AssetAllocation breaks portfolio value down by asset category.
// Only consulted when a snapshot carries no holdings.
type AssetAllocation struct {
	Stocks decimal.Decimal `json:"stocks"`
	Bonds  decimal.Decimal `json:"bonds"`
	Crypto decimal.Decimal `json:"crypto"`
	Cash   decimal.Decimal `json:"cash"`
}

// Holding is a single stock position. Order within a snapshot is server determined.
type Holding struct {
	InvestmentID         int64           `json:"investmentId"`
	Symbol               string          `json:"symbol"`
	CompanyName          string          `json:"companyName"`
	Quantity             int64           `json:"quantity"`
	BuyPrice             decimal.Decimal `json:"buyPrice"`
	CurrentPrice         decimal.Decimal `json:"currentPrice"`
	CurrentValue         decimal.Decimal `json:"currentValue"`
	ProfitLoss           decimal.Decimal `json:"profitLoss"`
	ProfitLossPercentage decimal.Decimal `json:"profitLossPercentage"`
	BuyDate              string          `json:"buyDate"`
}

// BuyOrder is a request to purchase units of a symbol at a given price.
type BuyOrder struct {
	Symbol   string          `json:"symbol"`
	Quantity int64           `json:"quantity"`
	BuyPrice decimal.Decimal `json:"buyPrice"`
}

// SellOrder is a request to sell units of an existing investment.
type SellOrder struct {
	InvestmentID int64 `json:"investmentId"`
	Quantity     int64 `json:"quantity"`
}

// Investment is the backend record returned after a successful buy.
type Investment struct {
	ID       int64           `json:"id"`
	Quantity int64           `json:"quantity"`
	BuyPrice decimal.Decimal `json:"buyPrice"`
	BuyDate  string          `json:"buyDate,omitempty"`
}
