// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"

	"github.com/bobmcallan/folio/internal/models"
)

// PortfolioFetcher retrieves the current portfolio snapshot of a user
type PortfolioFetcher interface {
	GetPortfolio(ctx context.Context, userID string) (*models.PortfolioSnapshot, error)
}

// TradeClient places buy and sell orders
type TradeClient interface {
	Buy(ctx context.Context, userID string, order models.BuyOrder) (*models.Investment, error)
	Sell(ctx context.Context, userID string, order models.SellOrder) error
}

// AccountClient manages the user's bank account and profile
type AccountClient interface {
	// GetBankAccount returns an error matching backend.IsNotFound when the user has no account
	GetBankAccount(ctx context.Context, userID string) (*models.BankAccount, error)
	CreateBankAccount(ctx context.Context, userID string, req models.BankAccountRequest) (*models.BankAccount, error)
	UpdateBankAccount(ctx context.Context, userID string, req models.BankAccountRequest) (*models.BankAccount, error)
	Deposit(ctx context.Context, userID string, req models.TransactionRequest) (*models.BankAccount, error)
	Withdraw(ctx context.Context, userID string, req models.TransactionRequest) (*models.BankAccount, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// RiskClient retrieves risk analysis
type RiskClient interface {
	AnalyzeRisk(ctx context.Context, userID string) (*models.RiskAnalysis, error)
}

// ChatClient talks to the backend chatbot
type ChatClient interface {
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

// MarketClient retrieves news and market lists
type MarketClient interface {
	GetStockNews(ctx context.Context) ([]models.NewsArticle, error)
	GetTrendingStocks(ctx context.Context) ([]models.StockPrice, error)
	GetMarketIndices(ctx context.Context) ([]models.MarketIndex, error)
}

// BackendClient is the full portfolio backend REST API
type BackendClient interface {
	PortfolioFetcher
	TradeClient
	AccountClient
	RiskClient
	ChatClient
	MarketClient
}
