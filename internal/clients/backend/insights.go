package backend

import (
	"context"
	"net/http"

	"github.com/bobmcallan/folio/internal/models"
)

// AnalyzeRisk retrieves the risk analysis of a user's portfolio.
func (c *Client) AnalyzeRisk(ctx context.Context, userID string) (*models.RiskAnalysis, error) {
	var analysis models.RiskAnalysis
	if err := c.do(ctx, request{method: http.MethodGet, path: userPath("/risk/analyze/%s", userID)}, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// Chat sends a message to the backend chatbot.
func (c *Client) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	var resp models.ChatResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/chatbot/chat", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetStockNews retrieves the ordered stock news feed.
func (c *Client) GetStockNews(ctx context.Context) ([]models.NewsArticle, error) {
	var articles []models.NewsArticle
	if err := c.do(ctx, request{method: http.MethodGet, path: "/news/stocks"}, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// GetTrendingStocks retrieves the trending stocks list.
func (c *Client) GetTrendingStocks(ctx context.Context) ([]models.StockPrice, error) {
	var stocks []models.StockPrice
	if err := c.do(ctx, request{method: http.MethodGet, path: "/stocks/trending"}, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

// GetMarketIndices retrieves the headline market indices.
func (c *Client) GetMarketIndices(ctx context.Context) ([]models.MarketIndex, error) {
	var indices []models.MarketIndex
	if err := c.do(ctx, request{method: http.MethodGet, path: "/market-indices"}, &indices); err != nil {
		return nil, err
	}
	return indices, nil
}
