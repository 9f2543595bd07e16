package models

import "github.com/shopspring/decimal"

// NewsArticle is a stock news item from the backend feed.
type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	SourceName  string `json:"sourceName"`
}

// StockPrice is a quote entry of the trending stocks list.
type StockPrice struct {
	Symbol        string          `json:"symbol"`
	CompanyName   string          `json:"companyName"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	PreviousClose decimal.Decimal `json:"previousClose"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"`
	Trend         string          `json:"trend"`
	Volume        int64           `json:"volume"`
	Currency      string          `json:"currency"`
}

// MarketIndex is one entry of the market indices strip.
type MarketIndex struct {
	Name          string          `json:"name"`
	Symbol        string          `json:"symbol"`
	Value         decimal.Decimal `json:"value"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"`
	Trend         string          `json:"trend"` // "UP" or "DOWN"
}
