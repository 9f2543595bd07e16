// Package market serves the stock news feed, the trending stocks widget and
// the market indices strip.
package market

import (
	"context"
	"strings"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/notify"
)

// PublishedLayout is the display format of article timestamps.
const PublishedLayout = "Jan 2, 2006 · 3:04 PM"

const (
	ActionLoadNews = "Load news"
	MsgLoadNews    = "Error loading news"
)

// publishedFormats are tried in order when parsing article timestamps.
var publishedFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Article is a news item prepared for display.
type Article struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	URL           string `json:"url"`
	ImageURL      string `json:"imageUrl,omitempty"`
	Source        string `json:"source"`
	PublishedAt   string `json:"publishedAt"`
	PublishedText string `json:"publishedText"`
}

// Trending is a trending stock prepared for display.
type Trending struct {
	Symbol            string `json:"symbol"`
	CompanyName       string `json:"companyName"`
	PriceText         string `json:"priceText"`
	ChangeText        string `json:"changeText"`
	ChangePercentText string `json:"changePercentText"`
	Style             string `json:"style"`
}

// Index is a market index prepared for display.
type Index struct {
	Name              string `json:"name"`
	Symbol            string `json:"symbol"`
	ValueText         string `json:"valueText"`
	ChangeText        string `json:"changeText"`
	ChangePercentText string `json:"changePercentText"`
	Trend             string `json:"trend"`
	Style             string `json:"style"`
}

// Service formats market content from the backend.
type Service struct {
	client   interfaces.MarketClient
	notices  *notify.Center
	currency string
	logger   *common.Logger
	location *time.Location
}

// NewService creates a market service. Timestamps are shown in local time.
func NewService(client interfaces.MarketClient, notices *notify.Center, currency string, logger *common.Logger) *Service {
	return &Service{client: client, notices: notices, currency: currency, logger: logger, location: time.Local}
}

// News returns the feed in backend order.
func (s *Service) News(ctx context.Context, sess *common.Session) ([]Article, error) {
	if !sess.Valid() {
		return nil, common.ErrNoSession
	}

	items, err := s.client.GetStockNews(common.WithSession(ctx, sess))
	if err != nil {
		s.logger.Warn().Err(err).Str("user", sess.UserID).Msg("News load failed")
		s.notices.For(sess.Key()).Error(ActionLoadNews, MsgLoadNews)
		return nil, err
	}

	out := make([]Article, 0, len(items))
	for _, a := range items {
		out = append(out, Article{
			Title:         a.Title,
			Description:   a.Description,
			URL:           a.URL,
			ImageURL:      a.URLToImage,
			Source:        a.SourceName,
			PublishedAt:   a.PublishedAt,
			PublishedText: s.publishedText(a.PublishedAt),
		})
	}
	return out, nil
}

// Trending returns the trending stocks. Failures are logged only; the widget is optional.
func (s *Service) Trending(ctx context.Context, sess *common.Session) ([]Trending, error) {
	if !sess.Valid() {
		return nil, common.ErrNoSession
	}

	stocks, err := s.client.GetTrendingStocks(common.WithSession(ctx, sess))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Trending stocks load failed")
		return nil, err
	}

	out := make([]Trending, 0, len(stocks))
	for _, st := range stocks {
		out = append(out, trendingView(st, sess.ResolveCurrency(s.currency)))
	}
	return out, nil
}

// Indices returns the market indices. Like trending, failures are logged only.
func (s *Service) Indices(ctx context.Context, sess *common.Session) ([]Index, error) {
	if !sess.Valid() {
		return nil, common.ErrNoSession
	}

	indices, err := s.client.GetMarketIndices(common.WithSession(ctx, sess))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Market indices load failed")
		return nil, err
	}

	out := make([]Index, 0, len(indices))
	for _, ix := range indices {
		out = append(out, indexView(ix))
	}
	return out, nil
}

// indexView formats an index. Index levels are points, not money.
func indexView(ix models.MarketIndex) Index {
	trend := strings.ToUpper(ix.Trend)
	if trend == "" {
		trend = "UP"
		if ix.Change.IsNegative() {
			trend = "DOWN"
		}
	}
	style := common.StylePositive
	if trend == "DOWN" {
		style = common.StyleNegative
	}
	change := ix.Change.StringFixed(2)
	if !ix.Change.IsNegative() {
		change = "+" + change
	}
	return Index{
		Name:              ix.Name,
		Symbol:            ix.Symbol,
		ValueText:         ix.Value.StringFixed(2),
		ChangeText:        change,
		ChangePercentText: common.FormatPercent(ix.ChangePercent),
		Trend:             trend,
		Style:             style,
	}
}

func trendingView(st models.StockPrice, fallback string) Trending {
	cur := st.Currency
	if cur == "" {
		cur = fallback
	}
	return Trending{
		Symbol:            st.Symbol,
		CompanyName:       st.CompanyName,
		PriceText:         common.FormatMoney(st.CurrentPrice, cur),
		ChangeText:        common.FormatMoney(st.Change, cur),
		ChangePercentText: common.FormatPercent(st.ChangePercent),
		Style:             common.StyleFor(st.Change),
	}
}

// publishedText formats a timestamp, returning the raw value when it cannot be parsed.
func (s *Service) publishedText(raw string) string {
	for _, layout := range publishedFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(s.location).Format(PublishedLayout)
		}
	}
	return raw
}
