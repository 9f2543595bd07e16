package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bobmcallan/folio/internal/models"
)

// GetPortfolio retrieves the portfolio snapshot of a user.
// The payload is validated before it is returned.
func (c *Client) GetPortfolio(ctx context.Context, userID string) (*models.PortfolioSnapshot, error) {
	path := userPath("/portfolio/user/%s", userID)

	var snapshot models.PortfolioSnapshot
	if err := c.do(ctx, request{method: http.MethodGet, path: path}, &snapshot); err != nil {
		return nil, err
	}

	if err := validateSnapshot(&snapshot); err != nil {
		return nil, &MalformedPayloadError{Endpoint: http.MethodGet + " " + path, Err: err}
	}

	return &snapshot, nil
}

// Buy places a buy order. The backend answers with the created investment.
func (c *Client) Buy(ctx context.Context, userID string, order models.BuyOrder) (*models.Investment, error) {
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("symbol", order.Symbol)
	q.Set("quantity", strconv.FormatInt(order.Quantity, 10))
	q.Set("buyPrice", order.BuyPrice.String())

	var inv models.Investment
	if err := c.do(ctx, request{method: http.MethodPost, path: "/portfolio/buy", query: q, optional: true}, &inv); err != nil {
		return nil, fmt.Errorf("buy %s: %w", order.Symbol, err)
	}
	return &inv, nil
}

// Sell sells units of an existing investment.
func (c *Client) Sell(ctx context.Context, userID string, order models.SellOrder) error {
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("investmentId", strconv.FormatInt(order.InvestmentID, 10))
	q.Set("quantity", strconv.FormatInt(order.Quantity, 10))

	if err := c.do(ctx, request{method: http.MethodPost, path: "/portfolio/sell", query: q}, nil); err != nil {
		return fmt.Errorf("sell investment %d: %w", order.InvestmentID, err)
	}
	return nil
}
