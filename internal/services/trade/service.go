// Package trade places buy and sell orders and refreshes the portfolio views afterwards.
package trade

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bobmcallan/folio/internal/clients/backend"
	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/notify"
)

// ErrInvalidOrder is returned for orders rejected before reaching the backend.
var ErrInvalidOrder = errors.New("invalid order")

const (
	ActionBuy  = "Buy stock"
	ActionSell = "Sell stock"

	MsgBought     = "Stock purchased successfully!"
	MsgSold       = "Stock sold successfully!"
	MsgBuyFailed  = "Failed to buy stock"
	MsgSellFailed = "Failed to sell stock"
)

// Refresher re-runs the portfolio refresh after a successful trade.
type Refresher interface {
	RefreshAll(ctx context.Context, sess *common.Session) error
}

// HoldingLookup finds a position currently displayed under a session key.
type HoldingLookup interface {
	Holding(key string, investmentID int64) (models.Holding, bool)
}

// Service executes trades on behalf of a session.
type Service struct {
	client    interfaces.TradeClient
	refresher Refresher
	holdings  HoldingLookup
	notices   *notify.Center
	logger    *common.Logger
}

// NewService creates a trade service. holdings may be nil, in which case the
// sell quantity is only checked by the backend.
func NewService(client interfaces.TradeClient, refresher Refresher, holdings HoldingLookup, notices *notify.Center, logger *common.Logger) *Service {
	return &Service{
		client:    client,
		refresher: refresher,
		holdings:  holdings,
		notices:   notices,
		logger:    logger,
	}
}

// Buy validates and places a buy order.
func (s *Service) Buy(ctx context.Context, sess *common.Session, order models.BuyOrder) (*models.Investment, error) {
	if !sess.Valid() {
		return nil, common.ErrNoSession
	}
	queue := s.notices.For(sess.Key())

	order.Symbol = strings.ToUpper(strings.TrimSpace(order.Symbol))
	if err := validateBuy(order); err != nil {
		queue.Error(ActionBuy, err.Error())
		return nil, err
	}

	inv, err := s.client.Buy(common.WithSession(ctx, sess), sess.UserID, order)
	if err != nil {
		s.logger.Warn().Err(err).Str("user", sess.UserID).Str("symbol", order.Symbol).Msg("Buy failed")
		queue.Error(ActionBuy, backend.UserMessage(err, MsgBuyFailed))
		return nil, err
	}

	s.logger.Info().Str("user", sess.UserID).Str("symbol", order.Symbol).Int64("quantity", order.Quantity).Msg("Stock purchased")
	queue.Success(ActionBuy, MsgBought)
	s.refresh(ctx, sess)
	return inv, nil
}

// Sell validates and places a sell order.
func (s *Service) Sell(ctx context.Context, sess *common.Session, order models.SellOrder) error {
	if !sess.Valid() {
		return common.ErrNoSession
	}
	queue := s.notices.For(sess.Key())

	if err := s.validateSell(sess.Key(), order); err != nil {
		queue.Error(ActionSell, err.Error())
		return err
	}

	if err := s.client.Sell(common.WithSession(ctx, sess), sess.UserID, order); err != nil {
		s.logger.Warn().Err(err).Str("user", sess.UserID).Int64("investment", order.InvestmentID).Msg("Sell failed")
		queue.Error(ActionSell, backend.UserMessage(err, MsgSellFailed))
		return err
	}

	s.logger.Info().Str("user", sess.UserID).Int64("investment", order.InvestmentID).Int64("quantity", order.Quantity).Msg("Stock sold")
	queue.Success(ActionSell, MsgSold)
	s.refresh(ctx, sess)
	return nil
}

// refresh failures are already reported by the refresh pipeline.
func (s *Service) refresh(ctx context.Context, sess *common.Session) {
	if s.refresher == nil {
		return
	}
	if err := s.refresher.RefreshAll(ctx, sess); err != nil {
		s.logger.Debug().Err(err).Str("user", sess.UserID).Msg("Post-trade refresh failed")
	}
}

func validateBuy(o models.BuyOrder) error {
	switch {
	case o.Symbol == "":
		return fmt.Errorf("%w: symbol is required", ErrInvalidOrder)
	case o.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be greater than zero", ErrInvalidOrder)
	case !o.BuyPrice.IsPositive():
		return fmt.Errorf("%w: buy price must be greater than zero", ErrInvalidOrder)
	}
	return nil
}

func (s *Service) validateSell(key string, o models.SellOrder) error {
	if o.InvestmentID <= 0 {
		return fmt.Errorf("%w: investment id is required", ErrInvalidOrder)
	}
	if o.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be greater than zero", ErrInvalidOrder)
	}
	if s.holdings == nil {
		return nil
	}
	if h, ok := s.holdings.Holding(key, o.InvestmentID); ok && o.Quantity > h.Quantity {
		return fmt.Errorf("%w: cannot sell %d units of %s, only %d held", ErrInvalidOrder, o.Quantity, h.Symbol, h.Quantity)
	}
	return nil
}
