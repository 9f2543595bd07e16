package server

import (
	"net/http"

	"github.com/bobmcallan/folio/internal/models"
)

// tradeResponse reports a completed trade with the notifications it produced.
type tradeResponse struct {
	Investment    *models.Investment    `json:"investment,omitempty"`
	Notifications []models.Notification `json:"notifications"`
}

// handleBuy handles POST /api/trades/buy.
func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	var order models.BuyOrder
	if !DecodeJSON(w, r, &order) {
		return
	}

	sess := session(r)
	inv, err := s.app.Trades.Buy(r.Context(), sess, order)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, tradeResponse{
		Investment:    inv,
		Notifications: s.app.Notices.For(sess.Key()).Drain(),
	})
}

// handleSell handles POST /api/trades/sell.
func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	var order models.SellOrder
	if !DecodeJSON(w, r, &order) {
		return
	}

	sess := session(r)
	if err := s.app.Trades.Sell(r.Context(), sess, order); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, tradeResponse{
		Notifications: s.app.Notices.For(sess.Key()).Drain(),
	})
}
