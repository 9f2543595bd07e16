package server

import (
	"net/http"

	"github.com/bobmcallan/folio/internal/models"
)

// handleAccountGet handles GET /api/account.
func (s *Server) handleAccountGet(w http.ResponseWriter, r *http.Request) {
	v, err := s.app.Accounts.Get(r.Context(), session(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, v)
}

// handleAccountCreate handles POST /api/account.
func (s *Server) handleAccountCreate(w http.ResponseWriter, r *http.Request) {
	var req models.BankAccountRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	v, err := s.app.Accounts.Create(r.Context(), session(r), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, v)
}

// handleAccountUpdate handles PUT /api/account.
func (s *Server) handleAccountUpdate(w http.ResponseWriter, r *http.Request) {
	var req models.BankAccountRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	v, err := s.app.Accounts.Update(r.Context(), session(r), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, v)
}

// handleAccountDeposit handles POST /api/account/deposit.
func (s *Server) handleAccountDeposit(w http.ResponseWriter, r *http.Request) {
	var req models.TransactionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	v, err := s.app.Accounts.Deposit(r.Context(), session(r), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, v)
}

// handleAccountWithdraw handles POST /api/account/withdraw.
func (s *Server) handleAccountWithdraw(w http.ResponseWriter, r *http.Request) {
	var req models.TransactionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	v, err := s.app.Accounts.Withdraw(r.Context(), session(r), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, v)
}

// handleProfile handles GET /api/profile.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.app.Accounts.Profile(r.Context(), session(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}
