// Package account manages the user's bank account and profile view.
package account

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

// ErrInvalidRequest is returned for requests rejected before reaching the backend.
var ErrInvalidRequest = errors.New("invalid account request")

const (
	ActionLoadAccount   = "Load bank account"
	ActionCreateAccount = "Create bank account"
	ActionUpdateAccount = "Update bank account"
	ActionDeposit       = "Deposit"
	ActionWithdraw      = "Withdraw"
)

// Service wraps the bank account endpoints with validation and notifications.
type Service struct {
	client   interfaces.AccountClient
	notices  *notify.Center
	logger   *common.Logger
	currency string
}

// NewService creates an account service. currency is the fallback display currency.
func NewService(client interfaces.AccountClient, notices *notify.Center, currency string, logger *common.Logger) *Service {
	return &Service{client: client, notices: notices, currency: currency, logger: logger}
}

// AccountView is a bank account with its formatted balance.
type AccountView struct {
	Account     *models.BankAccount `json:"account,omitempty"`
	Exists      bool                `json:"exists"`
	BalanceText string              `json:"balanceText,omitempty"`
}

// ProfileView is the signed-in user with their account summary.
type ProfileView struct {
	User        *models.User `json:"user"`
	FullName    string       `json:"fullName"`
	Phone       string       `json:"phone"`
	BalanceText string       `json:"balanceText,omitempty"`
}

// Get returns the user's bank account. A user without an account is not an error.
func (s *Service) Get(ctx context.Context, sess *common.Session) (*AccountView, error) {
	if !sess.Valid() {
		return nil, common.ErrNoSession
	}

	acct, err := s.client.GetBankAccount(common.WithSession(ctx, sess), sess.UserID)
	if err != nil {
		if backend.IsNotFound(err) {
			return &AccountView{}, nil
		}
		s.fail(sess, ActionLoadAccount, "Error loading bank account", err)
		return nil, err
	}
	return s.view(sess, acct), nil
}

// Create opens a bank account.
func (s *Service) Create(ctx context.Context, sess *common.Session, req models.BankAccountRequest) (*AccountView, error) {
	return s.upsert(ctx, sess, req, ActionCreateAccount, "Bank account created successfully!", s.client.CreateBankAccount)
}

// Update changes the bank account details.
func (s *Service) Update(ctx context.Context, sess *common.Session, req models.BankAccountRequest) (*AccountView, error) {
	return s.upsert(ctx, sess, req, ActionUpdateAccount, "Bank account updated successfully!", s.client.UpdateBankAccount)
}

// Deposit adds funds to the bank account.
func (s *Service) Deposit(ctx context.Context, sess *common.Session, req models.TransactionRequest) (*AccountView, error) {
	return s.transact(ctx, sess, req, ActionDeposit, "Deposit successful!", s.client.Deposit)
}

// Withdraw removes funds from the bank account.
func (s *Service) Withdraw(ctx context.Context, sess *common.Session, req models.TransactionRequest) (*AccountView, error) {
	return s.transact(ctx, sess, req, ActionWithdraw, "Withdrawal successful!", s.client.Withdraw)
}

// Profile loads the user profile. Failures are logged only, the profile panel stays empty.
func (s *Service) Profile(ctx context.Context, sess *common.Session) (*ProfileView, error) {
	if !sess.Valid() {
		return nil, common.ErrNoSession
	}

	user, err := s.client.GetUser(common.WithSession(ctx, sess), sess.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user", sess.UserID).Msg("Profile load failed")
		return nil, err
	}

	p := &ProfileView{
		User:     user,
		FullName: strings.TrimSpace(user.FirstName + " " + user.LastName),
		Phone:    user.Phone,
	}
	if p.Phone == "" {
		p.Phone = "N/A"
	}
	if user.BankAccount != nil {
		p.BalanceText = common.FormatMoney(user.BankAccount.CurrentBalance, sess.ResolveCurrency(s.currency))
	}
	return p, nil
}

type upsertFunc func(ctx context.Context, userID string, req models.BankAccountRequest) (*models.BankAccount, error)

func (s *Service) upsert(ctx context.Context, sess *common.Session, req models.BankAccountRequest, action, success string, call upsertFunc) (*AccountView, error) {
	if !sess.Valid() {
		return nil, common.ErrNoSession
	}

	req.AccountNumber = strings.TrimSpace(req.AccountNumber)
	req.BankName = strings.TrimSpace(req.BankName)
	req.AccountType = strings.ToUpper(strings.TrimSpace(req.AccountType))
	if req.AccountType == "" {
		req.AccountType = models.DefaultAccountType
	}
	if req.AccountNumber == "" || req.BankName == "" {
		err := fmt.Errorf("%w: account number and bank name are required", ErrInvalidRequest)
		s.notices.For(sess.Key()).Error(action, err.Error())
		return nil, err
	}

	acct, err := call(common.WithSession(ctx, sess), sess.UserID, req)
	if err != nil {
		s.fail(sess, action, "Failed to "+strings.ToLower(action), err)
		return nil, err
	}

	s.notices.For(sess.Key()).Success(action, success)
	return s.view(sess, acct), nil
}

type transactFunc func(ctx context.Context, userID string, req models.TransactionRequest) (*models.BankAccount, error)

func (s *Service) transact(ctx context.Context, sess *common.Session, req models.TransactionRequest, action, success string, call transactFunc) (*AccountView, error) {
	if !sess.Valid() {
		return nil, common.ErrNoSession
	}

	if !req.Amount.IsPositive() {
		err := fmt.Errorf("%w: amount must be greater than zero", ErrInvalidRequest)
		s.notices.For(sess.Key()).Error(action, err.Error())
		return nil, err
	}

	acct, err := call(common.WithSession(ctx, sess), sess.UserID, req)
	if err != nil {
		s.fail(sess, action, strings.ToLower(action)+" failed", err)
		return nil, err
	}

	s.logger.Info().Str("user", sess.UserID).Str("action", action).Str("amount", req.Amount.String()).Msg("Bank transaction completed")
	s.notices.For(sess.Key()).Success(action, success)
	return s.view(sess, acct), nil
}

func (s *Service) fail(sess *common.Session, action, fallback string, err error) {
	s.logger.Warn().Err(err).Str("user", sess.UserID).Str("action", action).Msg("Bank account request failed")
	s.notices.For(sess.Key()).Error(action, backend.UserMessage(err, fallback))
}

func (s *Service) view(sess *common.Session, acct *models.BankAccount) *AccountView {
	return &AccountView{
		Account:     acct,
		Exists:      true,
		BalanceText: common.FormatMoney(acct.CurrentBalance, sess.ResolveCurrency(s.currency)),
	}
}
