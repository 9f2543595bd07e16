package backend

import (
	"context"
	"net/http"

	"github.com/bobmcallan/folio/internal/models"
)

// GetBankAccount returns the user's bank account. A user without an account
// yields an HTTPError for which IsNotFound is true.
func (c *Client) GetBankAccount(ctx context.Context, userID string) (*models.BankAccount, error) {
	var acct models.BankAccount
	if err := c.do(ctx, request{method: http.MethodGet, path: userPath("/bank-account/user/%s", userID)}, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// CreateBankAccount links a new bank account.
func (c *Client) CreateBankAccount(ctx context.Context, userID string, req models.BankAccountRequest) (*models.BankAccount, error) {
	return c.accountCall(ctx, http.MethodPost, userPath("/bank-account/user/%s/create", userID), req)
}

// UpdateBankAccount changes the bank account details.
func (c *Client) UpdateBankAccount(ctx context.Context, userID string, req models.BankAccountRequest) (*models.BankAccount, error) {
	return c.accountCall(ctx, http.MethodPut, userPath("/bank-account/user/%s/update", userID), req)
}

// Deposit adds funds to the bank account.
func (c *Client) Deposit(ctx context.Context, userID string, req models.TransactionRequest) (*models.BankAccount, error) {
	return c.accountCall(ctx, http.MethodPost, userPath("/bank-account/user/%s/deposit", userID), req)
}

// Withdraw removes funds from the bank account.
func (c *Client) Withdraw(ctx context.Context, userID string, req models.TransactionRequest) (*models.BankAccount, error) {
	return c.accountCall(ctx, http.MethodPost, userPath("/bank-account/user/%s/withdraw", userID), req)
}

func (c *Client) accountCall(ctx context.Context, method, path string, body interface{}) (*models.BankAccount, error) {
	var acct models.BankAccount
	if err := c.do(ctx, request{method: method, path: path, body: body}, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// GetUser returns the user's profile.
func (c *Client) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, request{method: http.MethodGet, path: userPath("/users/%s", userID)}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
