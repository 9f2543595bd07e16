package models

import "github.com/shopspring/decimal"

// BankAccount is the user's linked bank account as reported by the backend.
type BankAccount struct {
	ID             int64           `json:"id,omitempty"`
	AccountNumber  string          `json:"accountNumber"`
	BankName       string          `json:"bankName"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	AccountType    string          `json:"accountType"`
	CreatedAt      string          `json:"createdAt,omitempty"`
	UpdatedAt      string          `json:"updatedAt,omitempty"`
}

// BankAccountRequest creates or updates a bank account.
type BankAccountRequest struct {
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	AccountType   string `json:"accountType,omitempty"`
}

// TransactionRequest moves money into or out of the bank account.
type TransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// DefaultAccountType is used when a request leaves the account type empty.
const DefaultAccountType = "CHECKING"
