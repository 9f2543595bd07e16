package account

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/clients/backend"
	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/notify"
)

type mockAccountClient struct {
	account  *models.BankAccount
	user     *models.User
	err      error
	requests []models.BankAccountRequest
	amounts  []decimal.Decimal
}

func (m *mockAccountClient) GetBankAccount(context.Context, string) (*models.BankAccount, error) {
	return m.account, m.err
}

func (m *mockAccountClient) CreateBankAccount(_ context.Context, _ string, req models.BankAccountRequest) (*models.BankAccount, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &models.BankAccount{AccountNumber: req.AccountNumber, BankName: req.BankName, AccountType: req.AccountType}, nil
}

func (m *mockAccountClient) UpdateBankAccount(ctx context.Context, userID string, req models.BankAccountRequest) (*models.BankAccount, error) {
	return m.CreateBankAccount(ctx, userID, req)
}

func (m *mockAccountClient) Deposit(_ context.Context, _ string, req models.TransactionRequest) (*models.BankAccount, error) {
	m.amounts = append(m.amounts, req.Amount)
	if m.err != nil {
		return nil, m.err
	}
	return &models.BankAccount{CurrentBalance: decimal.NewFromInt(100).Add(req.Amount)}, nil
}

func (m *mockAccountClient) Withdraw(_ context.Context, _ string, req models.TransactionRequest) (*models.BankAccount, error) {
	m.amounts = append(m.amounts, req.Amount)
	if m.err != nil {
		return nil, m.err
	}
	return &models.BankAccount{CurrentBalance: decimal.NewFromInt(100).Sub(req.Amount)}, nil
}

func (m *mockAccountClient) GetUser(context.Context, string) (*models.User, error) {
	return m.user, m.err
}

var sess = &common.Session{UserID: "1", Token: "t"}

func newService(c *mockAccountClient) (*Service, *notify.Center) {
	center := notify.NewCenter(0)
	return NewService(c, center, "USD", common.NewSilentLogger()), center
}

func TestGet_NotFoundMeansNoAccount(t *testing.T) {
	svc, center := newService(&mockAccountClient{err: &backend.HTTPError{StatusCode: 404}})

	v, err := svc.Get(context.Background(), sess)

	require.NoError(t, err)
	assert.False(t, v.Exists)
	assert.Empty(t, center.For(sess.Key()).Pending())
}

func TestGet_FormatsBalance(t *testing.T) {
	svc, _ := newService(&mockAccountClient{account: &models.BankAccount{CurrentBalance: decimal.RequireFromString("2500.5")}})

	v, err := svc.Get(context.Background(), sess)

	require.NoError(t, err)
	assert.True(t, v.Exists)
	assert.Equal(t, "$2,500.50", v.BalanceText)
}

func TestGet_ErrorNotifiesOnce(t *testing.T) {
	svc, center := newService(&mockAccountClient{err: &backend.NetworkError{Err: errors.New("refused")}})

	_, err := svc.Get(context.Background(), sess)

	require.Error(t, err)
	notes := center.For(sess.Key()).Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, ActionLoadAccount, notes[0].Action)
}

func TestCreate_DefaultsAccountType(t *testing.T) {
	c := &mockAccountClient{}
	svc, center := newService(c)

	v, err := svc.Create(context.Background(), sess, models.BankAccountRequest{AccountNumber: " 12345 ", BankName: "First Bank"})

	require.NoError(t, err)
	assert.Equal(t, models.DefaultAccountType, v.Account.AccountType)
	assert.Equal(t, "12345", c.requests[0].AccountNumber)
	notes := center.For(sess.Key()).Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationSuccess, notes[0].Level)
}

func TestCreate_RequiresFields(t *testing.T) {
	c := &mockAccountClient{}
	svc, center := newService(c)

	_, err := svc.Create(context.Background(), sess, models.BankAccountRequest{BankName: "First Bank"})

	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, c.requests)
	assert.Len(t, center.For(sess.Key()).Drain(), 1)
}

func TestDeposit_RejectsNonPositiveAmount(t *testing.T) {
	c := &mockAccountClient{}
	svc, _ := newService(c)

	_, err := svc.Deposit(context.Background(), sess, models.TransactionRequest{Amount: decimal.Zero})

	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, c.amounts)
}

func TestWithdraw_BackendMessage(t *testing.T) {
	c := &mockAccountClient{err: &backend.HTTPError{StatusCode: 400, Message: "Insufficient balance"}}
	svc, center := newService(c)

	_, err := svc.Withdraw(context.Background(), sess, models.TransactionRequest{Amount: decimal.NewFromInt(500)})

	require.Error(t, err)
	notes := center.For(sess.Key()).Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "Insufficient balance", notes[0].Message)
}

func TestDeposit_Success(t *testing.T) {
	svc, _ := newService(&mockAccountClient{})

	v, err := svc.Deposit(context.Background(), sess, models.TransactionRequest{Amount: decimal.NewFromInt(50)})

	require.NoError(t, err)
	assert.Equal(t, "$150.00", v.BalanceText)
}

func TestProfile(t *testing.T) {
	user := &models.User{
		FirstName: "Ada", LastName: "Lovelace",
		BankAccount: &models.BankAccount{CurrentBalance: decimal.NewFromInt(10)},
	}
	svc, center := newService(&mockAccountClient{user: user})

	p, err := svc.Profile(context.Background(), sess)

	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", p.FullName)
	assert.Equal(t, "N/A", p.Phone)
	assert.Equal(t, "$10.00", p.BalanceText)
	assert.Empty(t, center.For(sess.Key()).Pending())
}
