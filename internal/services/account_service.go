package services

import (
	"context"
	"fmt"

	"momentum/internal/core"
	"momentum/internal/storage"
)

// AccountWithBalance pairs an account with its derived balance.
type AccountWithBalance struct {
	Account core.Account
	Balance core.Money
}

// AccountService derives live balances from the stored baseline plus the
// account's ledger entries. Stored balances are never mutated by postings.
type AccountService struct {
	storage *storage.SQLiteRepository
}

func NewAccountService(storage *storage.SQLiteRepository) *AccountService {
	return &AccountService{storage: storage}
}

func (s *AccountService) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	return s.storage.CreateAccount(ctx, a)
}

// GetAccountWithBalance returns one account and its calculated balance.
func (s *AccountService) GetAccountWithBalance(ctx context.Context, id int64) (AccountWithBalance, error) {
	account, err := s.storage.GetAccount(ctx, id)
	if err != nil {
		return AccountWithBalance{}, err
	}
	txns, err := s.storage.ListTransactionsByAccount(ctx, id)
	if err != nil {
		return AccountWithBalance{}, fmt.Errorf("list transactions: %w", err)
	}
	return AccountWithBalance{
		Account: account,
		Balance: core.CalculatedBalance(account.Balance, txns),
	}, nil
}

// ListAccountsWithBalances returns every account with its calculated balance.
func (s *AccountService) ListAccountsWithBalances(ctx context.Context) ([]AccountWithBalance, error) {
	accounts, err := s.storage.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AccountWithBalance, 0, len(accounts))
	for _, a := range accounts {
		txns, err := s.storage.ListTransactionsByAccount(ctx, a.ID)
		if err != nil {
			return nil, fmt.Errorf("list transactions for account %d: %w", a.ID, err)
		}
		out = append(out, AccountWithBalance{
			Account: a,
			Balance: core.CalculatedBalance(a.Balance, txns),
		})
	}
	return out, nil
}

// NetWorth sums calculated balances across active accounts that opt into
// the total.
func (s *AccountService) NetWorth(ctx context.Context) (core.Money, error) {
	accounts, err := s.storage.ListAccounts(ctx)
	if err != nil {
		return core.Money{}, err
	}
	txnsByAccount := make(map[int64][]core.Transaction, len(accounts))
	for _, a := range accounts {
		txns, err := s.storage.ListTransactionsByAccount(ctx, a.ID)
		if err != nil {
			return core.Money{}, fmt.Errorf("list transactions for account %d: %w", a.ID, err)
		}
		txnsByAccount[a.ID] = txns
	}
	return core.NetWorth(accounts, txnsByAccount), nil
}

// UpdateBaseline changes an account's stored baseline balance.
func (s *AccountService) UpdateBaseline(ctx context.Context, id int64, balance core.Money) error {
	return s.storage.UpdateAccountBaseline(ctx, id, balance)
}

// SetActive archives or restores an account. Archived accounts keep their
// history but drop out of the net worth total.
func (s *AccountService) SetActive(ctx context.Context, id int64, active bool) error {
	return s.storage.SetAccountActive(ctx, id, active)
}
