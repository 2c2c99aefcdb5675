package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"momentum/internal/core"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

const accountColumns = `id, name, type, balance_cents, currency_code, interest_rate,
	credit_limit_cents, institution, account_number, notes, active, include_in_total`

// CreateAccount inserts an account and returns it with its assigned ID.
func (r *SQLiteRepository) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (name, type, balance_cents, currency_code, interest_rate,
			credit_limit_cents, institution, account_number, notes, active, include_in_total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name, string(a.Type), a.Balance.Cents, a.CurrencyCode, a.InterestRate,
		a.CreditLimit.Cents, a.Institution, a.AccountNumber, a.Notes, a.Active, a.IncludeInTotal)
	if err != nil {
		return core.Account{}, fmt.Errorf("insert account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Account{}, fmt.Errorf("account id: %w", err)
	}
	a.ID = id
	return a, nil
}

// GetAccount fetches a single account by ID.
func (r *SQLiteRepository) GetAccount(ctx context.Context, id int64) (core.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Account{}, fmt.Errorf("account %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Account{}, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// ListAccounts returns all accounts, active first, newest last.
func (r *SQLiteRepository) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY active DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// UpdateAccountBaseline changes an account's stored baseline balance.
func (r *SQLiteRepository) UpdateAccountBaseline(ctx context.Context, id int64, balance core.Money) error {
	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET balance_cents = ? WHERE id = ?`, balance.Cents, id)
	if err != nil {
		return fmt.Errorf("update account baseline: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account baseline: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("account %d: %w", id, ErrNotFound)
	}
	return nil
}

// SetAccountActive archives or restores an account.
func (r *SQLiteRepository) SetAccountActive(ctx context.Context, id int64, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET active = ? WHERE id = ?`, active, id)
	if err != nil {
		return fmt.Errorf("set account active: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set account active: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("account %d: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (core.Account, error) {
	var a core.Account
	var typ string
	err := row.Scan(&a.ID, &a.Name, &typ, &a.Balance.Cents, &a.CurrencyCode, &a.InterestRate,
		&a.CreditLimit.Cents, &a.Institution, &a.AccountNumber, &a.Notes, &a.Active, &a.IncludeInTotal)
	if err != nil {
		return core.Account{}, err
	}
	a.Type = core.AccountType(typ)
	return a, nil
}
