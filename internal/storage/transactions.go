package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"momentum/internal/core"
)

const txnColumns = `id, account_id, COALESCE(category_id, 0), title, amount_cents, date, type, notes, reconciled`

// CreateTransaction inserts a ledger entry and enqueues it for mirror sync.
// Both writes happen in one SQL transaction so a crash cannot leave an
// entry without its queue item.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var categoryID any
	if t.CategoryID > 0 {
		categoryID = t.CategoryID
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (account_id, category_id, title, amount_cents, date, type, notes, reconciled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.AccountID, categoryID, t.Title, t.Amount.Cents, formatDate(t.Date), string(t.Type), t.Notes, t.Reconciled)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sync_queue (transaction_id, operation, txn_title, txn_amount_cents, txn_date, txn_type)
		VALUES (?, 'sync', ?, ?, ?, ?)`,
		id, t.Title, t.Amount.Cents, formatDate(t.Date), string(t.Type)); err != nil {
		return core.Transaction{}, fmt.Errorf("enqueue sync: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Transaction{}, fmt.Errorf("commit: %w", err)
	}

	t.ID = id
	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"title", t.Title,
		"amount_cents", t.Amount.Cents,
		"type", t.Type,
		"account_id", t.AccountID)
	return t, nil
}

// GetTransaction fetches a single non-deleted ledger entry by ID.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+txnColumns+` FROM transactions WHERE id = ? AND deleted_at IS NULL`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// ListTransactionsByAccount returns an account's non-deleted entries, newest first.
func (r *SQLiteRepository) ListTransactionsByAccount(ctx context.Context, accountID int64) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT `+txnColumns+` FROM transactions
		 WHERE account_id = ? AND deleted_at IS NULL ORDER BY date DESC, id DESC`, accountID)
}

// ListTransactionsByCategory returns a category's non-deleted entries.
func (r *SQLiteRepository) ListTransactionsByCategory(ctx context.Context, categoryID int64) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT `+txnColumns+` FROM transactions
		 WHERE category_id = ? AND deleted_at IS NULL ORDER BY date DESC, id DESC`, categoryID)
}

// ListTransactions returns all non-deleted entries. Time-frame windowing is
// done by the core over this list so the filter logic lives in one place.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT `+txnColumns+` FROM transactions WHERE deleted_at IS NULL ORDER BY date DESC, id DESC`)
}

// SoftDeleteTransaction marks an entry deleted and enqueues the mirror delete.
func (r *SQLiteRepository) SoftDeleteTransaction(ctx context.Context, id int64) error {
	t, err := r.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE transactions SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete transaction: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sync_queue (transaction_id, operation, txn_title, txn_amount_cents, txn_date, txn_type)
		VALUES (?, 'delete', ?, ?, ?, ?)`,
		id, t.Title, t.Amount.Cents, formatDate(t.Date), string(t.Type)); err != nil {
		return fmt.Errorf("enqueue delete: %w", err)
	}

	return tx.Commit()
}

// SetReconciled toggles the reconciled flag, the only mutable bit of a
// recorded entry besides notes.
func (r *SQLiteRepository) SetReconciled(ctx context.Context, id int64, reconciled bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET reconciled = ?, version = version + 1 WHERE id = ? AND deleted_at IS NULL`,
		reconciled, id)
	if err != nil {
		return fmt.Errorf("set reconciled: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set reconciled: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateTransactionNotes replaces an entry's notes.
func (r *SQLiteRepository) UpdateTransactionNotes(ctx context.Context, id int64, notes string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET notes = ?, version = version + 1 WHERE id = ? AND deleted_at IS NULL`,
		notes, id)
	if err != nil {
		return fmt.Errorf("update notes: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update notes: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	return nil
}

// GetTransactionVersion returns the current optimistic version of an entry.
func (r *SQLiteRepository) GetTransactionVersion(ctx context.Context, id int64) (int64, error) {
	var version int64
	err := r.db.QueryRowContext(ctx,
		`SELECT version FROM transactions WHERE id = ? AND deleted_at IS NULL`, id).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("get version: %w", err)
	}
	return version, nil
}

// MarkSynced marks a ledger entry as mirrored.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = 'synced' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	return nil
}

// MarkSyncError marks a ledger entry as having failed to mirror.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = 'error' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark sync error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txns []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var t core.Transaction
	var date, typ string
	err := row.Scan(&t.ID, &t.AccountID, &t.CategoryID, &t.Title, &t.Amount.Cents, &date, &typ, &t.Notes, &t.Reconciled)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Date = parseDate(date)
	t.Type = core.TransactionType(typ)
	return t, nil
}
