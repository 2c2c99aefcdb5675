package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"momentum/internal/core"
)

const subscriptionColumns = `id, name, amount_cents, cycle, next_payment, provider,
	currency_code, account_id, COALESCE(category_id, 0)`

// CreateSubscription inserts a recurring payment and returns it with its ID.
func (r *SQLiteRepository) CreateSubscription(ctx context.Context, s core.Subscription) (core.Subscription, error) {
	var categoryID any
	if s.CategoryID > 0 {
		categoryID = s.CategoryID
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions (name, amount_cents, cycle, next_payment, provider, currency_code, account_id, category_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Name, s.Amount.Cents, string(s.Cycle), formatDate(s.NextPayment), s.Provider, s.CurrencyCode, s.AccountID, categoryID)
	if err != nil {
		return core.Subscription{}, fmt.Errorf("insert subscription: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Subscription{}, fmt.Errorf("subscription id: %w", err)
	}
	s.ID = id
	return s, nil
}

// GetSubscription fetches a single recurring payment by ID.
func (r *SQLiteRepository) GetSubscription(ctx context.Context, id int64) (core.Subscription, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = ?`, id)
	s, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Subscription{}, fmt.Errorf("subscription %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Subscription{}, fmt.Errorf("get subscription: %w", err)
	}
	return s, nil
}

// ListSubscriptions returns all recurring payments ordered by next due date.
func (r *SQLiteRepository) ListSubscriptions(ctx context.Context) ([]core.Subscription, error) {
	return r.querySubscriptions(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions ORDER BY next_payment, id`)
}

// ListDueSubscriptions returns recurring payments whose next payment date is
// on or before the given day.
func (r *SQLiteRepository) ListDueSubscriptions(ctx context.Context, day core.Date) ([]core.Subscription, error) {
	return r.querySubscriptions(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE next_payment <= ? ORDER BY next_payment, id`,
		formatDate(day))
}

// AdvanceSubscription moves a recurring payment to its next due date after a
// posting. The posting key guards against the same run posting twice: the
// update only lands if the stored key still differs.
func (r *SQLiteRepository) AdvanceSubscription(ctx context.Context, id int64, next core.Date, postingKey string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET next_payment = ?, last_posting_key = ?, last_posted_at = CURRENT_TIMESTAMP
		WHERE id = ? AND COALESCE(last_posting_key, '') != ?`,
		formatDate(next), postingKey, id, postingKey)
	if err != nil {
		return false, fmt.Errorf("advance subscription: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("advance subscription: %w", err)
	}
	return affected > 0, nil
}

// DeleteSubscription removes a recurring payment.
func (r *SQLiteRepository) DeleteSubscription(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("subscription %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) querySubscriptions(ctx context.Context, query string, args ...any) ([]core.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []core.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func scanSubscription(row rowScanner) (core.Subscription, error) {
	var s core.Subscription
	var cycle, next string
	err := row.Scan(&s.ID, &s.Name, &s.Amount.Cents, &cycle, &next, &s.Provider,
		&s.CurrencyCode, &s.AccountID, &s.CategoryID)
	if err != nil {
		return core.Subscription{}, err
	}
	s.Cycle = core.BillingCycle(cycle)
	s.NextPayment = parseDate(next)
	return s, nil
}
