package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"momentum/internal/core"
)

const budgetColumns = `id, name, limit_cents, year, month, category_id`

// CreateBudget inserts a budget for one category and month. The schema's
// unique constraint rejects a second budget for the same slot.
func (r *SQLiteRepository) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (name, limit_cents, year, month, category_id) VALUES (?, ?, ?, ?, ?)`,
		b.Name, b.Limit.Cents, b.Year, b.Month, b.CategoryID)
	if err != nil {
		return core.Budget{}, fmt.Errorf("insert budget: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Budget{}, fmt.Errorf("budget id: %w", err)
	}
	b.ID = id
	return b, nil
}

// GetBudget fetches a single budget by ID.
func (r *SQLiteRepository) GetBudget(ctx context.Context, id int64) (core.Budget, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE id = ?`, id)
	b, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, fmt.Errorf("budget %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

// ListBudgets returns the budgets defined for one month.
func (r *SQLiteRepository) ListBudgets(ctx context.Context, year, month int) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE year = ? AND month = ? ORDER BY name`, year, month)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// UpdateBudgetLimit changes a budget's spending cap.
func (r *SQLiteRepository) UpdateBudgetLimit(ctx context.Context, id int64, limit core.Money) error {
	res, err := r.db.ExecContext(ctx, `UPDATE budgets SET limit_cents = ? WHERE id = ?`, limit.Cents, id)
	if err != nil {
		return fmt.Errorf("update budget limit: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update budget limit: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("budget %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteBudget removes a budget.
func (r *SQLiteRepository) DeleteBudget(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("budget %d: %w", id, ErrNotFound)
	}
	return nil
}

func scanBudget(row rowScanner) (core.Budget, error) {
	var b core.Budget
	err := row.Scan(&b.ID, &b.Name, &b.Limit.Cents, &b.Year, &b.Month, &b.CategoryID)
	if err != nil {
		return core.Budget{}, err
	}
	return b, nil
}
