package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"momentum/internal/core"
)

const goalColumns = `id, name, target_cents, current_cents, target_date`

// CreateSavingsGoal inserts a savings goal and returns it with its ID.
func (r *SQLiteRepository) CreateSavingsGoal(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO savings_goals (name, target_cents, current_cents, target_date)
		VALUES (?, ?, ?, ?)`,
		g.Name, g.Target.Cents, g.Current.Cents, formatDate(g.TargetDate))
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("insert savings goal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("savings goal id: %w", err)
	}
	g.ID = id
	return g, nil
}

// GetSavingsGoal fetches a single savings goal by ID.
func (r *SQLiteRepository) GetSavingsGoal(ctx context.Context, id int64) (core.SavingsGoal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM savings_goals WHERE id = ?`, id)
	g, err := scanSavingsGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.SavingsGoal{}, fmt.Errorf("savings goal %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("get savings goal: %w", err)
	}
	return g, nil
}

// ListSavingsGoals returns all goals ordered by target date.
func (r *SQLiteRepository) ListSavingsGoals(ctx context.Context) ([]core.SavingsGoal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+goalColumns+` FROM savings_goals ORDER BY target_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	defer rows.Close()

	var goals []core.SavingsGoal
	for rows.Next() {
		g, err := scanSavingsGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan savings goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// AddToSavingsGoal moves a contribution onto a goal's running total.
func (r *SQLiteRepository) AddToSavingsGoal(ctx context.Context, id int64, amount core.Money) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE savings_goals SET current_cents = current_cents + ? WHERE id = ?`, amount.Cents, id)
	if err != nil {
		return fmt.Errorf("add to savings goal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("add to savings goal: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("savings goal %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteSavingsGoal removes a goal.
func (r *SQLiteRepository) DeleteSavingsGoal(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM savings_goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete savings goal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete savings goal: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("savings goal %d: %w", id, ErrNotFound)
	}
	return nil
}

func scanSavingsGoal(row rowScanner) (core.SavingsGoal, error) {
	var g core.SavingsGoal
	var target string
	err := row.Scan(&g.ID, &g.Name, &g.Target.Cents, &g.Current.Cents, &target)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	g.TargetDate = parseDate(target)
	return g, nil
}
