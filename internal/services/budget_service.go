package services

import (
	"context"
	"fmt"

	"momentum/internal/core"
	"momentum/internal/storage"
)

// BudgetReport pairs a budget with its computed status for the month.
type BudgetReport struct {
	Budget       core.Budget
	CategoryName string
	Status       core.BudgetStatus
}

// BudgetService computes budget consumption from the ledger. Budgets only
// count expense entries in their own category and month.
type BudgetService struct {
	storage *storage.SQLiteRepository
}

func NewBudgetService(storage *storage.SQLiteRepository) *BudgetService {
	return &BudgetService{storage: storage}
}

func (s *BudgetService) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	return s.storage.CreateBudget(ctx, b)
}

// BudgetReports returns every budget for the month with spent, remaining
// and over-budget status.
func (s *BudgetService) BudgetReports(ctx context.Context, year, month int) ([]BudgetReport, error) {
	budgets, err := s.storage.ListBudgets(ctx, year, month)
	if err != nil {
		return nil, err
	}
	names, err := s.storage.CategoryNames(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]BudgetReport, 0, len(budgets))
	for _, b := range budgets {
		txns, err := s.storage.ListTransactionsByCategory(ctx, b.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("list transactions for category %d: %w", b.CategoryID, err)
		}
		spent := core.TotalSpent(txns, year, month)
		reports = append(reports, BudgetReport{
			Budget:       b,
			CategoryName: names[b.CategoryID],
			Status:       core.NewBudgetStatus(b.Limit, spent),
		})
	}
	return reports, nil
}

// BudgetReport returns the status of a single budget.
func (s *BudgetService) BudgetReport(ctx context.Context, id int64) (BudgetReport, error) {
	b, err := s.storage.GetBudget(ctx, id)
	if err != nil {
		return BudgetReport{}, err
	}
	names, err := s.storage.CategoryNames(ctx)
	if err != nil {
		return BudgetReport{}, err
	}
	txns, err := s.storage.ListTransactionsByCategory(ctx, b.CategoryID)
	if err != nil {
		return BudgetReport{}, fmt.Errorf("list transactions for category %d: %w", b.CategoryID, err)
	}
	spent := core.TotalSpent(txns, b.Year, b.Month)
	return BudgetReport{
		Budget:       b,
		CategoryName: names[b.CategoryID],
		Status:       core.NewBudgetStatus(b.Limit, spent),
	}, nil
}

func (s *BudgetService) UpdateLimit(ctx context.Context, id int64, limit core.Money) error {
	if limit.Cents < 0 {
		return core.ErrNegativeLimit
	}
	return s.storage.UpdateBudgetLimit(ctx, id, limit)
}

func (s *BudgetService) DeleteBudget(ctx context.Context, id int64) error {
	return s.storage.DeleteBudget(ctx, id)
}
