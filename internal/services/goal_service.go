package services

import (
	"context"

	"momentum/internal/core"
	"momentum/internal/storage"
)

// GoalReport pairs a savings goal with its progress numbers.
type GoalReport struct {
	Goal      core.SavingsGoal
	Progress  float64
	Remaining core.Money
}

// GoalService manages savings goals and their progress.
type GoalService struct {
	storage *storage.SQLiteRepository
}

func NewGoalService(storage *storage.SQLiteRepository) *GoalService {
	return &GoalService{storage: storage}
}

func (s *GoalService) CreateGoal(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error) {
	if err := g.Validate(); err != nil {
		return core.SavingsGoal{}, err
	}
	return s.storage.CreateSavingsGoal(ctx, g)
}

// Contribute adds an amount to a goal's running total.
func (s *GoalService) Contribute(ctx context.Context, id int64, amount core.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	return s.storage.AddToSavingsGoal(ctx, id, amount)
}

// ListReports returns every goal with progress and remaining amount.
func (s *GoalService) ListReports(ctx context.Context) ([]GoalReport, error) {
	goals, err := s.storage.ListSavingsGoals(ctx)
	if err != nil {
		return nil, err
	}
	reports := make([]GoalReport, 0, len(goals))
	for _, g := range goals {
		reports = append(reports, GoalReport{
			Goal:      g,
			Progress:  core.GoalProgress(g),
			Remaining: core.GoalRemaining(g),
		})
	}
	return reports, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, id int64) error {
	return s.storage.DeleteSavingsGoal(ctx, id)
}
