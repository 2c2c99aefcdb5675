package core

import "testing"

func TestNewBudgetStatus(t *testing.T) {
	tests := []struct {
		name           string
		limit          int64
		spent          int64
		wantRemaining  int64
		wantPercentage float64
		wantOver       bool
	}{
		{
			name:           "under budget",
			limit:          50000,
			spent:          20000,
			wantRemaining:  30000,
			wantPercentage: 0.4,
			wantOver:       false,
		},
		{
			name:           "over budget - remaining floors at zero",
			limit:          10000,
			spent:          15000,
			wantRemaining:  0,
			wantPercentage: 1.5,
			wantOver:       true,
		},
		{
			name:           "exactly at limit is not over",
			limit:          10000,
			spent:          10000,
			wantRemaining:  0,
			wantPercentage: 1.0,
			wantOver:       false,
		},
		{
			name:           "zero limit guards divide by zero",
			limit:          0,
			spent:          5000,
			wantRemaining:  0,
			wantPercentage: 0,
			wantOver:       true,
		},
		{
			name:           "nothing spent",
			limit:          25000,
			spent:          0,
			wantRemaining:  25000,
			wantPercentage: 0,
			wantOver:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBudgetStatus(Money{Cents: tt.limit}, Money{Cents: tt.spent})
			if got.Remaining.Cents != tt.wantRemaining {
				t.Errorf("Remaining = %d, want %d", got.Remaining.Cents, tt.wantRemaining)
			}
			if got.Percentage != tt.wantPercentage {
				t.Errorf("Percentage = %v, want %v", got.Percentage, tt.wantPercentage)
			}
			if got.OverBudget != tt.wantOver {
				t.Errorf("OverBudget = %v, want %v", got.OverBudget, tt.wantOver)
			}
			if got.Spent.Cents != tt.spent {
				t.Errorf("Spent = %d, want %d", got.Spent.Cents, tt.spent)
			}
		})
	}
}

func TestBudgetStatus_FromMonthSpending(t *testing.T) {
	// Category with expenses 200 + 100 against a 250 limit
	txns := []Transaction{
		{Title: "groceries", Amount: Money{Cents: 20000}, Date: NewDate(2024, 6, 3), Type: Expense},
		{Title: "restaurant", Amount: Money{Cents: 10000}, Date: NewDate(2024, 6, 20), Type: Expense},
	}
	spent := TotalSpent(txns, 2024, 6)
	if spent.Cents != 30000 {
		t.Fatalf("TotalSpent = %d, want 30000", spent.Cents)
	}

	status := NewBudgetStatus(Money{Cents: 25000}, spent)
	if !status.OverBudget {
		t.Error("expected over budget")
	}
	if status.Remaining.Cents != 0 {
		t.Errorf("Remaining = %d, want 0", status.Remaining.Cents)
	}
	if status.Percentage != 1.2 {
		t.Errorf("Percentage = %v, want 1.2", status.Percentage)
	}
}
