package core

import (
	"errors"
	"strings"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Title:  "groceries",
		Amount: Money{Cents: 4500},
		Date:   NewDate(2024, 6, 15),
		Type:   Expense,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"empty title", func(tx *Transaction) { tx.Title = "  " }, ErrEmptyTitle},
		{"zero amount", func(tx *Transaction) { tx.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Cents: -100} }, ErrInvalidAmount},
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, ErrInvalidDate},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			if err := tx.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("title too long", func(t *testing.T) {
		tx := valid
		tx.Title = strings.Repeat("x", 201)
		if err := tx.Validate(); err == nil {
			t.Error("expected error for long title")
		}
	})
}

func TestAccountValidate(t *testing.T) {
	valid := Account{Name: "Everyday Checking", Type: Checking, Active: true}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid account rejected: %v", err)
	}

	a := valid
	a.Name = ""
	if err := a.Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty name: got %v", err)
	}

	a = valid
	a.Type = "offshore"
	if err := a.Validate(); !errors.Is(err, ErrInvalidAccountType) {
		t.Errorf("bad type: got %v", err)
	}

	a = valid
	a.CreditLimit = Money{Cents: -1}
	if err := a.Validate(); err == nil {
		t.Error("negative credit limit accepted")
	}
}

func TestBudgetValidate(t *testing.T) {
	valid := Budget{Name: "Food", Limit: Money{Cents: 25000}, Year: 2024, Month: 6, CategoryID: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid budget rejected: %v", err)
	}

	b := valid
	b.Limit = Money{Cents: -1}
	if err := b.Validate(); !errors.Is(err, ErrNegativeLimit) {
		t.Errorf("negative limit: got %v", err)
	}

	// Zero limit is allowed; status math guards the division
	b = valid
	b.Limit = Money{}
	if err := b.Validate(); err != nil {
		t.Errorf("zero limit rejected: %v", err)
	}

	b = valid
	b.Month = 13
	if err := b.Validate(); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("month 13: got %v", err)
	}
}

func TestSubscriptionValidate(t *testing.T) {
	valid := Subscription{
		Name:        "streaming",
		Amount:      Money{Cents: 1500},
		Cycle:       Monthly,
		NextPayment: NewDate(2024, 7, 1),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid subscription rejected: %v", err)
	}

	s := valid
	s.Cycle = "daily"
	if err := s.Validate(); !errors.Is(err, ErrInvalidCycle) {
		t.Errorf("bad cycle: got %v", err)
	}

	s = valid
	s.NextPayment = Date{}
	if err := s.Validate(); err == nil {
		t.Error("zero next payment accepted")
	}
}

func TestSavingsGoalValidateAndProgress(t *testing.T) {
	valid := SavingsGoal{Name: "Vacation", Target: Money{Cents: 100000}, Current: Money{Cents: 25000}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid goal rejected: %v", err)
	}
	if got := GoalProgress(valid); got != 0.25 {
		t.Errorf("GoalProgress = %v, want 0.25", got)
	}
	if got := GoalRemaining(valid); got.Cents != 75000 {
		t.Errorf("GoalRemaining = %d, want 75000", got.Cents)
	}

	g := valid
	g.Target = Money{}
	if err := g.Validate(); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("zero target: got %v", err)
	}
	if got := GoalProgress(g); got != 0 {
		t.Errorf("zero-target progress = %v, want 0", got)
	}

	overfunded := SavingsGoal{Name: "Done", Target: Money{Cents: 1000}, Current: Money{Cents: 1500}}
	if got := GoalProgress(overfunded); got != 1.5 {
		t.Errorf("overfunded progress = %v, want 1.5", got)
	}
	if got := GoalRemaining(overfunded); got.Cents != 0 {
		t.Errorf("overfunded remaining = %d, want 0", got.Cents)
	}
}
