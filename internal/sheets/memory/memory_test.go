package memory

import (
	"context"
	"testing"
	"time"

	"momentum/internal/core"
)

func entry(title string, cents int64, date time.Time) core.Transaction {
	return core.Transaction{
		Title:  title,
		Amount: core.Money{Cents: cents},
		Date:   core.Date{Time: date},
		Type:   core.Expense,
	}
}

func TestStore_AppendAndList(t *testing.T) {
	s := New([]string{"Food", "Housing", "Food", ""})
	ctx := context.Background()

	cats, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("List() returned %d categories, want 2 (deduped)", len(cats))
	}

	ref, err := s.Append(ctx, entry("Groceries", 4250, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if ref != "mem:1" {
		t.Errorf("Append() ref = %q, want %q", ref, "mem:1")
	}
}

func TestStore_AppendRejectsInvalid(t *testing.T) {
	s := New(nil)
	_, err := s.Append(context.Background(), core.Transaction{})
	if err == nil {
		t.Error("Append() should reject an empty entry")
	}
}

func TestStore_ListTransactionsByMonth(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	s.Append(ctx, entry("March groceries", 4250, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	s.Append(ctx, entry("April rent", 120000, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))

	march, err := s.ListTransactions(ctx, 2024, 3)
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(march) != 1 || march[0].Title != "March groceries" {
		t.Errorf("ListTransactions(2024, 3) = %v, want only the March entry", march)
	}
}

func TestStore_Delete(t *testing.T) {
	s := New(nil)
	ctx := context.Background()
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	s.Append(ctx, entry("Groceries", 4250, day))

	if err := s.Delete(ctx, entry("Groceries", 4250, day)); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, entry("Groceries", 4250, day)); err == nil {
		t.Error("Delete() should fail for a missing entry")
	}
}
