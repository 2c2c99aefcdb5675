package core

import (
	"testing"
	"time"
)

func TestBuildMonthOverview(t *testing.T) {
	names := map[int64]string{1: "Food", 2: "Transport"}
	txns := []Transaction{
		{Title: "salary", CategoryID: 0, Amount: Money{Cents: 300000}, Date: NewDate(2024, 6, 1), Type: Income},
		{Title: "groceries", CategoryID: 1, Amount: Money{Cents: 20000}, Date: NewDate(2024, 6, 3), Type: Expense},
		{Title: "restaurant", CategoryID: 1, Amount: Money{Cents: 10000}, Date: NewDate(2024, 6, 20), Type: Expense},
		{Title: "bus pass", CategoryID: 2, Amount: Money{Cents: 5000}, Date: NewDate(2024, 6, 5), Type: Expense},
		{Title: "other month", CategoryID: 1, Amount: Money{Cents: 9999}, Date: NewDate(2024, 5, 3), Type: Expense},
	}

	overview := BuildMonthOverview(txns, 2024, 6, names)

	if overview.Income.Cents != 300000 {
		t.Errorf("Income = %d, want 300000", overview.Income.Cents)
	}
	if overview.Expenses.Cents != 35000 {
		t.Errorf("Expenses = %d, want 35000", overview.Expenses.Cents)
	}
	if overview.Net.Cents != 265000 {
		t.Errorf("Net = %d, want 265000", overview.Net.Cents)
	}
	if len(overview.ByCategory) != 2 {
		t.Fatalf("ByCategory has %d entries, want 2", len(overview.ByCategory))
	}
	if overview.ByCategory[0].Name != "Food" || overview.ByCategory[0].Amount.Cents != 30000 {
		t.Errorf("Food bucket = %+v", overview.ByCategory[0])
	}
	if overview.ByCategory[1].Name != "Transport" || overview.ByCategory[1].Amount.Cents != 5000 {
		t.Errorf("Transport bucket = %+v", overview.ByCategory[1])
	}
}

func TestBuildMonthOverview_Uncategorized(t *testing.T) {
	txns := []Transaction{
		{Title: "cash", CategoryID: 0, Amount: Money{Cents: 1000}, Date: NewDate(2024, 6, 3), Type: Expense},
	}
	overview := BuildMonthOverview(txns, 2024, 6, nil)
	if len(overview.ByCategory) != 1 || overview.ByCategory[0].Name != "Uncategorized" {
		t.Errorf("ByCategory = %+v, want single Uncategorized bucket", overview.ByCategory)
	}
}

func TestBuildFrameReport(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	names := map[int64]string{1: "Food"}
	txns := []Transaction{
		{Title: "salary", Amount: Money{Cents: 200000}, Date: NewDate(2024, 2, 25), Type: Income},
		{Title: "groceries", CategoryID: 1, Amount: Money{Cents: 15000}, Date: NewDate(2024, 2, 10), Type: Expense},
		{Title: "lastyear", CategoryID: 1, Amount: Money{Cents: 50000}, Date: NewDate(2023, 8, 1), Type: Expense},
	}

	report := BuildFrameReport(txns, Last30Days, now, names)
	if report.Count != 2 {
		t.Errorf("Count = %d, want 2", report.Count)
	}
	if report.Net.Cents != 185000 {
		t.Errorf("Net = %d, want 185000", report.Net.Cents)
	}

	lastYear := BuildFrameReport(txns, LastYear, now, names)
	if lastYear.Count != 1 || lastYear.Expenses.Cents != 50000 {
		t.Errorf("LastYear report = %+v", lastYear)
	}
}
