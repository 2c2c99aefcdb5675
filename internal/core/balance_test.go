package core

import "testing"

func txn(amountCents int64, typ TransactionType) Transaction {
	return Transaction{
		Title:  "test",
		Amount: Money{Cents: amountCents},
		Date:   NewDate(2024, 6, 15),
		Type:   typ,
	}
}

func TestCalculatedBalance(t *testing.T) {
	tests := []struct {
		name string
		base int64
		txns []Transaction
		want int64
	}{
		{
			name: "empty list returns base unchanged",
			base: 100000,
			txns: nil,
			want: 100000,
		},
		{
			name: "income adds, expense subtracts",
			base: 100000,
			txns: []Transaction{
				txn(300000, Income),
				txn(120000, Expense),
				txn(30000, Expense),
			},
			want: 250000,
		},
		{
			name: "credit account may go negative - no clamping",
			base: 0,
			txns: []Transaction{
				txn(5000, Expense),
			},
			want: -5000,
		},
		{
			name: "negative base is preserved",
			base: -20000,
			txns: []Transaction{
				txn(10000, Income),
			},
			want: -10000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatedBalance(Money{Cents: tt.base}, tt.txns)
			if got.Cents != tt.want {
				t.Errorf("CalculatedBalance() = %d, want %d", got.Cents, tt.want)
			}
		})
	}
}

func TestCalculatedBalance_OrderIndependent(t *testing.T) {
	forward := []Transaction{txn(300000, Income), txn(120000, Expense), txn(30000, Expense)}
	reversed := []Transaction{txn(30000, Expense), txn(120000, Expense), txn(300000, Income)}

	base := Money{Cents: 100000}
	a := CalculatedBalance(base, forward)
	b := CalculatedBalance(base, reversed)
	if a.Cents != b.Cents {
		t.Errorf("balance depends on order: %d vs %d", a.Cents, b.Cents)
	}
}

func TestTotalSpent_FiltersTypeAndMonth(t *testing.T) {
	txns := []Transaction{
		{Title: "groceries", Amount: Money{Cents: 20000}, Date: NewDate(2024, 6, 3), Type: Expense},
		{Title: "restaurant", Amount: Money{Cents: 10000}, Date: NewDate(2024, 6, 20), Type: Expense},
		{Title: "salary", Amount: Money{Cents: 500000}, Date: NewDate(2024, 6, 1), Type: Income},
		{Title: "old groceries", Amount: Money{Cents: 9999}, Date: NewDate(2024, 5, 30), Type: Expense},
		{Title: "next year", Amount: Money{Cents: 7777}, Date: NewDate(2025, 6, 10), Type: Expense},
	}

	if got := TotalSpent(txns, 2024, 6); got.Cents != 30000 {
		t.Errorf("TotalSpent() = %d, want 30000", got.Cents)
	}
	if got := TotalIncome(txns, 2024, 6); got.Cents != 500000 {
		t.Errorf("TotalIncome() = %d, want 500000", got.Cents)
	}
	if got := TotalSpent(nil, 2024, 6); got.Cents != 0 {
		t.Errorf("TotalSpent(nil) = %d, want 0", got.Cents)
	}
}

func TestNetWorth(t *testing.T) {
	accounts := []Account{
		{ID: 1, Name: "checking", Type: Checking, Balance: Money{Cents: 100000}, Active: true, IncludeInTotal: true},
		{ID: 2, Name: "credit", Type: Credit, Balance: Money{Cents: 0}, Active: true, IncludeInTotal: true},
		{ID: 3, Name: "hidden", Type: Savings, Balance: Money{Cents: 999999}, Active: true, IncludeInTotal: false},
		{ID: 4, Name: "closed", Type: Savings, Balance: Money{Cents: 50000}, Active: false, IncludeInTotal: true},
	}
	txns := map[int64][]Transaction{
		1: {txn(50000, Income)},
		2: {txn(30000, Expense)},
	}

	// 1000 + 500 - 300 = 1200
	if got := NetWorth(accounts, txns); got.Cents != 120000 {
		t.Errorf("NetWorth() = %d, want 120000", got.Cents)
	}
}
