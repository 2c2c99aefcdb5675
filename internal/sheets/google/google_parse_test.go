package google

import (
	"testing"
)

func TestParseLedgerRow(t *testing.T) {
	tests := []struct {
		name      string
		cols      []string
		wantOK    bool
		wantCents int64
	}{
		{
			name:      "valid expense row",
			cols:      []string{"2024-03-15", "Groceries", "42.50", "expense", "Food"},
			wantOK:    true,
			wantCents: 4250,
		},
		{
			name:      "valid income row without category",
			cols:      []string{"2024-03-01", "Salary", "3000", "income"},
			wantOK:    true,
			wantCents: 300000,
		},
		{
			name:      "decimal comma amount",
			cols:      []string{"2024-03-02", "Coffee", "3,50", "expense"},
			wantOK:    true,
			wantCents: 350,
		},
		{
			name:   "header row",
			cols:   []string{"Date", "Title", "Amount", "Type", "Category"},
			wantOK: false,
		},
		{
			name:   "missing columns",
			cols:   []string{"2024-03-15", "Groceries"},
			wantOK: false,
		},
		{
			name:   "empty title",
			cols:   []string{"2024-03-15", "", "42.50", "expense"},
			wantOK: false,
		},
		{
			name:   "unknown type",
			cols:   []string{"2024-03-15", "Groceries", "42.50", "transfer"},
			wantOK: false,
		},
		{
			name:   "zero amount",
			cols:   []string{"2024-03-15", "Groceries", "0", "expense"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, ok := parseLedgerRow(tt.cols)
			if ok != tt.wantOK {
				t.Fatalf("parseLedgerRow(%v) ok = %v, want %v", tt.cols, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if txn.Amount.Cents != tt.wantCents {
				t.Errorf("Amount.Cents = %d, want %d", txn.Amount.Cents, tt.wantCents)
			}
		})
	}
}

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"42.50", 4250, true},
		{"42,50", 4250, true},
		{"1000", 100000, true},
		{"0.01", 1, true},
		{"", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseDecimalToCents(tt.input)
			if ok != tt.ok {
				t.Fatalf("parseDecimalToCents(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("parseDecimalToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestYearPrefixedName(t *testing.T) {
	tests := []struct {
		base string
		year int
		want string
	}{
		{"Ledger", 2024, "2024 Ledger"},
		{"2023 Ledger", 2024, "2023 Ledger"},
		{"", 2024, ""},
		{"  Ledger  ", 2024, "2024 Ledger"},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			got := yearPrefixedName(tt.base, tt.year)
			if got != tt.want {
				t.Errorf("yearPrefixedName(%q, %d) = %q, want %q", tt.base, tt.year, got, tt.want)
			}
		})
	}
}
