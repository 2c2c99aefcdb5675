package core

import "testing"

func TestMonthlyEquivalentCost(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		cycle  BillingCycle
		want   int64
	}{
		{"monthly passes through", 999, Monthly, 999},
		{"annual divides by 12", 12000, Annual, 1000},
		{"annual rounds half-up", 10000, Annual, 833}, // 833.33...
		{"quarterly divides by 3", 3000, Quarterly, 1000},
		{"weekly multiplies by 4.33", 2500, Weekly, 10825},
		{"biweekly multiplies by 2.17", 2000, Biweekly, 4340},
		{"unknown cycle falls back to amount", 1234, BillingCycle("daily"), 1234},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyEquivalentCost(Money{Cents: tt.amount}, tt.cycle)
			if got.Cents != tt.want {
				t.Errorf("MonthlyEquivalentCost(%d, %s) = %d, want %d", tt.amount, tt.cycle, got.Cents, tt.want)
			}
		})
	}
}

func TestMonthlyEquivalentTotal(t *testing.T) {
	subs := []Subscription{
		{Name: "streaming", Amount: Money{Cents: 1500}, Cycle: Monthly},
		{Name: "cloud backup", Amount: Money{Cents: 12000}, Cycle: Annual},
	}
	if got := MonthlyEquivalentTotal(subs); got.Cents != 2500 {
		t.Errorf("MonthlyEquivalentTotal() = %d, want 2500", got.Cents)
	}
	if got := MonthlyEquivalentTotal(nil); got.Cents != 0 {
		t.Errorf("MonthlyEquivalentTotal(nil) = %d, want 0", got.Cents)
	}
}
