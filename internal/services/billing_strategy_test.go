package services

import (
	"testing"
	"time"

	"momentum/internal/core"
)

func date(year, month, day int) core.Date {
	return core.Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func TestMonthlyAdvancer(t *testing.T) {
	tests := []struct {
		name string
		from core.Date
		want core.Date
	}{
		{"mid month", date(2024, 3, 15), date(2024, 4, 15)},
		{"jan 31 clamps to feb 29 in leap year", date(2024, 1, 31), date(2024, 2, 29)},
		{"jan 31 clamps to feb 28", date(2023, 1, 31), date(2023, 2, 28)},
		{"march 31 clamps to april 30", date(2024, 3, 31), date(2024, 4, 30)},
		{"december rolls into next year", date(2024, 12, 15), date(2025, 1, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyAdvancer{}.Next(tt.from)
			if !got.Equal(tt.want.Time) {
				t.Errorf("Next(%v) = %v, want %v", tt.from.Time, got.Time, tt.want.Time)
			}
		})
	}
}

func TestAnnualAdvancer(t *testing.T) {
	tests := []struct {
		name string
		from core.Date
		want core.Date
	}{
		{"normal date", date(2024, 6, 15), date(2025, 6, 15)},
		{"feb 29 clamps to feb 28", date(2024, 2, 29), date(2025, 2, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnnualAdvancer{}.Next(tt.from)
			if !got.Equal(tt.want.Time) {
				t.Errorf("Next(%v) = %v, want %v", tt.from.Time, got.Time, tt.want.Time)
			}
		})
	}
}

func TestQuarterlyAdvancer(t *testing.T) {
	got := QuarterlyAdvancer{}.Next(date(2024, 11, 30))
	want := date(2025, 2, 28)
	if !got.Equal(want.Time) {
		t.Errorf("Next(2024-11-30) = %v, want %v", got.Time, want.Time)
	}
}

func TestWeeklyAndBiweeklyAdvancers(t *testing.T) {
	from := date(2024, 12, 28)

	gotWeekly := WeeklyAdvancer{}.Next(from)
	if !gotWeekly.Equal(date(2025, 1, 4).Time) {
		t.Errorf("WeeklyAdvancer.Next(2024-12-28) = %v, want 2025-01-04", gotWeekly.Time)
	}

	gotBiweekly := BiweeklyAdvancer{}.Next(from)
	if !gotBiweekly.Equal(date(2025, 1, 11).Time) {
		t.Errorf("BiweeklyAdvancer.Next(2024-12-28) = %v, want 2025-01-11", gotBiweekly.Time)
	}
}

func TestGetCycleAdvancer(t *testing.T) {
	for _, cycle := range []core.BillingCycle{
		core.Monthly, core.Annual, core.Quarterly, core.Weekly, core.Biweekly,
	} {
		if _, err := GetCycleAdvancer(cycle); err != nil {
			t.Errorf("GetCycleAdvancer(%s) error = %v", cycle, err)
		}
	}

	if _, err := GetCycleAdvancer(core.BillingCycle("daily")); err == nil {
		t.Error("GetCycleAdvancer should fail for an unknown cycle")
	}
}
