package core

import (
	"testing"
	"time"
)

func TestTimeFrameContains(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		frame TimeFrame
		date  time.Time
		want  bool
	}{
		{
			name:  "last30days includes recent date",
			frame: Last30Days,
			date:  time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
			want:  true,
		},
		{
			name:  "last30days excludes older date",
			frame: Last30Days,
			date:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			name:  "last30days excludes future date",
			frame: Last30Days,
			date:  time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			name:  "last90days includes date outside 30 days",
			frame: Last90Days,
			date:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			want:  true,
		},
		{
			name:  "thisyear matches calendar year",
			frame: ThisYear,
			date:  time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			want:  true,
		},
		{
			name:  "thisyear excludes previous year",
			frame: ThisYear,
			date:  time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			name:  "lastyear is exact previous calendar year",
			frame: LastYear,
			date:  time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC),
			want:  true,
		},
		{
			name:  "lastyear includes Jan 1 of previous year",
			frame: LastYear,
			date:  time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			want:  true,
		},
		{
			name:  "lastyear includes Dec 31 of previous year",
			frame: LastYear,
			date:  time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC),
			want:  true,
		},
		{
			// A rolling 365-day window would include this date; the exact
			// calendar-year contract must not.
			name:  "lastyear excludes dates from two years back",
			frame: LastYear,
			date:  time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			name:  "lastyear excludes current year",
			frame: LastYear,
			date:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			name:  "alltime includes everything",
			frame: AllTime,
			date:  time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.frame.Contains(tt.date, now); got != tt.want {
				t.Errorf("%s.Contains(%s) = %v, want %v", tt.frame, tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestParseTimeFrame(t *testing.T) {
	for _, valid := range []string{"last30days", "last90days", "thisyear", "lastyear", "alltime"} {
		if _, err := ParseTimeFrame(valid); err != nil {
			t.Errorf("ParseTimeFrame(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParseTimeFrame("fortnight"); err == nil {
		t.Error("ParseTimeFrame(fortnight) expected error")
	}
}

func TestFilterByFrame(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	txns := []Transaction{
		{Title: "recent", Amount: Money{Cents: 100}, Date: NewDate(2024, 2, 20), Type: Expense},
		{Title: "old", Amount: Money{Cents: 200}, Date: NewDate(2023, 2, 20), Type: Expense},
	}

	got := FilterByFrame(txns, Last30Days, now)
	if len(got) != 1 || got[0].Title != "recent" {
		t.Errorf("FilterByFrame(last30days) = %v, want only recent", got)
	}

	if got := FilterByFrame(txns, AllTime, now); len(got) != 2 {
		t.Errorf("FilterByFrame(alltime) kept %d of 2", len(got))
	}
}
