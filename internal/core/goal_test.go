package core

import "testing"

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		target  int64
		want    float64
	}{
		{"halfway", 5000, 10000, 0.5},
		{"complete", 10000, 10000, 1.0},
		{"overfunded", 15000, 10000, 1.5},
		{"empty", 0, 10000, 0},
		{"zero target", 5000, 0, 0},
		{"negative target", 5000, -100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := SavingsGoal{
				Current: Money{Cents: tt.current},
				Target:  Money{Cents: tt.target},
			}
			if got := GoalProgress(g); got != tt.want {
				t.Errorf("GoalProgress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGoalRemaining(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		target  int64
		want    int64
	}{
		{"partially funded", 3000, 10000, 7000},
		{"complete", 10000, 10000, 0},
		{"overfunded floors at zero", 15000, 10000, 0},
		{"untouched", 0, 2500, 2500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := SavingsGoal{
				Current: Money{Cents: tt.current},
				Target:  Money{Cents: tt.target},
			}
			if got := GoalRemaining(g); got.Cents != tt.want {
				t.Errorf("GoalRemaining() = %d cents, want %d", got.Cents, tt.want)
			}
		})
	}
}
