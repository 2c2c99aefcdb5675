package core

// GoalProgress returns current/target as a fraction. A zero or negative
// target yields 0 rather than dividing by zero. Progress may exceed 1.0
// when a goal is overfunded.
func GoalProgress(g SavingsGoal) float64 {
	if g.Target.Cents <= 0 {
		return 0
	}
	return float64(g.Current.Cents) / float64(g.Target.Cents)
}

// GoalRemaining returns the amount still needed, floored at zero.
func GoalRemaining(g SavingsGoal) Money {
	if remaining := g.Target.Cents - g.Current.Cents; remaining > 0 {
		return Money{Cents: remaining}
	}
	return Money{}
}
