package core

// BudgetStatus is the derived view of a budget for its month.
//
// Remaining floors at zero while OverBudget carries the over-limit signal.
// Collapsing them into a signed remaining would change what callers display.
type BudgetStatus struct {
	Spent      Money
	Remaining  Money
	Percentage float64
	OverBudget bool
}

// NewBudgetStatus derives spent/remaining/percentage from a limit and the
// amount already spent. A zero limit yields Percentage 0, not a division
// error.
func NewBudgetStatus(limit, spent Money) BudgetStatus {
	status := BudgetStatus{
		Spent:      spent,
		OverBudget: spent.Cents > limit.Cents,
	}
	if remaining := limit.Cents - spent.Cents; remaining > 0 {
		status.Remaining = Money{Cents: remaining}
	}
	if limit.Cents > 0 {
		status.Percentage = float64(spent.Cents) / float64(limit.Cents)
	}
	return status
}
