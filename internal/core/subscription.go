package core

// cycleRatio expresses a billing cycle's monthly-equivalent factor as an
// exact fraction so cent math stays in integers.
type cycleRatio struct {
	num int64
	den int64
}

// Monthly-equivalent factors per billing cycle. The weekly and biweekly
// figures (4.33 and 2.17) are deliberately approximate month averages, not
// exact day-based amortization. Changing them would change reported totals.
var cycleRatios = map[BillingCycle]cycleRatio{
	Monthly:   {1, 1},
	Annual:    {1, 12},
	Quarterly: {1, 3},
	Weekly:    {433, 100},
	Biweekly:  {217, 100},
}

// MonthlyEquivalentCost normalizes a billing amount to an average monthly
// figure using the fixed per-cycle factor table. Unknown cycles fall back
// to the amount unchanged. Rounding is half-up on cents.
func MonthlyEquivalentCost(amount Money, cycle BillingCycle) Money {
	ratio, ok := cycleRatios[cycle]
	if !ok {
		return amount
	}
	return Money{Cents: (amount.Cents*ratio.num + ratio.den/2) / ratio.den}
}

// MonthlyEquivalentTotal sums the monthly-equivalent costs of all
// subscriptions.
func MonthlyEquivalentTotal(subs []Subscription) Money {
	var total int64
	for _, s := range subs {
		total += MonthlyEquivalentCost(s.Amount, s.Cycle).Cents
	}
	return Money{Cents: total}
}
