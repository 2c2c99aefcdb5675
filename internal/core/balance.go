package core

// CalculatedBalance derives an account balance from its stored baseline and
// transaction list: income adds, expense subtracts. The sum is commutative,
// so transaction order does not matter; an empty list returns the baseline
// unchanged. The result is never clamped; credit accounts carry negative
// balances legitimately.
func CalculatedBalance(base Money, txns []Transaction) Money {
	balance := base.Cents
	for _, t := range txns {
		switch t.Type {
		case Income:
			balance += t.Amount.Cents
		case Expense:
			balance -= t.Amount.Cents
		}
	}
	return Money{Cents: balance}
}

// NetWorth sums the calculated balances of the given accounts, skipping
// inactive accounts and accounts excluded from totals. txnsByAccount maps
// account ID to that account's transactions.
func NetWorth(accounts []Account, txnsByAccount map[int64][]Transaction) Money {
	var total int64
	for _, a := range accounts {
		if !a.Active || !a.IncludeInTotal {
			continue
		}
		total += CalculatedBalance(a.Balance, txnsByAccount[a.ID]).Cents
	}
	return Money{Cents: total}
}

// TotalSpent sums the expense-type transactions dated within the given
// calendar month. Income transactions and other months are ignored.
func TotalSpent(txns []Transaction, year, month int) Money {
	var total int64
	for _, t := range txns {
		if t.Type != Expense {
			continue
		}
		if !t.Date.InMonth(year, month) {
			continue
		}
		total += t.Amount.Cents
	}
	return Money{Cents: total}
}

// TotalIncome sums the income-type transactions dated within the given
// calendar month.
func TotalIncome(txns []Transaction, year, month int) Money {
	var total int64
	for _, t := range txns {
		if t.Type != Income {
			continue
		}
		if !t.Date.InMonth(year, month) {
			continue
		}
		total += t.Amount.Cents
	}
	return Money{Cents: total}
}
