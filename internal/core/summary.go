package core

import "time"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// MonthOverview is a compact summary for a specific year+month.
type MonthOverview struct {
	Year       int
	Month      int // 1-12
	Income     Money
	Expenses   Money
	Net        Money
	ByCategory []CategoryAmount
}

// FrameReport summarizes the transactions inside a time frame window.
type FrameReport struct {
	Frame      TimeFrame
	Income     Money
	Expenses   Money
	Net        Money
	Count      int
	ByCategory []CategoryAmount
}

// BuildMonthOverview aggregates one calendar month of transactions.
// categoryNames maps category ID to display name; uncategorized expenses
// are grouped under "Uncategorized".
func BuildMonthOverview(txns []Transaction, year, month int, categoryNames map[int64]string) MonthOverview {
	overview := MonthOverview{Year: year, Month: month}
	byCategory := map[string]int64{}
	var order []string
	for _, t := range txns {
		if !t.Date.InMonth(year, month) {
			continue
		}
		switch t.Type {
		case Income:
			overview.Income.Cents += t.Amount.Cents
		case Expense:
			overview.Expenses.Cents += t.Amount.Cents
			name := categoryName(t.CategoryID, categoryNames)
			if _, seen := byCategory[name]; !seen {
				order = append(order, name)
			}
			byCategory[name] += t.Amount.Cents
		}
	}
	overview.Net = overview.Income.Sub(overview.Expenses)
	for _, name := range order {
		overview.ByCategory = append(overview.ByCategory, CategoryAmount{
			Name:   name,
			Amount: Money{Cents: byCategory[name]},
		})
	}
	return overview
}

// BuildFrameReport aggregates the transactions falling inside frame,
// windowed relative to the explicit now.
func BuildFrameReport(txns []Transaction, frame TimeFrame, now time.Time, categoryNames map[int64]string) FrameReport {
	report := FrameReport{Frame: frame}
	byCategory := map[string]int64{}
	var order []string
	for _, t := range txns {
		if !frame.Contains(t.Date.Time, now) {
			continue
		}
		report.Count++
		switch t.Type {
		case Income:
			report.Income.Cents += t.Amount.Cents
		case Expense:
			report.Expenses.Cents += t.Amount.Cents
			name := categoryName(t.CategoryID, categoryNames)
			if _, seen := byCategory[name]; !seen {
				order = append(order, name)
			}
			byCategory[name] += t.Amount.Cents
		}
	}
	report.Net = report.Income.Sub(report.Expenses)
	for _, name := range order {
		report.ByCategory = append(report.ByCategory, CategoryAmount{
			Name:   name,
			Amount: Money{Cents: byCategory[name]},
		})
	}
	return report
}

func categoryName(id int64, names map[int64]string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return "Uncategorized"
}
