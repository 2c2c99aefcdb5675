package http

import (
	"momentum/internal/core"
	"momentum/internal/services"
)

// JSON shapes returned by the API. Amounts carry both raw cents and a
// formatted string so clients never re-implement money formatting.

type moneyDTO struct {
	Cents     int64  `json:"cents"`
	Formatted string `json:"formatted"`
}

func moneyJSON(m core.Money) moneyDTO {
	return moneyDTO{Cents: m.Cents, Formatted: m.String()}
}

type transactionDTO struct {
	ID         int64    `json:"id"`
	AccountID  int64    `json:"account_id"`
	CategoryID int64    `json:"category_id,omitempty"`
	Title      string   `json:"title"`
	Amount     moneyDTO `json:"amount"`
	Date       string   `json:"date"`
	Type       string   `json:"type"`
	Notes      string   `json:"notes,omitempty"`
	Reconciled bool     `json:"reconciled"`
}

func transactionJSON(t core.Transaction) transactionDTO {
	return transactionDTO{
		ID:         t.ID,
		AccountID:  t.AccountID,
		CategoryID: t.CategoryID,
		Title:      t.Title,
		Amount:     moneyJSON(t.Amount),
		Date:       t.Date.Format("2006-01-02"),
		Type:       string(t.Type),
		Notes:      t.Notes,
		Reconciled: t.Reconciled,
	}
}

func transactionsJSON(txns []core.Transaction) []transactionDTO {
	out := make([]transactionDTO, 0, len(txns))
	for _, t := range txns {
		out = append(out, transactionJSON(t))
	}
	return out
}

type accountDTO struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Baseline       moneyDTO `json:"baseline"`
	Balance        moneyDTO `json:"balance"`
	CurrencyCode   string   `json:"currency_code,omitempty"`
	InterestRate   float64  `json:"interest_rate,omitempty"`
	CreditLimit    moneyDTO `json:"credit_limit"`
	Institution    string   `json:"institution,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	Active         bool     `json:"active"`
	IncludeInTotal bool     `json:"include_in_total"`
}

func accountJSON(ab services.AccountWithBalance) accountDTO {
	a := ab.Account
	return accountDTO{
		ID:             a.ID,
		Name:           a.Name,
		Type:           string(a.Type),
		Baseline:       moneyJSON(a.Balance),
		Balance:        moneyJSON(ab.Balance),
		CurrencyCode:   a.CurrencyCode,
		InterestRate:   a.InterestRate,
		CreditLimit:    moneyJSON(a.CreditLimit),
		Institution:    a.Institution,
		Notes:          a.Notes,
		Active:         a.Active,
		IncludeInTotal: a.IncludeInTotal,
	}
}

type categoryDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

func categoryJSON(c core.Category) categoryDTO {
	return categoryDTO{ID: c.ID, Name: c.Name, Color: c.Color, Icon: c.Icon}
}

type budgetDTO struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	CategoryID   int64    `json:"category_id"`
	CategoryName string   `json:"category_name,omitempty"`
	Year         int      `json:"year"`
	Month        int      `json:"month"`
	Limit        moneyDTO `json:"limit"`
	Spent        moneyDTO `json:"spent"`
	Remaining    moneyDTO `json:"remaining"`
	Percentage   float64  `json:"percentage"`
	OverBudget   bool     `json:"over_budget"`
}

func budgetJSON(r services.BudgetReport) budgetDTO {
	return budgetDTO{
		ID:           r.Budget.ID,
		Name:         r.Budget.Name,
		CategoryID:   r.Budget.CategoryID,
		CategoryName: r.CategoryName,
		Year:         r.Budget.Year,
		Month:        r.Budget.Month,
		Limit:        moneyJSON(r.Budget.Limit),
		Spent:        moneyJSON(r.Status.Spent),
		Remaining:    moneyJSON(r.Status.Remaining),
		Percentage:   r.Status.Percentage,
		OverBudget:   r.Status.OverBudget,
	}
}

type subscriptionDTO struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Amount       moneyDTO `json:"amount"`
	Cycle        string   `json:"cycle"`
	NextPayment  string   `json:"next_payment"`
	Provider     string   `json:"provider,omitempty"`
	CurrencyCode string   `json:"currency_code,omitempty"`
	AccountID    int64    `json:"account_id"`
	CategoryID   int64    `json:"category_id,omitempty"`
	MonthlyCost  moneyDTO `json:"monthly_cost"`
}

func subscriptionJSON(c services.SubscriptionCost) subscriptionDTO {
	s := c.Subscription
	return subscriptionDTO{
		ID:           s.ID,
		Name:         s.Name,
		Amount:       moneyJSON(s.Amount),
		Cycle:        string(s.Cycle),
		NextPayment:  s.NextPayment.Format("2006-01-02"),
		Provider:     s.Provider,
		CurrencyCode: s.CurrencyCode,
		AccountID:    s.AccountID,
		CategoryID:   s.CategoryID,
		MonthlyCost:  moneyJSON(c.MonthlyCost),
	}
}

type goalDTO struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Target     moneyDTO `json:"target"`
	Current    moneyDTO `json:"current"`
	TargetDate string   `json:"target_date,omitempty"`
	Progress   float64  `json:"progress"`
	Remaining  moneyDTO `json:"remaining"`
}

func goalJSON(r services.GoalReport) goalDTO {
	dto := goalDTO{
		ID:        r.Goal.ID,
		Name:      r.Goal.Name,
		Target:    moneyJSON(r.Goal.Target),
		Current:   moneyJSON(r.Goal.Current),
		Progress:  r.Progress,
		Remaining: moneyJSON(r.Remaining),
	}
	if !r.Goal.TargetDate.IsZero() {
		dto.TargetDate = r.Goal.TargetDate.Format("2006-01-02")
	}
	return dto
}

type categoryAmountDTO struct {
	Name   string   `json:"name"`
	Amount moneyDTO `json:"amount"`
}

func categoryAmountsJSON(in []core.CategoryAmount) []categoryAmountDTO {
	out := make([]categoryAmountDTO, 0, len(in))
	for _, ca := range in {
		out = append(out, categoryAmountDTO{Name: ca.Name, Amount: moneyJSON(ca.Amount)})
	}
	return out
}

type overviewDTO struct {
	Year       int                 `json:"year"`
	Month      int                 `json:"month"`
	Income     moneyDTO            `json:"income"`
	Expenses   moneyDTO            `json:"expenses"`
	Net        moneyDTO            `json:"net"`
	ByCategory []categoryAmountDTO `json:"by_category"`
}

func overviewJSON(o core.MonthOverview) overviewDTO {
	return overviewDTO{
		Year:       o.Year,
		Month:      o.Month,
		Income:     moneyJSON(o.Income),
		Expenses:   moneyJSON(o.Expenses),
		Net:        moneyJSON(o.Net),
		ByCategory: categoryAmountsJSON(o.ByCategory),
	}
}

type frameReportDTO struct {
	Frame      string              `json:"frame"`
	Income     moneyDTO            `json:"income"`
	Expenses   moneyDTO            `json:"expenses"`
	Net        moneyDTO            `json:"net"`
	Count      int                 `json:"count"`
	ByCategory []categoryAmountDTO `json:"by_category"`
}

func frameReportJSON(r core.FrameReport) frameReportDTO {
	return frameReportDTO{
		Frame:      string(r.Frame),
		Income:     moneyJSON(r.Income),
		Expenses:   moneyJSON(r.Expenses),
		Net:        moneyJSON(r.Net),
		Count:      r.Count,
		ByCategory: categoryAmountsJSON(r.ByCategory),
	}
}
