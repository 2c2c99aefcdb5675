package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Checking   AccountType = "checking"
	Savings    AccountType = "savings"
	Credit     AccountType = "credit"
	Investment AccountType = "investment"
)

const (
	Monthly   BillingCycle = "monthly"
	Annual    BillingCycle = "annual"
	Quarterly BillingCycle = "quarterly"
	Weekly    BillingCycle = "weekly"
	Biweekly  BillingCycle = "biweekly"
)

type (
	TransactionType string

	AccountType string

	BillingCycle string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single ledger entry. Immutable once recorded except
	// for the Reconciled toggle and Notes edits.
	Transaction struct {
		ID         int64
		AccountID  int64
		CategoryID int64 // 0 when uncategorized
		Title      string
		Amount     Money
		Date       Date
		Type       TransactionType
		Notes      string
		Reconciled bool
	}

	// Account owns its transactions; Balance is the stored baseline, the
	// derived balance comes from CalculatedBalance.
	Account struct {
		ID             int64
		Name           string
		Type           AccountType
		Balance        Money
		CurrencyCode   string
		InterestRate   float64 // annual percentage, 0 when not applicable
		CreditLimit    Money
		Institution    string
		AccountNumber  string
		Notes          string
		Active         bool
		IncludeInTotal bool
	}

	Category struct {
		ID    int64
		Name  string
		Color string
		Icon  string
	}

	// Budget caps a category's spending for a single calendar month.
	// It holds a non-owning back-reference to the category.
	Budget struct {
		ID         int64
		Name       string
		Limit      Money
		Year       int
		Month      int // 1-12
		CategoryID int64
	}

	Subscription struct {
		ID           int64
		Name         string
		Amount       Money
		Cycle        BillingCycle
		NextPayment  Date
		Provider     string
		CurrencyCode string
		AccountID    int64
		CategoryID   int64
	}

	SavingsGoal struct {
		ID         int64
		Name       string
		Target     Money
		Current    Money
		TargetDate Date // optional, zero when open-ended
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDate        = errors.New("invalid date")
	ErrEmptyTitle         = errors.New("empty title")
	ErrEmptyName          = errors.New("empty name")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrInvalidCycle       = errors.New("invalid billing cycle")
	ErrNegativeLimit      = errors.New("negative budget limit")
	ErrInvalidMonth       = errors.New("invalid month")
	ErrInvalidTarget      = errors.New("invalid target amount")
)

// NewDate creates a Date from year, month, day at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the calendar month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// InMonth reports whether the date falls in the given calendar month.
func (d Date) InMonth(year, month int) bool {
	return d.Time.Year() == year && int(d.Time.Month()) == month
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (a AccountType) Valid() bool {
	switch a {
	case Checking, Savings, Credit, Investment:
		return true
	default:
		return false
	}
}

func (c BillingCycle) Valid() bool {
	switch c {
	case Monthly, Annual, Quarterly, Weekly, Biweekly:
		return true
	default:
		return false
	}
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(t.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

func (a Account) Validate() error {
	if len(strings.TrimSpace(a.Name)) == 0 {
		return ErrEmptyName
	}
	if len(a.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	if !a.Type.Valid() {
		return ErrInvalidAccountType
	}
	if a.CreditLimit.Cents < 0 {
		return errors.New("negative credit limit")
	}
	return nil
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	return nil
}

func (b Budget) Validate() error {
	if len(strings.TrimSpace(b.Name)) == 0 {
		return ErrEmptyName
	}
	if b.Limit.Cents < 0 {
		return ErrNegativeLimit
	}
	if b.Month < 1 || b.Month > 12 {
		return ErrInvalidMonth
	}
	if b.Year < 1 {
		return ErrInvalidDate
	}
	return nil
}

func (s Subscription) Validate() error {
	if len(strings.TrimSpace(s.Name)) == 0 {
		return ErrEmptyName
	}
	if err := s.Amount.Validate(); err != nil {
		return err
	}
	if !s.Cycle.Valid() {
		return ErrInvalidCycle
	}
	if err := s.NextPayment.Validate(); err != nil {
		return errors.New("invalid next payment date: " + err.Error())
	}
	return nil
}

func (g SavingsGoal) Validate() error {
	if len(strings.TrimSpace(g.Name)) == 0 {
		return ErrEmptyName
	}
	if g.Target.Cents <= 0 {
		return ErrInvalidTarget
	}
	if g.Current.Cents < 0 {
		return errors.New("negative current amount")
	}
	return nil
}
