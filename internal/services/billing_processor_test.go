package services

import (
	"context"
	"testing"
	"time"

	"momentum/internal/core"
)

func subscription(name string, cents int64, cycle string, next core.Date) core.Subscription {
	return core.Subscription{
		Name:        name,
		Amount:      core.Money{Cents: cents},
		Cycle:       core.BillingCycle(cycle),
		NextPayment: next,
		AccountID:   1,
	}
}

func TestNewBillingProcessor(t *testing.T) {
	processor := NewBillingProcessor(nil, nil)

	if processor == nil {
		t.Error("NewBillingProcessor should return non-nil processor")
	}
}

func TestBillingProcessor_NotInitialized(t *testing.T) {
	processor := NewBillingProcessor(nil, nil)

	_, err := processor.ProcessDueSubscriptions(context.Background(), time.Now())
	if err == nil {
		t.Error("ProcessDueSubscriptions should fail when processor has no storage")
	}
}

func TestPostingKey_Deterministic(t *testing.T) {
	due := date(2024, 3, 15)

	first := postingKey(42, due)
	second := postingKey(42, due)
	if first != second {
		t.Errorf("postingKey should be deterministic: %q != %q", first, second)
	}

	otherSub := postingKey(43, due)
	if first == otherSub {
		t.Error("postingKey should differ across subscriptions")
	}

	otherDate := postingKey(42, date(2024, 4, 15))
	if first == otherDate {
		t.Error("postingKey should differ across due dates")
	}
}

func TestSubscriptionNotes(t *testing.T) {
	sub := subscription("Netflix", 1599, "monthly", date(2024, 3, 1))

	if got := subscriptionNotes(sub); got != "Subscription (monthly)" {
		t.Errorf("subscriptionNotes() = %q", got)
	}

	sub.Provider = "Visa"
	if got := subscriptionNotes(sub); got != "Subscription via Visa (monthly)" {
		t.Errorf("subscriptionNotes() with provider = %q", got)
	}
}
