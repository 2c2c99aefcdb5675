package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"momentum/internal/core"
	"momentum/internal/storage"
)

// Guard against runaway catch-up loops for subscriptions that went unposted
// for a long time. 120 covers over two years of weekly cycles.
const maxCatchUpPostings = 120

// BillingProcessor posts due subscriptions to the ledger and advances
// their next payment dates. Each due date claims a deterministic posting
// key before posting, so concurrent or repeated runs post at most once.
type BillingProcessor struct {
	storage *storage.SQLiteRepository
	ledger  *LedgerService
}

// NewBillingProcessor creates a new subscription billing processor.
func NewBillingProcessor(storage *storage.SQLiteRepository, ledger *LedgerService) *BillingProcessor {
	return &BillingProcessor{
		storage: storage,
		ledger:  ledger,
	}
}

// ProcessDueSubscriptions posts every subscription whose next payment date
// is on or before now. Returns the number of ledger entries created.
func (p *BillingProcessor) ProcessDueSubscriptions(ctx context.Context, now time.Time) (int, error) {
	if p.storage == nil || p.ledger == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	due, err := p.storage.ListDueSubscriptions(ctx, core.Date{Time: now})
	if err != nil {
		return 0, fmt.Errorf("list due subscriptions: %w", err)
	}

	slog.InfoContext(ctx, "Processing due subscriptions",
		"total_due", len(due),
		"processing_date", now.Format("2006-01-02"))

	postedCount := 0
	for _, sub := range due {
		posted, err := p.processSubscription(ctx, sub, now)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to process subscription",
				"id", sub.ID,
				"name", sub.Name,
				"error", err)
			continue
		}
		postedCount += posted
	}

	slog.InfoContext(ctx, "Subscription billing complete",
		"posted", postedCount,
		"total_checked", len(due))

	return postedCount, nil
}

// processSubscription catches one subscription up to now, posting once per
// elapsed cycle.
func (p *BillingProcessor) processSubscription(ctx context.Context, sub core.Subscription, now time.Time) (int, error) {
	advancer, err := GetCycleAdvancer(sub.Cycle)
	if err != nil {
		return 0, err
	}

	posted := 0
	for i := 0; i < maxCatchUpPostings; i++ {
		dueDate := sub.NextPayment
		if dueDate.IsZero() || dueDate.After(now) {
			break
		}
		next := advancer.Next(dueDate)

		claimed, err := p.storage.AdvanceSubscription(ctx, sub.ID, next, postingKey(sub.ID, dueDate))
		if err != nil {
			return posted, fmt.Errorf("advance subscription: %w", err)
		}
		if !claimed {
			// Another run already posted this cycle
			break
		}

		if err := p.postPayment(ctx, sub, dueDate); err != nil {
			// Date is already advanced, so a retry next run would double
			// charge; log loudly and move on.
			slog.ErrorContext(ctx, "Failed to post subscription payment",
				"subscription_id", sub.ID,
				"name", sub.Name,
				"due_date", dueDate.Format("2006-01-02"),
				"error", err)
			sub.NextPayment = next
			continue
		}

		posted++
		slog.InfoContext(ctx, "Posted subscription payment",
			"subscription_id", sub.ID,
			"name", sub.Name,
			"amount_cents", sub.Amount.Cents,
			"due_date", dueDate.Format("2006-01-02"),
			"next_payment", next.Format("2006-01-02"))

		sub.NextPayment = next
	}

	return posted, nil
}

func (p *BillingProcessor) postPayment(ctx context.Context, sub core.Subscription, dueDate core.Date) error {
	txn := core.Transaction{
		AccountID:  sub.AccountID,
		CategoryID: sub.CategoryID,
		Title:      sub.Name,
		Amount:     sub.Amount,
		Date:       dueDate,
		Type:       core.Expense,
		Notes:      subscriptionNotes(sub),
	}
	_, err := p.ledger.RecordTransaction(ctx, txn)
	return err
}

func subscriptionNotes(sub core.Subscription) string {
	if sub.Provider == "" {
		return fmt.Sprintf("Subscription (%s)", sub.Cycle)
	}
	return fmt.Sprintf("Subscription via %s (%s)", sub.Provider, sub.Cycle)
}

// postingKey derives a stable idempotency key for one subscription cycle.
// The same subscription and due date always produce the same key, so a
// rerun cannot claim the cycle twice.
func postingKey(subscriptionID int64, dueDate core.Date) string {
	name := fmt.Sprintf("subscription-%d-%s", subscriptionID, dueDate.Format("2006-01-02"))
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
