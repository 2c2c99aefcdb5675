package services

import (
	"context"

	"momentum/internal/core"
	"momentum/internal/storage"
)

// SubscriptionCost pairs a subscription with its monthly-equivalent cost.
type SubscriptionCost struct {
	Subscription core.Subscription
	MonthlyCost  core.Money
}

// SubscriptionService manages recurring payments and their cost rollups.
type SubscriptionService struct {
	storage *storage.SQLiteRepository
}

func NewSubscriptionService(storage *storage.SQLiteRepository) *SubscriptionService {
	return &SubscriptionService{storage: storage}
}

func (s *SubscriptionService) CreateSubscription(ctx context.Context, sub core.Subscription) (core.Subscription, error) {
	if err := sub.Validate(); err != nil {
		return core.Subscription{}, err
	}
	return s.storage.CreateSubscription(ctx, sub)
}

// ListWithCosts returns every subscription with its monthly-equivalent
// cost, plus the total across all of them.
func (s *SubscriptionService) ListWithCosts(ctx context.Context) ([]SubscriptionCost, core.Money, error) {
	subs, err := s.storage.ListSubscriptions(ctx)
	if err != nil {
		return nil, core.Money{}, err
	}
	out := make([]SubscriptionCost, 0, len(subs))
	for _, sub := range subs {
		out = append(out, SubscriptionCost{
			Subscription: sub,
			MonthlyCost:  core.MonthlyEquivalentCost(sub.Amount, sub.Cycle),
		})
	}
	return out, core.MonthlyEquivalentTotal(subs), nil
}

func (s *SubscriptionService) GetSubscription(ctx context.Context, id int64) (core.Subscription, error) {
	return s.storage.GetSubscription(ctx, id)
}

func (s *SubscriptionService) DeleteSubscription(ctx context.Context, id int64) error {
	return s.storage.DeleteSubscription(ctx, id)
}
