package http

import (
	"errors"
	"log/slog"
	"net/http"

	"momentum/internal/core"
	"momentum/internal/services"
	"momentum/internal/storage"
)

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	costs, total, err := s.subscriptions.ListWithCosts(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list subscriptions", "error", err)
		InternalServerError("failed to list subscriptions").Write(w)
		return
	}

	out := make([]subscriptionDTO, 0, len(costs))
	for _, c := range costs {
		out = append(out, subscriptionJSON(c))
	}
	NewJSONResponse().Payload(map[string]any{
		"subscriptions": out,
		"total_monthly": moneyJSON(total),
	}).Write(w)
}

func (s *Server) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	next, err := parseDate(parser.Get("next_payment"))
	if err != nil {
		BadRequestError("invalid next_payment, expected YYYY-MM-DD").Write(w)
		return
	}

	sub := core.Subscription{
		Name:         parser.Get("name"),
		Amount:       core.Money{Cents: parser.GetInt64("amount_cents")},
		Cycle:        core.BillingCycle(parser.Get("cycle")),
		NextPayment:  next,
		Provider:     parser.Get("provider"),
		CurrencyCode: parser.Get("currency_code"),
		AccountID:    parser.GetInt64("account_id"),
		CategoryID:   parser.GetInt64("category_id"),
	}

	if err := sub.Validate(); err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}
	if sub.AccountID <= 0 {
		UnprocessableEntityError("account_id is required").Write(w)
		return
	}

	created, err := s.subscriptions.CreateSubscription(r.Context(), sub)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create subscription", "error", err)
		InternalServerError("failed to create subscription").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Subscription created",
		"id", created.ID, "name", created.Name, "cycle", created.Cycle)
	NewJSONResponse().
		Status(http.StatusCreated).
		Payload(subscriptionJSON(services.SubscriptionCost{
			Subscription: created,
			MonthlyCost:  core.MonthlyEquivalentCost(created.Amount, created.Cycle),
		})).
		Write(w)
}

func (s *Server) handleDeleteSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid subscription id").Write(w)
		return
	}

	if err := s.subscriptions.DeleteSubscription(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			NotFoundError("subscription not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete subscription", "id", id, "error", err)
		InternalServerError("failed to delete subscription").Write(w)
		return
	}

	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}
