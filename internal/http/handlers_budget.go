package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"momentum/internal/core"
	"momentum/internal/storage"
)

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	params := ParseMonthParams(r.URL.Query(), timeNow())

	reports, err := s.budgets.BudgetReports(r.Context(), params.Year, params.Month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list budgets", "error", err)
		InternalServerError("failed to list budgets").Write(w)
		return
	}

	out := make([]budgetDTO, 0, len(reports))
	for _, rep := range reports {
		out = append(out, budgetJSON(rep))
	}
	NewJSONResponse().Payload(map[string]any{
		"year":    params.Year,
		"month":   params.Month,
		"budgets": out,
	}).Write(w)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	now := timeNow()
	budget := core.Budget{
		Name:       parser.Get("name"),
		Limit:      core.Money{Cents: parser.GetInt64("limit_cents")},
		Year:       int(parser.GetInt64("year")),
		Month:      int(parser.GetInt64("month")),
		CategoryID: parser.GetInt64("category_id"),
	}
	if budget.Year == 0 {
		budget.Year = now.Year()
	}
	if budget.Month == 0 {
		budget.Month = int(now.Month())
	}

	if err := budget.Validate(); err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}
	if budget.CategoryID <= 0 {
		UnprocessableEntityError("category_id is required").Write(w)
		return
	}

	created, err := s.budgets.CreateBudget(r.Context(), budget)
	if err != nil {
		// One budget per category per month, enforced by the schema
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			ConflictError("budget already exists for this category and month").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to create budget", "error", err)
		InternalServerError("failed to create budget").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Budget created",
		"id", created.ID, "category_id", created.CategoryID,
		"year", created.Year, "month", created.Month)

	report, err := s.budgets.BudgetReport(r.Context(), created.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load created budget", "id", created.ID, "error", err)
		InternalServerError("failed to load created budget").Write(w)
		return
	}
	NewJSONResponse().Status(http.StatusCreated).Payload(budgetJSON(report)).Write(w)
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid budget id").Write(w)
		return
	}

	report, err := s.budgets.BudgetReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			NotFoundError("budget not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to get budget", "id", id, "error", err)
		InternalServerError("failed to get budget").Write(w)
		return
	}

	NewJSONResponse().Payload(budgetJSON(report)).Write(w)
}

func (s *Server) handleUpdateBudgetLimit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid budget id").Write(w)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	limit := core.Money{Cents: parser.GetInt64("limit_cents")}
	if err := s.budgets.UpdateLimit(r.Context(), id, limit); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			NotFoundError("budget not found").Write(w)
		case errors.Is(err, core.ErrNegativeLimit):
			UnprocessableEntityError(err.Error()).Write(w)
		default:
			slog.ErrorContext(r.Context(), "Failed to update budget limit", "id", id, "error", err)
			InternalServerError("failed to update budget limit").Write(w)
		}
		return
	}

	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid budget id").Write(w)
		return
	}

	if err := s.budgets.DeleteBudget(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			NotFoundError("budget not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete budget", "id", id, "error", err)
		InternalServerError("failed to delete budget").Write(w)
		return
	}

	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}
