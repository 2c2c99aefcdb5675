package http

import (
	"errors"
	"log/slog"
	"net/http"

	"momentum/internal/core"
	"momentum/internal/services"
	"momentum/internal/storage"
)

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	reports, err := s.goals.ListReports(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list goals", "error", err)
		InternalServerError("failed to list goals").Write(w)
		return
	}

	out := make([]goalDTO, 0, len(reports))
	for _, rep := range reports {
		out = append(out, goalJSON(rep))
	}
	NewJSONResponse().Payload(map[string]any{"goals": out}).Write(w)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	goal := core.SavingsGoal{
		Name:    parser.Get("name"),
		Target:  core.Money{Cents: parser.GetInt64("target_cents")},
		Current: core.Money{Cents: parser.GetInt64("current_cents")},
	}
	if v := parser.Get("target_date"); v != "" {
		date, err := parseDate(v)
		if err != nil {
			BadRequestError("invalid target_date, expected YYYY-MM-DD").Write(w)
			return
		}
		goal.TargetDate = date
	}

	if err := goal.Validate(); err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	created, err := s.goals.CreateGoal(r.Context(), goal)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create goal", "error", err)
		InternalServerError("failed to create goal").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Savings goal created", "id", created.ID, "name", created.Name)
	NewJSONResponse().
		Status(http.StatusCreated).
		Payload(goalJSON(services.GoalReport{
			Goal:      created,
			Progress:  core.GoalProgress(created),
			Remaining: core.GoalRemaining(created),
		})).
		Write(w)
}

func (s *Server) handleContributeGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid goal id").Write(w)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	amount := core.Money{Cents: parser.GetInt64("amount_cents")}
	if err := s.goals.Contribute(r.Context(), id, amount); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			NotFoundError("goal not found").Write(w)
		case errors.Is(err, core.ErrInvalidAmount):
			UnprocessableEntityError(err.Error()).Write(w)
		default:
			slog.ErrorContext(r.Context(), "Failed to contribute to goal", "id", id, "error", err)
			InternalServerError("failed to contribute to goal").Write(w)
		}
		return
	}

	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid goal id").Write(w)
		return
	}

	if err := s.goals.DeleteGoal(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			NotFoundError("goal not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete goal", "id", id, "error", err)
		InternalServerError("failed to delete goal").Write(w)
		return
	}

	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}
