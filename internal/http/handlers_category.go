package http

import (
	"errors"
	"log/slog"
	"net/http"

	"momentum/internal/core"
	"momentum/internal/storage"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.storage.ListCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list categories", "error", err)
		InternalServerError("failed to list categories").Write(w)
		return
	}

	out := make([]categoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryJSON(c))
	}
	NewJSONResponse().Payload(map[string]any{"categories": out}).Write(w)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	category := core.Category{
		Name:  parser.Get("name"),
		Color: parser.Get("color"),
		Icon:  parser.Get("icon"),
	}

	if err := category.Validate(); err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	created, err := s.storage.CreateCategory(r.Context(), category)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create category", "error", err)
		InternalServerError("failed to create category").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Category created", "id", created.ID, "name", created.Name)
	NewJSONResponse().Status(http.StatusCreated).Payload(categoryJSON(created)).Write(w)
}

// handleDeleteCategory removes a category. Ledger entries keep their rows
// and fall back to uncategorized via the schema's ON DELETE SET NULL.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid category id").Write(w)
		return
	}

	if err := s.storage.DeleteCategory(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			NotFoundError("category not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete category", "id", id, "error", err)
		InternalServerError("failed to delete category").Write(w)
		return
	}

	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}
