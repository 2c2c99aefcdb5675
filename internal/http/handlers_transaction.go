package http

import (
	"errors"
	"log/slog"
	"net/http"

	"momentum/internal/core"
	"momentum/internal/storage"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var (
		txns []core.Transaction
		err  error
	)
	switch {
	case query.Get("account_id") != "":
		id, parseErr := parseInt64(query.Get("account_id"))
		if parseErr != nil {
			BadRequestError("invalid account_id").Write(w)
			return
		}
		txns, err = s.storage.ListTransactionsByAccount(ctx, id)
	case query.Get("category_id") != "":
		id, parseErr := parseInt64(query.Get("category_id"))
		if parseErr != nil {
			BadRequestError("invalid category_id").Write(w)
			return
		}
		txns, err = s.storage.ListTransactionsByCategory(ctx, id)
	default:
		txns, err = s.storage.ListTransactions(ctx)
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list transactions", "error", err)
		InternalServerError("failed to list transactions").Write(w)
		return
	}

	if query.Get("year") != "" || query.Get("month") != "" {
		params := ParseMonthParams(query, timeNow())
		filtered := make([]core.Transaction, 0, len(txns))
		for _, t := range txns {
			if t.Date.InMonth(params.Year, params.Month) {
				filtered = append(filtered, t)
			}
		}
		txns = filtered
	}

	NewJSONResponse().Payload(map[string]any{"transactions": transactionsJSON(txns)}).Write(w)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	date, err := parseDate(parser.Get("date"))
	if err != nil {
		BadRequestError("invalid date, expected YYYY-MM-DD").Write(w)
		return
	}

	txn := core.Transaction{
		AccountID:  parser.GetInt64("account_id"),
		CategoryID: parser.GetInt64("category_id"),
		Title:      parser.Get("title"),
		Amount:     core.Money{Cents: parser.GetInt64("amount_cents")},
		Date:       date,
		Type:       core.TransactionType(parser.Get("type")),
		Notes:      parser.Get("notes"),
	}

	if err := txn.Validate(); err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}
	if txn.AccountID <= 0 {
		UnprocessableEntityError("account_id is required").Write(w)
		return
	}

	saved, err := s.ledger.RecordTransaction(r.Context(), txn)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to record transaction", "error", err)
		InternalServerError("failed to record transaction").Write(w)
		return
	}

	s.invalidateAggregates(saved.Date.Year(), saved.Date.Month())
	NewJSONResponse().Status(http.StatusCreated).Payload(transactionJSON(saved)).Write(w)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid transaction id").Write(w)
		return
	}

	txn, err := s.storage.GetTransaction(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			NotFoundError("transaction not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to get transaction", "id", id, "error", err)
		InternalServerError("failed to get transaction").Write(w)
		return
	}

	NewJSONResponse().Payload(transactionJSON(txn)).Write(w)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid transaction id").Write(w)
		return
	}

	// Fetch before deleting so the cache invalidation knows which month
	// the entry belonged to.
	txn, err := s.storage.GetTransaction(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			NotFoundError("transaction not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to get transaction", "id", id, "error", err)
		InternalServerError("failed to delete transaction").Write(w)
		return
	}

	if err := s.ledger.DeleteTransaction(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete transaction", "id", id, "error", err)
		InternalServerError("failed to delete transaction").Write(w)
		return
	}

	s.invalidateAggregates(txn.Date.Year(), txn.Date.Month())
	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}

func (s *Server) handleReconcileTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid transaction id").Write(w)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	reconciled := true
	if parser.Get("reconciled") != "" {
		reconciled = parser.GetBool("reconciled")
	}

	if err := s.ledger.SetReconciled(r.Context(), id, reconciled); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			NotFoundError("transaction not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to set reconciled", "id", id, "error", err)
		InternalServerError("failed to set reconciled").Write(w)
		return
	}

	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}

func (s *Server) handleUpdateTransactionNotes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid transaction id").Write(w)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	if err := s.ledger.UpdateNotes(r.Context(), id, parser.Get("notes")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			NotFoundError("transaction not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to update notes", "id", id, "error", err)
		InternalServerError("failed to update notes").Write(w)
		return
	}

	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}
