package http

import (
	"errors"
	"log/slog"
	"net/http"

	"momentum/internal/core"
	"momentum/internal/services"
	"momentum/internal/storage"
)

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.accounts.ListAccountsWithBalances(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list accounts", "error", err)
		InternalServerError("failed to list accounts").Write(w)
		return
	}

	out := make([]accountDTO, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountJSON(a))
	}
	NewJSONResponse().Payload(map[string]any{"accounts": out}).Write(w)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	account := core.Account{
		Name:           parser.Get("name"),
		Type:           core.AccountType(parser.Get("type")),
		Balance:        core.Money{Cents: parser.GetInt64("balance_cents")},
		CurrencyCode:   parser.Get("currency_code"),
		InterestRate:   parser.GetFloat64("interest_rate"),
		CreditLimit:    core.Money{Cents: parser.GetInt64("credit_limit_cents")},
		Institution:    parser.Get("institution"),
		AccountNumber:  parser.Get("account_number"),
		Notes:          parser.Get("notes"),
		Active:         true,
		IncludeInTotal: true,
	}
	if parser.Get("include_in_total") != "" {
		account.IncludeInTotal = parser.GetBool("include_in_total")
	}

	if err := account.Validate(); err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	created, err := s.accounts.CreateAccount(r.Context(), account)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create account", "error", err)
		InternalServerError("failed to create account").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Account created", "id", created.ID, "name", created.Name)
	NewJSONResponse().
		Status(http.StatusCreated).
		Payload(accountJSON(accountWithBaseline(created))).
		Write(w)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid account id").Write(w)
		return
	}

	account, err := s.accounts.GetAccountWithBalance(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			NotFoundError("account not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to get account", "id", id, "error", err)
		InternalServerError("failed to get account").Write(w)
		return
	}

	NewJSONResponse().Payload(accountJSON(account)).Write(w)
}

func (s *Server) handleUpdateBaseline(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid account id").Write(w)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	balance := core.Money{Cents: parser.GetInt64("balance_cents")}
	if err := s.accounts.UpdateBaseline(r.Context(), id, balance); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			NotFoundError("account not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to update baseline", "id", id, "error", err)
		InternalServerError("failed to update baseline").Write(w)
		return
	}

	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}

func (s *Server) handleArchiveAccount(w http.ResponseWriter, r *http.Request) {
	s.setAccountActive(w, r, false)
}

func (s *Server) handleRestoreAccount(w http.ResponseWriter, r *http.Request) {
	s.setAccountActive(w, r, true)
}

func (s *Server) setAccountActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid account id").Write(w)
		return
	}

	if err := s.accounts.SetActive(r.Context(), id, active); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			NotFoundError("account not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to change account state", "id", id, "error", err)
		InternalServerError("failed to change account state").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Account state changed", "id", id, "active", active)
	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}

func (s *Server) handleNetWorth(w http.ResponseWriter, r *http.Request) {
	total, err := s.accounts.NetWorth(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute net worth", "error", err)
		InternalServerError("failed to compute net worth").Write(w)
		return
	}

	NewJSONResponse().Payload(map[string]any{"net_worth": moneyJSON(total)}).Write(w)
}

// accountWithBaseline wraps a freshly created account, whose derived
// balance equals its baseline because no entries exist yet.
func accountWithBaseline(a core.Account) services.AccountWithBalance {
	return services.AccountWithBalance{Account: a, Balance: a.Balance}
}
