package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"momentum/internal/cache"
	"momentum/internal/core"
	applog "momentum/internal/log"
	"momentum/internal/middleware/ratelimit"
	"momentum/internal/middleware/security"
	"momentum/internal/middleware/trace"
	"momentum/internal/services"
	"momentum/internal/storage"
)

// Server is the JSON API over the ledger. Read-heavy aggregation routes
// sit behind LRU caches that writes invalidate.
type Server struct {
	http.Server

	storage       *storage.SQLiteRepository
	ledger        *services.LedgerService
	accounts      *services.AccountService
	budgets       *services.BudgetService
	subscriptions *services.SubscriptionService
	goals         *services.GoalService
	reports       *services.ReportService

	limiter      *ratelimit.Limiter
	detector     *security.Detector
	cacheManager *cache.Manager

	overviewCache *cache.LRUCache[core.MonthOverview]
	reportCache   *cache.LRUCache[core.FrameReport]

	shutdownOnce sync.Once
}

// Services bundles the dependencies the server handles requests with.
type Services struct {
	Storage       *storage.SQLiteRepository
	Ledger        *services.LedgerService
	Accounts      *services.AccountService
	Budgets       *services.BudgetService
	Subscriptions *services.SubscriptionService
	Goals         *services.GoalService
	Reports       *services.ReportService
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, deps Services) *Server {
	mux := http.NewServeMux()

	s := &Server{
		storage:       deps.Storage,
		ledger:        deps.Ledger,
		accounts:      deps.Accounts,
		budgets:       deps.Budgets,
		subscriptions: deps.Subscriptions,
		goals:         deps.Goals,
		reports:       deps.Reports,

		limiter:       ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector:      security.NewDetector(),
		cacheManager:  cache.NewManager(),
		overviewCache: cache.NewLRUCache[core.MonthOverview](100, 5*time.Minute),
		reportCache:   cache.NewLRUCache[core.FrameReport](50, 5*time.Minute),
	}

	s.cacheManager.Register(s.overviewCache)
	s.cacheManager.Register(s.reportCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/v1/accounts", s.handleListAccounts)
	mux.HandleFunc("POST /api/v1/accounts", s.handleCreateAccount)
	mux.HandleFunc("GET /api/v1/accounts/{id}", s.handleGetAccount)
	mux.HandleFunc("POST /api/v1/accounts/{id}/baseline", s.handleUpdateBaseline)
	mux.HandleFunc("POST /api/v1/accounts/{id}/archive", s.handleArchiveAccount)
	mux.HandleFunc("POST /api/v1/accounts/{id}/restore", s.handleRestoreAccount)
	mux.HandleFunc("GET /api/v1/networth", s.handleNetWorth)

	mux.HandleFunc("GET /api/v1/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/v1/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/v1/transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("DELETE /api/v1/transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("POST /api/v1/transactions/{id}/reconcile", s.handleReconcileTransaction)
	mux.HandleFunc("POST /api/v1/transactions/{id}/notes", s.handleUpdateTransactionNotes)

	mux.HandleFunc("GET /api/v1/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/v1/categories", s.handleCreateCategory)
	mux.HandleFunc("DELETE /api/v1/categories/{id}", s.handleDeleteCategory)

	mux.HandleFunc("GET /api/v1/budgets", s.handleListBudgets)
	mux.HandleFunc("POST /api/v1/budgets", s.handleCreateBudget)
	mux.HandleFunc("GET /api/v1/budgets/{id}", s.handleGetBudget)
	mux.HandleFunc("POST /api/v1/budgets/{id}/limit", s.handleUpdateBudgetLimit)
	mux.HandleFunc("DELETE /api/v1/budgets/{id}", s.handleDeleteBudget)

	mux.HandleFunc("GET /api/v1/subscriptions", s.handleListSubscriptions)
	mux.HandleFunc("POST /api/v1/subscriptions", s.handleCreateSubscription)
	mux.HandleFunc("DELETE /api/v1/subscriptions/{id}", s.handleDeleteSubscription)

	mux.HandleFunc("GET /api/v1/goals", s.handleListGoals)
	mux.HandleFunc("POST /api/v1/goals", s.handleCreateGoal)
	mux.HandleFunc("POST /api/v1/goals/{id}/contribute", s.handleContributeGoal)
	mux.HandleFunc("DELETE /api/v1/goals/{id}", s.handleDeleteGoal)

	mux.HandleFunc("GET /api/v1/overview", s.handleMonthOverview)
	mux.HandleFunc("GET /api/v1/reports", s.handleFrameReport)

	traceMW := trace.NewMiddleware(clientIP)
	securityMW := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	loggerMW := applog.Middleware(applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentHTTP,
	}))
	// The detector validates forwarded headers, so the rate limiter keys
	// on an IP a client cannot spoof past a trusted proxy.
	limitMW := s.limiter.Middleware(s.detector.ExtractClientIP, nil)

	handler := s.writeLimited(limitMW, mux)
	handler = s.flagSuspicious(handler)
	handler = loggerMW(handler)
	handler = securityMW.Middleware(handler)
	handler = traceMW.Middleware(handler)

	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}

	return s
}

// flagSuspicious logs requests matching known probe patterns. Detection
// is advisory; the request still proceeds through normal routing.
func (s *Server) flagSuspicious(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			slog.WarnContext(r.Context(), "Suspicious request detected",
				"method", r.Method,
				"path", r.URL.Path,
				"client_ip", s.detector.ExtractClientIP(r))
		}
		next.ServeHTTP(w, r)
	})
}

// writeLimited applies the rate limiter to mutating requests only; reads
// stay unthrottled so dashboards can poll.
func (s *Server) writeLimited(limitMW func(http.Handler) http.Handler, next http.Handler) http.Handler {
	limited := limitMW(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			limited.ServeHTTP(w, r)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.storage != nil {
		if _, err := s.storage.ListCategories(r.Context()); err != nil {
			ErrorResponse(http.StatusServiceUnavailable, "database not ready").Write(w)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func overviewCacheKey(year, month int) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(month)
}

// invalidateAggregates drops cached aggregations touching the given month.
// Frame reports span arbitrary windows, so those are dropped wholesale.
func (s *Server) invalidateAggregates(year, month int) {
	s.overviewCache.Delete(overviewCacheKey(year, month))
	for _, frame := range core.TimeFrames() {
		s.reportCache.Delete(string(frame))
	}
}
