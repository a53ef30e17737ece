package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"butcem/internal/advisor"
	"butcem/internal/cache"
	"butcem/internal/core"
	"butcem/internal/middleware/ratelimit"
	"butcem/internal/middleware/security"
	"butcem/internal/middleware/trace"
	"butcem/internal/services"
	"butcem/internal/storage"
)

type Server struct {
	http.Server

	store     *storage.Store
	suggester advisor.CategorySuggester
	analysis  *services.AnalysisService

	limiter  *ratelimit.Limiter
	clientIP *security.ClientIPExtractor

	// Month summaries are cheap to recompute but sit behind every calendar
	// render, so they get a short-lived cache purged on any write.
	summaryCache *cache.LRUCache[core.MonthSummary]
	cacheMgr     *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, store *storage.Store, suggester advisor.CategorySuggester, analysis *services.AnalysisService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		store:        store,
		suggester:    suggester,
		analysis:     analysis,
		limiter:      ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		clientIP:     security.NewClientIPExtractor(),
		summaryCache: cache.NewLRUCache[core.MonthSummary](100, 5*time.Minute),
		cacheMgr:     cache.NewManager(),
	}
	s.cacheMgr.Register(s.summaryCache)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	mux.HandleFunc("/income", s.handleIncome)
	mux.HandleFunc("/income/total", s.handleIncomeTotal)
	mux.HandleFunc("/income/update", s.handleUpdateIncome)
	mux.HandleFunc("/income/delete", s.handleDeleteIncome)

	mux.HandleFunc("/expenses", s.handleExpenses)
	mux.HandleFunc("/expenses/day", s.handleExpensesByDay)
	mux.HandleFunc("/expenses/total", s.handleExpensesTotal)
	mux.HandleFunc("/expenses/categories", s.handleExpenseCategories)
	mux.HandleFunc("/expenses/daily-totals", s.handleDailyTotals)
	mux.HandleFunc("/expenses/update", s.handleUpdateExpense)
	mux.HandleFunc("/expenses/delete", s.handleDeleteExpense)

	mux.HandleFunc("/summary", s.handleSummary)

	mux.HandleFunc("/analysis/suggest-category", s.handleSuggestCategory)
	mux.HandleFunc("/analysis/report", s.handleReport)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(s.clientIP.ExtractClientIP)
	handler := tracer.Middleware(headers.Middleware(s.withWriteRateLimit(mux)))

	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}
	return s
}

// withWriteRateLimit applies per-client rate limiting to POST requests.
// Reads are unlimited.
func (s *Server) withWriteRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			clientIP := s.clientIP.ExtractClientIP(r)
			if !s.limiter.Allow(clientIP) {
				slog.WarnContext(r.Context(), "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
				w.Header().Set("Retry-After", "60")
				respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheMgr.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("database unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func summaryCacheKey(year, month int) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(month)
}

// invalidateSummaries drops all cached month summaries. Called after every
// successful write; updates and deletes arrive with only a record id, so the
// affected month is not known here.
func (s *Server) invalidateSummaries() {
	s.summaryCache.Purge()
}

func (s *Server) monthSummary(ctx context.Context, month, year int) (core.MonthSummary, error) {
	key := summaryCacheKey(year, month)
	if sum, found := s.summaryCache.Get(key); found {
		return sum, nil
	}

	sum, err := s.analysis.Summary(ctx, month, year)
	if err != nil {
		return core.MonthSummary{}, err
	}
	s.summaryCache.Set(key, sum)
	return sum, nil
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondMethodNotAllowed(w, http.MethodGet)
		return
	}

	mp := ParseMonthParams(r.URL.Query())
	if err := core.ValidateMonth(mp.Month, mp.Year); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	sum, err := s.monthSummary(r.Context(), mp.Month, mp.Year)
	if err != nil {
		slog.ErrorContext(r.Context(), "Month summary error", "error", err, "month", mp.Month, "year", mp.Year)
		respondError(w, http.StatusInternalServerError, "failed to load summary")
		return
	}

	respondData(w, http.StatusOK, toSummaryDTO(sum))
}
