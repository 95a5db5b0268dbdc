// Package http exposes the inventory over a JSON API. Endpoints map 1:1
// onto store operations plus a handful of read-only derived views, which
// are cached under revision-stamped keys so any mutation makes the next
// read miss.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"inventory/internal/cache"
	"inventory/internal/log"
	"inventory/internal/store"
)

type Server struct {
	http.Server

	store       *store.Store
	logger      *log.Logger
	rateLimiter *rateLimiter

	// Derived-view caches; keys carry the store revision.
	overviewCache *cache.LRUCache[overviewResponse]
	budgetCache   *cache.LRUCache[budgetResponse]
	categoryCache *cache.LRUCache[[]categorySummary]

	cacheManager *cache.Manager
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, st *store.Store, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		store:         st,
		logger:        logger.WithComponent(log.ComponentHTTP),
		rateLimiter:   newRateLimiter(),
		overviewCache: cache.NewLRUCache[overviewResponse](50, 5*time.Minute),
		budgetCache:   cache.NewLRUCache[budgetResponse](50, 5*time.Minute),
		categoryCache: cache.NewLRUCache[[]categorySummary](50, 5*time.Minute),
		cacheManager:  cache.NewManager(logger),
	}

	s.cacheManager.Register(s.overviewCache)
	s.cacheManager.Register(s.budgetCache)
	s.cacheManager.Register(s.categoryCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/rooms", s.wrap(s.handleListRooms))
	mux.HandleFunc("POST /api/rooms", s.wrap(s.handleCreateRoom))
	mux.HandleFunc("GET /api/rooms/{id}", s.wrap(s.handleGetRoom))
	mux.HandleFunc("PATCH /api/rooms/{id}", s.wrap(s.handleUpdateRoom))
	mux.HandleFunc("DELETE /api/rooms/{id}", s.wrap(s.handleDeleteRoom))
	mux.HandleFunc("POST /api/rooms/{id}/assign-unassigned", s.wrap(s.handleAssignUnassigned))
	mux.HandleFunc("PUT /api/budgets", s.wrap(s.handleSetBudgets))

	mux.HandleFunc("GET /api/items", s.wrap(s.handleListItems))
	mux.HandleFunc("POST /api/items", s.wrap(s.handleCreateItem))
	mux.HandleFunc("GET /api/items/{id}", s.wrap(s.handleGetItem))
	mux.HandleFunc("PATCH /api/items/{id}", s.wrap(s.handleUpdateItem))
	mux.HandleFunc("DELETE /api/items/{id}", s.wrap(s.handleDeleteItem))
	mux.HandleFunc("POST /api/items/{id}/duplicate", s.wrap(s.handleDuplicateItem))
	mux.HandleFunc("POST /api/items/bulk/status", s.wrap(s.handleBulkStatus))
	mux.HandleFunc("POST /api/items/bulk/move", s.wrap(s.handleBulkMove))
	mux.HandleFunc("POST /api/items/bulk/delete", s.wrap(s.handleBulkDelete))

	mux.HandleFunc("GET /api/overview", s.wrap(s.handleOverview))
	mux.HandleFunc("GET /api/budget", s.wrap(s.handleBudget))
	mux.HandleFunc("GET /api/categories", s.wrap(s.handleCategories))
	mux.HandleFunc("GET /api/deliveries", s.wrap(s.handleDeliveries))

	mux.HandleFunc("GET /export/json", s.wrap(s.handleExportJSON))
	mux.HandleFunc("GET /export/csv", s.wrap(s.handleExportCSV))
	mux.HandleFunc("GET /export/budget.csv", s.wrap(s.handleExportBudgetReport))
	mux.HandleFunc("POST /import/json", s.wrap(s.handleImportJSON))
	mux.HandleFunc("POST /import/csv", s.wrap(s.handleImportCSV))

	return s
}

// Shutdown stops the HTTP server and the background cleanup goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// wrap adds security headers, per-IP rate limiting on mutating methods,
// request IDs, and request logging.
func (s *Server) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := uuid.NewString()
		logger := s.logger.With(log.FieldRequestID, requestID)
		r = r.WithContext(log.ContextWith(r.Context(), logger))
		w.Header().Set("X-Request-ID", requestID)

		if mutating(r.Method) && !s.rateLimiter.allow(clientIP) {
			logger.Warn("rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		logger.Info("request completed",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
