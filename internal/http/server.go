// Package http exposes the ledger service as a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"zhangben/internal/cache"
	"zhangben/internal/report"
	"zhangben/internal/services"
)

type Server struct {
	http.Server
	ledger     *services.LedgerService
	settlement *services.SettlementService
	limiter    *rateLimiter

	monthlyCache *cache.TTL[monthReportResponse]
	annualCache  *cache.TTL[report.AnnualReport]

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, ledger *services.LedgerService, settlement *services.SettlementService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledger:       ledger,
		settlement:   settlement,
		limiter:      newRateLimiter(60, 5*time.Minute),
		monthlyCache: cache.NewTTL[monthReportResponse](100, 5*time.Minute),
		annualCache:  cache.NewTTL[report.AnnualReport](20, 5*time.Minute),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/company", s.wrap(s.handleListCompany))
	mux.HandleFunc("POST /api/company/income", s.wrap(s.handleCreateIncome))
	mux.HandleFunc("POST /api/company/expense", s.wrap(s.handleCreateExpense))
	mux.HandleFunc("DELETE /api/company/{id}", s.wrap(s.handleDeleteCompany))

	mux.HandleFunc("GET /api/daily", s.wrap(s.handleListDaily))
	mux.HandleFunc("POST /api/daily", s.wrap(s.handleCreateDaily))
	mux.HandleFunc("POST /api/daily/fixed", s.wrap(s.handleCreateFixedDaily))
	mux.HandleFunc("DELETE /api/daily/{id}", s.wrap(s.handleDeleteDaily))

	mux.HandleFunc("GET /api/report/month", s.wrap(s.handleMonthReport))
	mux.HandleFunc("GET /api/report/annual", s.wrap(s.handleAnnualReport))

	mux.HandleFunc("GET /api/settlement/{period}", s.wrap(s.handleEvaluateSettlement))
	mux.HandleFunc("POST /api/settlement/{period}", s.wrap(s.handleConfirmSettlement))

	return s
}

// Shutdown stops the HTTP server and the limiter cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// wrap adds request logging, security headers and write rate limiting.
func (s *Server) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ip := clientIP(r)
		requestID := uuid.NewString()
		ctx := r.Context()

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", ip)

		mutating := r.Method == http.MethodPost || r.Method == http.MethodDelete
		if mutating && !s.limiter.allow(ip) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				"client_ip", ip, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("X-Request-Id", requestID)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", ip)
	}
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// responseWriter captures the status code for request logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// invalidateReports drops cached report responses after a write.
func (s *Server) invalidateReports() {
	s.monthlyCache.Purge()
	s.annualCache.Purge()
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// rateLimiter counts requests per client IP in one-minute windows.
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientWindow
	perMinute    int
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientWindow struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter(perMinute int, cleanupInterval time.Duration) *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientWindow),
		perMinute:   perMinute,
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop(cleanupInterval)
	return rl
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	c, ok := rl.clients[clientIP]
	if !ok || now.Sub(c.lastRequest) > time.Minute {
		rl.clients[clientIP] = &clientWindow{lastRequest: now, requests: 1}
		return true
	}
	c.requests++
	c.lastRequest = now
	return c.requests <= rl.perMinute
}

func (rl *rateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := time.Now().Add(-10 * time.Minute)
			for ip, c := range rl.clients {
				if c.lastRequest.Before(cutoff) {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}
