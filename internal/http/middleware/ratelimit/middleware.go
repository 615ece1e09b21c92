package ratelimit

import (
	"io"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"market-dispatch/internal/logx"
)

// Middleware rejects requests over the per-client budget with 429.
type Middleware struct {
	logger  logx.Logger
	counter prometheus.Counter
	limiter Limiter
}

// New creates a rate limiting Middleware. A nil limiter disables
// limiting entirely.
func New(logger logx.Logger, counter prometheus.Counter, limiter Limiter) *Middleware {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	return &Middleware{
		logger:  logger,
		counter: counter,
		limiter: limiter,
	}
}

// Handler returns chi-style middleware.
func (m *Middleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if m.limiter.Allow(ip) {
				next.ServeHTTP(w, r)
				return
			}
			m.reject(w, r, ip)
		})
	}
}

func (m *Middleware) reject(w http.ResponseWriter, r *http.Request, ip string) {
	if m.counter != nil {
		m.counter.Inc()
	}
	m.logger.Warn("rate limit exceeded",
		logx.String("ip", ip),
		logx.String("method", r.Method),
		logx.String("path", r.URL.Path),
	)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusTooManyRequests)
	if _, err := io.WriteString(w, `{"error":"too many requests"}`); err != nil {
		// клиент мог оборвать соединение
		m.logger.Debug("rate limit response write failed",
			logx.String("ip", ip),
			logx.Any("err", err),
		)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
