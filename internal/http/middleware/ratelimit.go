package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/crestline-remodeling/proposal-api/internal/config"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// RateLimiter applies a per-IP request budget. Whitelisted IPs and paths
// bypass the limiter entirely; path entries ending in "/*" match by prefix.
type RateLimiter struct {
	enabled   bool
	logger    *zap.Logger
	ipLimiter func(http.Handler) http.Handler
	ips       map[string]struct{}
	paths     map[string]struct{}
	prefixes  []string
}

func NewRateLimiter(cfg *config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		enabled: cfg.Enabled,
		logger:  logger,
		ips:     make(map[string]struct{}, len(cfg.WhitelistIPs)),
		paths:   make(map[string]struct{}, len(cfg.WhitelistPaths)),
	}

	for _, ip := range cfg.WhitelistIPs {
		rl.ips[ip] = struct{}{}
	}
	for _, path := range cfg.WhitelistPaths {
		if strings.HasSuffix(path, "/*") {
			rl.prefixes = append(rl.prefixes, strings.TrimSuffix(path, "/*"))
		} else {
			rl.paths[path] = struct{}{}
		}
	}

	rl.ipLimiter = httprate.Limit(
		cfg.RequestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rl.limitExceeded),
	)

	logger.Info("Rate limiter initialized",
		zap.Bool("enabled", cfg.Enabled),
		zap.Int("requests_per_minute", cfg.RequestsPerMinute),
		zap.Int("whitelisted_ips", len(rl.ips)),
		zap.Int("whitelisted_paths", len(cfg.WhitelistPaths)),
	)
	return rl
}

// Limit returns the rate limiting middleware.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	if !rl.enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.exempt(r) {
			next.ServeHTTP(w, r)
			return
		}
		rl.ipLimiter(next).ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) exempt(r *http.Request) bool {
	if _, ok := rl.paths[r.URL.Path]; ok {
		return true
	}
	for _, prefix := range rl.prefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	_, ok := rl.ips[clientIP(r)]
	return ok
}

func (rl *RateLimiter) limitExceeded(w http.ResponseWriter, r *http.Request) {
	rl.logger.Warn("Rate limit exceeded",
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.String("client_ip", clientIP(r)),
	)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "60")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"error":"rate limit exceeded","message":"Too many requests. Please try again later."}`))
}

// clientIP resolves the originating address, preferring proxy headers.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
