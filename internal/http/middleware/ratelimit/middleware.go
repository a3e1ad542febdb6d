package ratelimit

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bornholm/chatten/internal/metrics"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

type Options struct {
	// Use the X-Forwarded-For and X-Real-Ip headers to identify clients
	TrustHeaders bool
	Interval     time.Duration
	MaxBurst     int
	CacheSize    int
	CacheTTL     time.Duration
}

type OptionFunc func(opts *Options)

func WithTrustHeaders(trust bool) OptionFunc {
	return func(opts *Options) {
		opts.TrustHeaders = trust
	}
}

func WithLimit(interval time.Duration, maxBurst int) OptionFunc {
	return func(opts *Options) {
		opts.Interval = interval
		opts.MaxBurst = maxBurst
	}
}

func WithCache(size int, ttl time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.CacheSize = size
		opts.CacheTTL = ttl
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		TrustHeaders: false,
		Interval:     time.Second,
		MaxBurst:     5,
		CacheSize:    1024,
		CacheTTL:     10 * time.Minute,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// limiters keeps one token bucket per client address.
type limiters struct {
	mu       sync.Mutex
	cache    *expirable.LRU[string, *rate.Limiter]
	interval time.Duration
	maxBurst int
}

func (l *limiters) get(remoteAddr string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.cache.Get(remoteAddr)
	if !exists {
		limiter = rate.NewLimiter(rate.Every(l.interval), l.maxBurst)
		l.cache.Add(remoteAddr, limiter)
	}

	return limiter
}

func remoteAddrOf(r *http.Request, trustHeaders bool) string {
	if trustHeaders {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			ips := strings.Split(xff, ",")
			return strings.TrimSpace(ips[0])
		}

		if xri := r.Header.Get("X-Real-Ip"); xri != "" {
			return xri
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}

// Middleware rejects with 429 the requests of clients exceeding their
// request budget.
func Middleware(funcs ...OptionFunc) func(http.Handler) http.Handler {
	opts := NewOptions(funcs...)

	limiters := &limiters{
		cache:    expirable.NewLRU[string, *rate.Limiter](opts.CacheSize, nil, opts.CacheTTL),
		interval: opts.Interval,
		maxBurst: opts.MaxBurst,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			remoteAddr := remoteAddrOf(r, opts.TrustHeaders)
			limiter := limiters.get(remoteAddr)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(opts.MaxBurst))

			reservation := limiter.Reserve()
			if !reservation.OK() || reservation.Delay() > 0 {
				retryAfter := reservation.Delay()
				reservation.Cancel()

				slog.WarnContext(r.Context(), "request rate limited", slog.String("remoteAddr", remoteAddr), slog.Duration("retryAfter", retryAfter))
				metrics.RateLimitedRequests.Inc()

				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				writeTooManyRequests(w)
				return
			}

			tokens := limiter.Tokens()

			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%.0f", math.Max(tokens, 0)))

			resetTime := time.Now()
			if missing := float64(opts.MaxBurst) - tokens; missing > 0 {
				resetTime = resetTime.Add(time.Duration(missing * float64(opts.Interval)))
			}
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

			next.ServeHTTP(w, r)
		})
	}
}

func writeTooManyRequests(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	res := map[string]string{"error": http.StatusText(http.StatusTooManyRequests)}
	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.Error("could not encode response", slog.Any("error", errors.WithStack(err)))
	}
}
