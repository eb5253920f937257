package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/go-quiz-server/internal/errors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL       = 5 * time.Minute
	limiterSweepInterval = time.Minute
)

// ipRateLimiter keeps one token bucket per client IP and drops buckets that
// have been idle for limiterIdleTTL.
type ipRateLimiter struct {
	perSecond rate.Limit
	burst     int

	mu      sync.Mutex
	buckets map[string]*bucket

	stop      chan struct{}
	closeOnce sync.Once
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newIPRateLimiter(perSecond float64, burst int) *ipRateLimiter {
	l := &ipRateLimiter{
		perSecond: rate.Limit(perSecond),
		burst:     burst,
		buckets:   make(map[string]*bucket),
		stop:      make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Allow spends a token from ip's bucket and returns ErrRateLimited when the
// bucket is empty.
func (l *ipRateLimiter) Allow(ip string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.perSecond, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = time.Now()
	if !b.lim.Allow() {
		return apperrors.ErrRateLimited
	}
	return nil
}

func (l *ipRateLimiter) Close() {
	l.closeOnce.Do(func() { close(l.stop) })
}

func (l *ipRateLimiter) sweep() {
	ticker := time.NewTicker(limiterSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case now := <-ticker.C:
			l.mu.Lock()
			for ip, b := range l.buckets {
				if now.Sub(b.lastSeen) > limiterIdleTTL {
					delete(l.buckets, ip)
				}
			}
			l.mu.Unlock()
		}
	}
}

// LoginRateLimitMiddleware answers 429 once a client IP exhausts its login
// attempts.
func (s *Server) LoginRateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.loginLimiter == nil {
			next(w, r)
			return
		}
		ip := s.clientIP(r)
		if err := s.loginLimiter.Allow(ip); err != nil {
			zerolog.Ctx(r.Context()).Warn().Str("ip", ip).Msg("login rate limit exceeded")
			w.Header().Set("Retry-After", "1")
			writeMessage(w, httpStatus(err), "Too many login attempts")
			return
		}
		next(w, r)
	}
}

// clientIP keys the limiter. X-Forwarded-For is client controlled, so it is
// only read when the server trusts its proxy, and then only the entry that
// proxy appended (the last one).
func (s *Server) clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && s.config.GetTrustProxyHeaders() {
		last := xff[strings.LastIndex(xff, ",")+1:]
		if ip := strings.TrimSpace(last); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
