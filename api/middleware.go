/*
middleware.go - Rate limiting and roster response caching

PURPOSE:
  HTTP middleware that sits in front of the handlers:
  - Per-IP token-bucket rate limiting
  - Short-TTL response caching for the staff directory route

CACHING SCOPE:
  Only the roster route is ever cached. Report and shift responses are
  regenerated fresh on every request - a payroll report must reflect the
  event log at query time - so the cache middleware is wired to exactly one
  route in server.go, not applied globally.

SEE ALSO:
  - server.go: Wires these into the router
*/
package api

import (
	"bytes"
	"net"
	"net/http"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// =============================================================================
// RATE LIMITING - Per-client token buckets
// =============================================================================

// ipRateLimiter stores a rate limiter for each client IP.
type ipRateLimiter struct {
	mu  sync.Mutex
	ips map[string]*rate.Limiter
	r   rate.Limit
	b   int
}

func newIPRateLimiter(r rate.Limit, b int) *ipRateLimiter {
	return &ipRateLimiter{
		ips: make(map[string]*rate.Limiter),
		r:   r,
		b:   b,
	}
}

func (l *ipRateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.ips[ip]
	if !ok {
		lim = rate.NewLimiter(l.r, l.b)
		l.ips[ip] = lim
	}
	return lim
}

// RateLimit returns a middleware enforcing r requests/sec with burst b per
// client IP.
func RateLimit(r rate.Limit, b int) func(http.Handler) http.Handler {
	limiter := newIPRateLimiter(r, b)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ip, _, err := net.SplitHostPort(req.RemoteAddr)
			if err != nil {
				ip = req.RemoteAddr
			}
			if !limiter.limiter(ip).Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

// =============================================================================
// RESPONSE CACHE - GET responses only
// =============================================================================

type cachedResponse struct {
	status int
	header http.Header
	body   []byte
}

type bodyCacheWriter struct {
	http.ResponseWriter
	status int
	body   *bytes.Buffer
}

func (w *bodyCacheWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// CacheGET returns a middleware caching successful GET responses for ttl,
// keyed by request URI.
func CacheGET(store *gocache.Cache, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Method != http.MethodGet {
				next.ServeHTTP(w, req)
				return
			}

			key := req.RequestURI
			if resp, found := store.Get(key); found {
				cached := resp.(cachedResponse)
				for k, v := range cached.header {
					w.Header()[k] = v
				}
				w.WriteHeader(cached.status)
				w.Write(cached.body)
				return
			}

			bcw := &bodyCacheWriter{ResponseWriter: w, status: http.StatusOK, body: bytes.NewBuffer(nil)}
			next.ServeHTTP(bcw, req)

			// Only cache successful responses.
			if bcw.status >= 200 && bcw.status < 300 {
				store.Set(key, cachedResponse{
					status: bcw.status,
					header: bcw.Header().Clone(),
					body:   bcw.body.Bytes(),
				}, ttl)
			}
		})
	}
}
