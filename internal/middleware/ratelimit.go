package middleware

import (
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultIdleTimeout is how long a client may stay silent before its limiter
// is dropped.
const DefaultIdleTimeout = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterMiddleware holds the rate limiters for each client address.
type RateLimiterMiddleware struct {
	clients map[string]*client
	mu      sync.Mutex
	// Rate is the number of events per second.
	rate rate.Limit
	// Burst is the burst size.
	burst int
	// trustProxy keys clients on X-Forwarded-For instead of the connection.
	trustProxy  bool
	idleTimeout time.Duration
	lastSweep   time.Time
	now         func() time.Time
}

// NewRateLimiterMiddleware creates a new RateLimiterMiddleware. Only enable
// trustProxy when the server sits behind a proxy that sets X-Forwarded-For.
func NewRateLimiterMiddleware(r rate.Limit, b int, trustProxy bool) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		clients:     make(map[string]*client),
		rate:        r,
		burst:       b,
		trustProxy:  trustProxy,
		idleTimeout: DefaultIdleTimeout,
		lastSweep:   time.Now(),
		now:         time.Now,
	}
}

// Middleware is the actual middleware handler.
func (rl *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := ClientIP(r, rl.trustProxy)

		if !rl.limiter(key).Allow() {
			log.Printf("RateLimiter: Rate limit exceeded for client %s", key)
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiterMiddleware) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.idleTimeout {
		rl.sweep(now)
	}

	c, exists := rl.clients[key]
	if !exists {
		c = &client{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter
}

// sweep drops clients idle for longer than idleTimeout. Callers hold rl.mu.
func (rl *RateLimiterMiddleware) sweep(now time.Time) {
	for key, c := range rl.clients {
		if now.Sub(c.lastSeen) >= rl.idleTimeout {
			delete(rl.clients, key)
		}
	}
	rl.lastSweep = now
}

// ClientIP returns the remote address host. With trustProxy set, the first
// X-Forwarded-For hop wins when present.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
