package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit bounds requests per client IP.
type RateLimit struct {
	RequestsPerSecond float64
	Burst             int
}

// Enabled reports whether the limit applies at all.
func (r RateLimit) Enabled() bool {
	return r.RequestsPerSecond > 0 && r.Burst > 0
}

// clientIdleTTL is how long an IP's bucket is kept after its last request.
const clientIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet holds one token bucket per client IP and forgets idle ones.
type limiterSet struct {
	cfg RateLimit
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

func newLimiterSet(cfg RateLimit) *limiterSet {
	return &limiterSet{
		cfg:       cfg,
		ttl:       clientIdleTTL,
		now:       time.Now,
		clients:   make(map[string]*clientLimiter),
		lastSweep: time.Now(),
	}
}

func (s *limiterSet) allow(ip string) bool {
	s.mu.Lock()
	now := s.now()
	if now.Sub(s.lastSweep) >= s.ttl {
		for k, cl := range s.clients {
			if now.Sub(cl.lastSeen) >= s.ttl {
				delete(s.clients, k)
			}
		}
		s.lastSweep = now
	}

	cl, ok := s.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(s.cfg.RequestsPerSecond), s.cfg.Burst)}
		s.clients[ip] = cl
	}
	cl.lastSeen = now
	s.mu.Unlock()

	return cl.limiter.AllowN(now, 1)
}

func (s *limiterSet) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// perClientLimiter returns middleware that answers 429 once a client IP
// exceeds its token bucket.
func perClientLimiter(cfg RateLimit) gin.HandlerFunc {
	return limiterMiddleware(newLimiterSet(cfg))
}

func limiterMiddleware(set *limiterSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !set.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
