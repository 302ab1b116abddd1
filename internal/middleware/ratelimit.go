package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhall/internal/models"
	"golang.org/x/time/rate"
)

const (
	maxTrackedClients = 10000
	clientIdleTTL     = 10 * time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP. When the table is full
// and nobody has gone idle, new clients share a single overflow bucket.
type RateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*client
	overflow   *rate.Limiter
	limit      rate.Limit
	burst      int
	maxClients int
	idleTTL    time.Duration
	now        func() time.Time
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		clients:    make(map[string]*client),
		overflow:   rate.NewLimiter(rate.Limit(perSecond), burst),
		limit:      rate.Limit(perSecond),
		burst:      burst,
		maxClients: maxTrackedClients,
		idleTTL:    clientIdleTTL,
		now:        time.Now,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if c, ok := rl.clients[key]; ok {
		c.lastSeen = now
		return c.limiter
	}

	if len(rl.clients) >= rl.maxClients {
		rl.evictIdleLocked(now)
		if len(rl.clients) >= rl.maxClients {
			return rl.overflow
		}
	}
	c := &client{limiter: rate.NewLimiter(rl.limit, rl.burst), lastSeen: now}
	rl.clients[key] = c
	return c.limiter
}

func (rl *RateLimiter) evictIdleLocked(now time.Time) {
	for key, c := range rl.clients {
		if now.Sub(c.lastSeen) > rl.idleTTL {
			delete(rl.clients, key)
		}
	}
}

// Handler rejects requests over the per-client budget with 429.
func (rl *RateLimiter) Handler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}
		ip := c.ClientIP()
		if !rl.limiter(ip).Allow() {
			logger.Warn("too many requests", "client_ip", ip, "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.Message("Too many requests"))
			return
		}
		c.Next()
	}
}
