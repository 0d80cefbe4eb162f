package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type rateLimit struct {
	mu        sync.Mutex
	visitors  map[string]int
	limit     int
	resetTime time.Duration
}

// NewRateLimiter builds a fixed-window per-IP request limiter. Counters are
// wiped every resetTime.
func NewRateLimiter(limit int, resetTime time.Duration) *rateLimit {
	rl := &rateLimit{
		visitors:  make(map[string]int),
		limit:     limit,
		resetTime: resetTime,
	}
	go rl.resetLoop()
	return rl
}

func (rl *rateLimit) resetLoop() {
	for {
		time.Sleep(rl.resetTime)
		rl.mu.Lock()
		rl.visitors = make(map[string]int)
		rl.mu.Unlock()
	}
}

func (rl *rateLimit) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rl.mu.Lock()
		defer rl.mu.Unlock()

		visitorIP := c.ClientIP()
		rl.visitors[visitorIP]++

		if rl.visitors[visitorIP] > rl.limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "too many requests, try again later"})
			return
		}
		c.Next()
	}
}
