package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

type RateLimiterConfig struct {
	RPS   float64
	Burst int
}

// RateLimiter keeps one token bucket per client IP. Idle buckets expire out
// of the cache so the table cannot grow without bound.
type RateLimiter struct {
	limiters *gocache.Cache
	rps      rate.Limit
	burst    int
}

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	return &RateLimiter{
		limiters: gocache.New(10*time.Minute, 15*time.Minute),
		rps:      rate.Limit(config.RPS),
		burst:    config.Burst,
	}
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	if v, ok := rl.limiters.Get(ip); ok {
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rl.rps, rl.burst)
	rl.limiters.SetDefault(ip, limiter)
	return limiter
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Code:    http.StatusTooManyRequests,
				Message: "rate limit exceeded",
				TraceID: c.GetString(ContextRequestID),
			})
			return
		}
		c.Next()
	}
}
