package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"intent-routing-engine/pkg/response"
)

// AdminRateLimit throttles policy admin requests per client IP.
func (m Middleware) AdminRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		limiter, ok := m.limiters.Get(key)
		if !ok {
			limiter = rate.NewLimiter(m.rate, m.burst)
			m.limiters.Add(key, limiter)
		}

		if !limiter.Allow() {
			m.l.Warnf(c.Request.Context(), "admin rate limit exceeded for %s", key)
			response.RateLimited(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
