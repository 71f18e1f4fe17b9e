package middleware

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	pkgLog "intent-routing-engine/pkg/log"
)

// Middleware holds shared gin middleware for the HTTP server.
type Middleware struct {
	l        pkgLog.Logger
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

// New creates the middleware set. requestsPerMin bounds how often a single
// client may hit the admin endpoints.
func New(l pkgLog.Logger, requestsPerMin int) Middleware {
	if requestsPerMin <= 0 {
		requestsPerMin = 30
	}

	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}

	return Middleware{
		l: l,
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,          // Max 1000 unique clients
			nil,           // No eviction callback
			time.Minute*5, // TTL: 5 minutes
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0), // Per second
		burst: burst,
	}
}
