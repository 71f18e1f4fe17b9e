package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"intent-routing-engine/internal/routing"
	pkgLog "intent-routing-engine/pkg/log"
)

// Handler is the interface for the routing HTTP delivery handler.
type Handler interface {
	HandleRoute(c *gin.Context)
	HandleComplete(c *gin.Context)
}

// maxExecutionTTL bounds how long a routed request may hold its agent slot
// before the pending-release registry reclaims it.
const maxExecutionTTL = 10 * time.Minute

type handler struct {
	l  pkgLog.Logger
	uc routing.UseCase

	// pending maps request_id to the decision's slot release. Every removal
	// path goes through the eviction callback — explicit completion, TTL
	// expiry, or capacity pressure — so the release fires exactly once and an
	// executor that never reports completion cannot leak agent capacity.
	pending *expirable.LRU[string, func()]
}

// New creates a new routing HTTP delivery handler.
func New(l pkgLog.Logger, uc routing.UseCase) Handler {
	pending := expirable.NewLRU[string, func()](
		4096,
		func(_ string, release func()) {
			if release != nil {
				release()
			}
		},
		maxExecutionTTL,
	)

	return &handler{
		l:       l,
		uc:      uc,
		pending: pending,
	}
}
