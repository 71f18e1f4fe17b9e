package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"intent-routing-engine/internal/middleware"
	policyDelivery "intent-routing-engine/internal/policy/delivery/http"
	routingDelivery "intent-routing-engine/internal/routing/delivery/http"
	pkgLog "intent-routing-engine/pkg/log"
)

// PolicyStatus reports the active policy version for readiness checks.
type PolicyStatus interface {
	Version() string
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           pkgLog.Logger
	port        int
	mode        string
	environment string

	// Routing domain
	routingHandler routingDelivery.Handler

	// Policy admin
	policyHandler policyDelivery.Handler
	policyStatus  PolicyStatus

	// Shared middleware
	mw middleware.Middleware
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string

	RoutingHandler routingDelivery.Handler
	PolicyHandler  policyDelivery.Handler
	PolicyStatus   PolicyStatus
	Middleware     middleware.Middleware
}

// New creates a new HTTPServer instance.
func New(logger pkgLog.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:              logger,
		gin:            gin.New(),
		port:           cfg.Port,
		mode:           cfg.Mode,
		environment:    cfg.Environment,
		routingHandler: cfg.RoutingHandler,
		policyHandler:  cfg.PolicyHandler,
		policyStatus:   cfg.PolicyStatus,
		mw:             cfg.Middleware,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.routingHandler == nil {
		return errors.New("routing handler is required")
	}
	if srv.policyHandler == nil {
		return errors.New("policy handler is required")
	}
	return nil
}
