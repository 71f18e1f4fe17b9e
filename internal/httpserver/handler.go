package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"intent-routing-engine/internal/model"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "HTTP server mode: production")
	} else {
		srv.l.Infof(ctx, "HTTP server mode: %s", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() {
	ctx := context.Background()

	v1 := srv.gin.Group("/api/v1")

	v1.POST("/route", srv.routingHandler.HandleRoute)
	v1.POST("/decisions/:request_id/complete", srv.routingHandler.HandleComplete)
	srv.l.Infof(ctx, "routing routes registered under POST /api/v1/route")

	admin := v1.Group("/policy", srv.mw.AdminRateLimit())
	admin.POST("/reload", srv.policyHandler.HandleReload)
	admin.POST("/validate", srv.policyHandler.HandleValidate)
	srv.l.Infof(ctx, "policy admin routes registered under POST /api/v1/policy")
}
