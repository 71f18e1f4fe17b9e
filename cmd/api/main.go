package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"intent-routing-engine/config"
	_ "intent-routing-engine/docs" // Swagger docs
	"intent-routing-engine/internal/agent"
	"intent-routing-engine/internal/classifier"
	"intent-routing-engine/internal/compliance"
	"intent-routing-engine/internal/fallback"
	"intent-routing-engine/internal/httpserver"
	"intent-routing-engine/internal/middleware"
	"intent-routing-engine/internal/policy"
	policyDelivery "intent-routing-engine/internal/policy/delivery/http"
	"intent-routing-engine/internal/routing"
	routingDelivery "intent-routing-engine/internal/routing/delivery/http"
	"intent-routing-engine/internal/telemetry"
	"intent-routing-engine/pkg/log"
)

// @title       Intent Routing Engine API
// @description Policy-driven intent routing: classifies requests, selects agents under versioned budgets, and records auditable decisions.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Intent Routing Engine...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Policy path: %s", cfg.Policy.Path)

	// 3. Policy store
	policyStore := policy.NewStore(logger)
	if version, ldErr := policyStore.LoadFile(ctx, cfg.Policy.Path); ldErr != nil {
		logger.Warnf(ctx, "No policy loaded at startup (serving 503 until reload): %v", ldErr)
	} else {
		logger.Infof(ctx, "Policy %s published", version)
	}

	// 4. Routing domain
	tracker := agent.NewTracker()
	keywordClassifier := classifier.New(logger, cfg.Classifier.CacheSize, cfg.Classifier.CacheTTL)
	validator := compliance.New(logger, tracker)
	resolver := fallback.New(logger, tracker)

	recorder, err := telemetry.New(logger, telemetry.Config{
		BufferSize: cfg.Telemetry.BufferSize,
		OutputPath: cfg.Telemetry.OutputPath,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize telemetry: ", err)
		return
	}
	defer recorder.Close()

	engine := routing.New(logger, policyStore, keywordClassifier, validator, resolver, tracker, recorder,
		routing.WithDefaultTokens(cfg.Routing.DefaultEstimatedTokens),
	)

	// 5. Delivery
	routingHandler := routingDelivery.New(logger, engine)
	policyHandler := policyDelivery.New(logger, policyStore)
	mw := middleware.New(logger, cfg.Admin.RateLimitPerMin)

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		RoutingHandler: routingHandler,
		PolicyHandler:  policyHandler,
		PolicyStatus:   policyStore,
		Middleware:     mw,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
