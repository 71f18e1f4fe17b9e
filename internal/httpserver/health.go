package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intent-routing-engine/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "From Intent Routing Engine With Love"
	HealthVersion = "1.0.0"
	ServiceName   = "intent-routing-engine"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck handles readiness check — not ready until a policy is published.
// @Summary Readiness Check
// @Description Check if the API is ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} map[string]interface{} "No active policy yet"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	policyVersion := ""
	if srv.policyStatus != nil {
		policyVersion = srv.policyStatus.Version()
	}

	if policyVersion == "" {
		c.JSON(http.StatusServiceUnavailable, response.Resp{
			ErrorCode: http.StatusServiceUnavailable,
			Message:   "no active policy",
		})
		return
	}

	response.OK(c, gin.H{
		"status":         "ready",
		"message":        HealthMessage,
		"version":        HealthVersion,
		"service":        ServiceName,
		"policy_version": policyVersion,
	})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}
