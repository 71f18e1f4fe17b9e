package http

import (
	"errors"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"intent-routing-engine/internal/policy"
	"intent-routing-engine/internal/routing"
	"intent-routing-engine/pkg/response"
)

// HandleRoute handles routing requests
// @Summary Route a request
// @Description Classify a natural-language query and select an executing agent under the active policy
// @Tags Routing
// @Accept json
// @Produce json
// @Param input body routing.RouteInput true "Routing request"
// @Success 200 {object} response.Resp "Routing decision"
// @Failure 400 {object} response.Resp "Malformed request"
// @Failure 422 {object} response.Resp "Rejected by policy"
// @Router /api/v1/route [post]
func (h *handler) HandleRoute(c *gin.Context) {
	var input routing.RouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, err, nil)
		return
	}

	decision, err := h.uc.Route(c.Request.Context(), input)
	if err != nil {
		h.respondTerminal(c, decision, err)
		return
	}

	if decision.Release != nil {
		h.pending.Add(decision.RequestID, decision.Release)
	}

	response.OK(c, decision)
}

// HandleComplete handles executor completion reports
// @Summary Report execution completion
// @Description Release the agent slot held by a routed request
// @Tags Routing
// @Produce json
// @Param request_id path string true "Request ID from the routing decision"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp "Unknown or already-completed request"
// @Router /api/v1/decisions/{request_id}/complete [post]
func (h *handler) HandleComplete(c *gin.Context) {
	requestID := c.Param("request_id")

	if _, ok := h.pending.Get(requestID); !ok {
		response.Error(c, errors.New("unknown or already-completed request"), gin.H{"request_id": requestID})
		return
	}

	// Remove fires the eviction callback, which invokes the release exactly once.
	h.pending.Remove(requestID)

	response.OK(c, gin.H{"request_id": requestID})
}

// respondTerminal maps terminal routing errors onto the response envelope,
// always including the decision so callers see the full audit record.
func (h *handler) respondTerminal(c *gin.Context, decision routing.Decision, err error) {
	data := gin.H{"decision": decision}

	var violation *routing.ComplianceViolationError
	switch {
	case errors.As(err, &violation):
		data["violated_budget"] = string(violation.Budget)
		response.UnprocessableEntity(c, err, data)
	case errors.Is(err, routing.ErrNoIntentMatched),
		errors.Is(err, routing.ErrFallbackExhausted):
		response.UnprocessableEntity(c, err, data)
	case errors.Is(err, routing.ErrRoutingTimeout):
		c.JSON(nethttp.StatusGatewayTimeout, response.Resp{
			ErrorCode: nethttp.StatusGatewayTimeout,
			Message:   err.Error(),
			Data:      data,
		})
	case errors.Is(err, policy.ErrNoActivePolicy):
		c.JSON(nethttp.StatusServiceUnavailable, response.Resp{
			ErrorCode: nethttp.StatusServiceUnavailable,
			Message:   err.Error(),
		})
	default:
		response.InternalError(c, err)
	}
}
