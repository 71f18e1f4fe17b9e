package routing

import "intent-routing-engine/internal/policy"

// CostEstimator predicts the USD-equivalent cost of sending the request to an
// agent. Precise estimation is outside this subsystem; callers may inject a
// richer model via WithCostEstimator.
type CostEstimator func(estimatedTokens int, def policy.AgentDefinition) float64

// LatencyEstimator predicts the latency ceiling in milliseconds for an agent.
type LatencyEstimator func(def policy.AgentDefinition) int

// DefaultCostEstimator is tokens * cost_per_token.
func DefaultCostEstimator(estimatedTokens int, def policy.AgentDefinition) float64 {
	return float64(estimatedTokens) * def.CostPerToken
}

// DefaultLatencyEstimator uses the agent's declared timeout as the ceiling.
func DefaultLatencyEstimator(def policy.AgentDefinition) int {
	return def.TimeoutMs
}
