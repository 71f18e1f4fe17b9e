package compliance

import "intent-routing-engine/internal/policy"

// Status is the outcome of validating a routing candidate against policy.
type Status string

const (
	StatusCompliant        Status = "COMPLIANT"
	StatusViolation        Status = "VIOLATION"
	StatusEscalation       Status = "ESCALATION"
	StatusFallbackRequired Status = "FALLBACK_REQUIRED"
)

// Budget names the specific budget a candidate failed.
type Budget string

const (
	BudgetConfidence Budget = "confidence"
	BudgetCost       Budget = "cost"
	BudgetLatency    Budget = "latency"
)

// Candidate is a routing candidate under validation.
type Candidate struct {
	Intent             string
	Agent              string
	Confidence         float64
	EstimatedCost      float64
	EstimatedLatencyMs int
}

// Result carries the compliance status plus the context the routing engine
// needs to act on it: the failed budget on a violation or escalation, and the
// escalation rule that fired (its fallback_order overrides the route's own).
type Result struct {
	Status Status
	Budget Budget
	Rule   *policy.EscalationRule
}
