package routing

import "time"

// Terminal compliance statuses recorded on decisions that never reached a
// compliant candidate. Successful decisions carry compliance.StatusCompliant.
const (
	StatusNoActivePolicy    = "NO_ACTIVE_POLICY"
	StatusNoIntentMatched   = "NO_INTENT_MATCHED"
	StatusViolation         = "VIOLATION"
	StatusFallbackExhausted = "FALLBACK_EXHAUSTED"
	StatusTimeout           = "TIMEOUT"
)

// RouteInput is the input for one routing request.
type RouteInput struct {
	RequestID       string `json:"request_id"`       // generated when empty
	Query           string `json:"query"`            // raw natural-language request
	EstimatedTokens int    `json:"estimated_tokens"` // fed to the cost estimator; service default when 0
}

// Candidate is a scored routing candidate recorded on the decision.
type Candidate struct {
	Intent             string  `json:"intent"`
	Agent              string  `json:"agent"`
	Confidence         float64 `json:"confidence"`
	EstimatedCost      float64 `json:"estimated_cost"`
	EstimatedLatencyMs int     `json:"estimated_latency_ms"`
}

// Decision is the auditable record of one routing request. It is created once
// per request, emitted to telemetry, and then owned by the caller; the engine
// retains no reference after return.
type Decision struct {
	RequestID           string      `json:"request_id"`
	PolicyVersion       string      `json:"policy_version"`
	ChosenIntent        string      `json:"chosen_intent"`
	ChosenAgent         string      `json:"chosen_agent"`
	ComplianceStatus    string      `json:"compliance_status"`
	Candidates          []Candidate `json:"candidates"`
	FallbackPath        []string    `json:"fallback_path"`
	EscalationTriggered bool        `json:"escalation_triggered"`
	EstimatedCost       float64     `json:"estimated_cost_usd"`
	EstimatedLatencyMs  int         `json:"estimated_latency_ms"`
	DecidedAt           time.Time   `json:"decided_at"`

	// Release frees the chosen agent's in-flight slot. The caller invokes it
	// when the external executor reports completion; it is idempotent and nil
	// on terminal failures.
	Release func() `json:"-"`
}
