package compliance

import (
	"context"

	"intent-routing-engine/internal/policy"
	pkgLog "intent-routing-engine/pkg/log"
)

// Validator is the interface for policy compliance validation.
type Validator interface {
	Validate(ctx context.Context, cand Candidate, route policy.IntentRoute, def policy.AgentDefinition, doc *policy.Document) Result
}

// Availability reports whether an agent can accept another routing right now.
type Availability interface {
	Available(agent string, maxConcurrent int) bool
}

// PolicyValidator classifies candidates with the fixed-order budget state
// machine: availability, then confidence, cost, latency.
type PolicyValidator struct {
	l     pkgLog.Logger
	avail Availability
}

// Ensure PolicyValidator implements Validator interface
var _ Validator = (*PolicyValidator)(nil)

// New creates a new PolicyValidator.
func New(l pkgLog.Logger, avail Availability) *PolicyValidator {
	return &PolicyValidator{l: l, avail: avail}
}
