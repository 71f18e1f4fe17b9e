package routing

import (
	"errors"
	"fmt"

	"intent-routing-engine/internal/compliance"
)

// Domain-specific errors for the routing package.
var (
	ErrNoIntentMatched   = errors.New("no intent matched and no default route is declared")
	ErrFallbackExhausted = errors.New("every agent in the fallback chain was unavailable or capability-mismatched")
	ErrRoutingTimeout    = errors.New("routing deadline exceeded before a decision was reached")
)

// ComplianceViolationError reports a candidate rejected by policy with no
// covering escalation rule, naming the specific violated budget.
type ComplianceViolationError struct {
	Intent string
	Agent  string
	Budget compliance.Budget
}

func (e *ComplianceViolationError) Error() string {
	return fmt.Sprintf("intent %q on agent %q violates the %s budget with no covering escalation rule",
		e.Intent, e.Agent, e.Budget)
}
