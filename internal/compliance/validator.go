package compliance

import (
	"context"

	"intent-routing-engine/internal/policy"
)

// Validate runs the compliance state machine in its fixed order; the first
// matching check decides. Budget boundaries: a confidence exactly at the
// route threshold is compliant, a cost or latency exactly at the cap is
// compliant, one unit over is not.
func (v *PolicyValidator) Validate(ctx context.Context, cand Candidate, route policy.IntentRoute, def policy.AgentDefinition, doc *policy.Document) Result {
	// 1. Availability: down or at capacity goes straight to fallback.
	if !v.avail.Available(cand.Agent, def.MaxConcurrentRequests) {
		v.l.Debugf(ctx, "agent %s unavailable for intent %s", cand.Agent, cand.Intent)
		return Result{
			Status: StatusFallbackRequired,
			Rule:   doc.RuleFor(policy.CondAgentUnavailable),
		}
	}

	// 2. Confidence under route threshold.
	if cand.Confidence < route.ConfidenceThreshold {
		return v.escalateOrReject(ctx, cand, BudgetConfidence, doc.RuleFor(policy.CondConfidenceUnderThreshold))
	}

	// 3. Estimated cost over budget.
	if cand.EstimatedCost > route.MaxCost {
		return v.escalateOrReject(ctx, cand, BudgetCost, doc.RuleFor(policy.CondCostOverThreshold))
	}

	// 4. Estimated latency over budget.
	if cand.EstimatedLatencyMs > route.MaxLatencyMs {
		return v.escalateOrReject(ctx, cand, BudgetLatency, doc.RuleFor(policy.CondLatencyOverThreshold))
	}

	return Result{Status: StatusCompliant}
}

// escalateOrReject applies the escalation-rule lookup shared by the three
// budget checks: a covering escalate_to_fallback rule turns the breach into
// an escalation, anything else is an outright violation.
func (v *PolicyValidator) escalateOrReject(ctx context.Context, cand Candidate, budget Budget, rule *policy.EscalationRule) Result {
	if rule != nil && rule.Action == policy.ActionEscalateToFallback {
		v.l.Debugf(ctx, "escalating %s breach for intent %s agent %s", budget, cand.Intent, cand.Agent)
		return Result{Status: StatusEscalation, Budget: budget, Rule: rule}
	}
	return Result{Status: StatusViolation, Budget: budget}
}
