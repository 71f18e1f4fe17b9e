package routing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"intent-routing-engine/internal/classifier"
	"intent-routing-engine/internal/compliance"
	"intent-routing-engine/internal/policy"
)

// Route runs the full routing flow for one request: classify, validate the
// top candidate, walk the fallback chain on escalation or unavailability, and
// emit the decision. The active policy snapshot is read exactly once and
// reused end to end, so a concurrent reload never splits one request across
// two policy versions.
func (e *Engine) Route(ctx context.Context, input RouteInput) (Decision, error) {
	if input.RequestID == "" {
		input.RequestID = uuid.NewString()
	}

	decision := Decision{
		RequestID:    input.RequestID,
		FallbackPath: []string{},
	}

	doc := e.policies.Active()
	if doc == nil {
		return e.terminal(ctx, decision, StatusNoActivePolicy, policy.ErrNoActivePolicy)
	}
	decision.PolicyVersion = doc.Version

	tokens := input.EstimatedTokens
	if tokens <= 0 {
		tokens = e.defaultTokens
	}

	candidates := e.classifier.Classify(ctx, input.Query, doc)
	decision.Candidates = e.recordCandidates(doc, candidates, tokens)

	intentName, route, confidence, ok := e.selectIntent(ctx, doc, candidates)
	if !ok {
		return e.terminal(ctx, decision, StatusNoIntentMatched, ErrNoIntentMatched)
	}
	decision.ChosenIntent = intentName

	// Candidate evaluation is strictly sequential; the walk is bounded by the
	// primary plus one pass over the longest declared chain.
	agentName := route.PrimaryAgent
	visited := make(map[string]bool)
	var activeRule *policy.EscalationRule
	confidenceSettled := false
	maxSteps := 1 + chainBound(route, doc)

	for step := 0; step < maxSteps; step++ {
		if ctx.Err() != nil {
			return e.terminal(ctx, decision, StatusTimeout, ErrRoutingTimeout)
		}

		def, exists := doc.Agent(agentName)
		if !exists {
			// Unreachable on a validated snapshot; skip defensively.
			visited[agentName] = true
			next, found := e.resolveNext(ctx, route, activeRule, doc, visited)
			if !found {
				return e.terminal(ctx, decision, StatusFallbackExhausted, ErrFallbackExhausted)
			}
			decision.FallbackPath = append(decision.FallbackPath, next)
			agentName = next
			continue
		}

		cand := compliance.Candidate{
			Intent:             intentName,
			Agent:              agentName,
			Confidence:         confidence,
			EstimatedCost:      e.costEstimator(tokens, def),
			EstimatedLatencyMs: e.latencyEstimator(def),
		}
		// Confidence belongs to the (query, intent) pair, not the agent: once
		// the confidence escalation rule has fired and directed the walk into
		// its chain, re-checking it would fail every fallback agent the same
		// way. Settle it at the threshold so only the agent-dependent budgets
		// (cost, latency) are re-validated downstream.
		if confidenceSettled && cand.Confidence < route.ConfidenceThreshold {
			cand.Confidence = route.ConfidenceThreshold
		}

		res := e.validator.Validate(ctx, cand, route, def, doc)

		switch res.Status {
		case compliance.StatusCompliant:
			release, acquired := e.slots.Acquire(agentName, def.MaxConcurrentRequests)
			if acquired {
				return e.finalize(ctx, decision, cand, release)
			}
			// Capacity was taken between validation and acquisition; treat
			// like an availability failure and keep walking the chain.
			e.l.Debugf(ctx, "agent %s filled up mid-decision, continuing fallback walk", agentName)

		case compliance.StatusViolation:
			err := &ComplianceViolationError{Intent: intentName, Agent: agentName, Budget: res.Budget}
			return e.terminal(ctx, decision, StatusViolation, err)

		case compliance.StatusEscalation:
			decision.EscalationTriggered = true
			if res.Budget == compliance.BudgetConfidence {
				confidenceSettled = true
			}
			if res.Rule != nil {
				activeRule = res.Rule
			}

		case compliance.StatusFallbackRequired:
			if res.Rule != nil {
				activeRule = res.Rule
			}
		}

		visited[agentName] = true
		next, found := e.resolveNext(ctx, route, activeRule, doc, visited)
		if !found {
			return e.terminal(ctx, decision, StatusFallbackExhausted, ErrFallbackExhausted)
		}
		decision.FallbackPath = append(decision.FallbackPath, next)
		agentName = next
	}

	return e.terminal(ctx, decision, StatusFallbackExhausted, ErrFallbackExhausted)
}

// selectIntent picks the top classified intent, or the reserved default route
// when classification produced no candidate.
func (e *Engine) selectIntent(ctx context.Context, doc *policy.Document, candidates []classifier.Candidate) (string, policy.IntentRoute, float64, bool) {
	if len(candidates) == 0 {
		defRoute, ok := doc.DefaultRoute()
		if !ok {
			return "", policy.IntentRoute{}, 0, false
		}
		e.l.Debugf(ctx, "no intent matched, routing via reserved default")
		return policy.DefaultIntentKey, defRoute, 0, true
	}

	top := candidates[0]
	route, ok := doc.Route(top.Intent)
	if !ok {
		return "", policy.IntentRoute{}, 0, false
	}
	return top.Intent, route, top.Confidence, true
}

// recordCandidates attaches per-candidate primary-agent estimates so telemetry
// can reconstruct why the decision went the way it did.
func (e *Engine) recordCandidates(doc *policy.Document, candidates []classifier.Candidate, tokens int) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		rec := Candidate{Intent: c.Intent, Confidence: c.Confidence}
		if route, ok := doc.Route(c.Intent); ok {
			rec.Agent = route.PrimaryAgent
			if def, ok := doc.Agent(route.PrimaryAgent); ok {
				rec.EstimatedCost = e.costEstimator(tokens, def)
				rec.EstimatedLatencyMs = e.latencyEstimator(def)
			}
		}
		out = append(out, rec)
	}
	return out
}

// resolveNext asks the resolver for the next agent, with already-visited
// agents trimmed out of the chain so the walk always makes progress.
func (e *Engine) resolveNext(ctx context.Context, route policy.IntentRoute, rule *policy.EscalationRule, doc *policy.Document, visited map[string]bool) (string, bool) {
	trimmedRoute := route
	trimmedRoute.FallbackAgents = withoutVisited(route.FallbackAgents, visited)

	var trimmedRule *policy.EscalationRule
	if rule != nil {
		rr := *rule
		rr.FallbackOrder = withoutVisited(rule.FallbackOrder, visited)
		trimmedRule = &rr
	}

	return e.resolver.Resolve(ctx, trimmedRoute, trimmedRule, doc)
}

func withoutVisited(chain []string, visited map[string]bool) []string {
	out := make([]string, 0, len(chain))
	for _, name := range chain {
		if !visited[name] {
			out = append(out, name)
		}
	}
	return out
}

// chainBound is the longest chain the walk could possibly follow.
func chainBound(route policy.IntentRoute, doc *policy.Document) int {
	bound := len(route.FallbackAgents)
	for _, rule := range doc.EscalationRules {
		if len(rule.FallbackOrder) > bound {
			bound = len(rule.FallbackOrder)
		}
	}
	return bound
}

// finalize stamps and emits a compliant decision.
func (e *Engine) finalize(ctx context.Context, decision Decision, cand compliance.Candidate, release func()) (Decision, error) {
	decision.ChosenAgent = cand.Agent
	decision.ComplianceStatus = string(compliance.StatusCompliant)
	decision.EstimatedCost = cand.EstimatedCost
	decision.EstimatedLatencyMs = cand.EstimatedLatencyMs
	decision.DecidedAt = time.Now().UTC()
	decision.Release = release

	e.emitter.Emit(decision)
	e.l.Infof(ctx, "routed request %s: intent=%s agent=%s fallbacks=%d",
		decision.RequestID, decision.ChosenIntent, decision.ChosenAgent, len(decision.FallbackPath))

	return decision, nil
}

// terminal stamps and emits a failed decision, so no request is ever
// invisible to observability, then returns the typed error.
func (e *Engine) terminal(ctx context.Context, decision Decision, status string, err error) (Decision, error) {
	decision.ComplianceStatus = status
	decision.DecidedAt = time.Now().UTC()

	e.emitter.Emit(decision)
	e.l.Warnf(ctx, "routing failed for request %s: status=%s err=%v", decision.RequestID, status, err)

	return decision, err
}
