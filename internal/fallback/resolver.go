package fallback

import (
	"context"

	"intent-routing-engine/internal/policy"
)

// Resolve walks the escalation rule's fallback_order when one fired and
// declares its own, otherwise the route's fallback_agents.
func (r *ChainResolver) Resolve(ctx context.Context, route policy.IntentRoute, rule *policy.EscalationRule, doc *policy.Document) (string, bool) {
	chain := route.FallbackAgents
	if rule != nil && len(rule.FallbackOrder) > 0 {
		chain = rule.FallbackOrder
	}

	for _, name := range chain {
		def, exists := doc.Agent(name)
		if !exists {
			// Validation keeps this from happening on a published document;
			// guarded anyway so a bad snapshot cannot route to a ghost agent.
			r.l.Warnf(ctx, "fallback chain references undefined agent %s", name)
			continue
		}
		if !def.HasCapabilities(route.CapabilitiesRequired) {
			r.l.Debugf(ctx, "fallback agent %s lacks required capabilities", name)
			continue
		}
		if !r.avail.Available(name, def.MaxConcurrentRequests) {
			r.l.Debugf(ctx, "fallback agent %s unavailable", name)
			continue
		}
		return name, true
	}

	return "", false
}
