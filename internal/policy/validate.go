package policy

import (
	"fmt"
	"sort"
)

// Validate checks every load-time invariant and returns all violations.
// A nil return means the document may be published. Violations are reported
// in a deterministic order so operators and tests see stable output.
func Validate(doc *Document) ValidationErrors {
	var errs ValidationErrors

	if doc.Version == "" {
		errs = append(errs, ValidationError{
			Invariant: InvariantMissingVersion,
			Detail:    "document declares no version",
		})
	}

	if len(doc.IntentMappings) == 0 {
		errs = append(errs, ValidationError{
			Invariant: InvariantNoIntentMappings,
			Detail:    "document declares no intent_mappings",
		})
	}

	for _, name := range sortedAgentNames(doc) {
		errs = append(errs, validateAgent(name, doc.AgentDefinitions[name])...)
	}

	for _, name := range sortedIntentNames(doc) {
		errs = append(errs, validateRoute(doc, name, doc.IntentMappings[name])...)
	}

	for i, rule := range doc.EscalationRules {
		errs = append(errs, validateEscalationRule(doc, i, rule)...)
	}

	return errs
}

func validateAgent(name string, def AgentDefinition) ValidationErrors {
	var errs ValidationErrors

	if def.CostPerToken < 0 || def.TimeoutMs < 0 {
		errs = append(errs, ValidationError{
			Invariant: InvariantNegativeBudget,
			Detail:    fmt.Sprintf("agent %q declares a negative cost_per_token or timeout_ms", name),
		})
	}
	if def.MaxConcurrentRequests <= 0 || def.TimeoutMs == 0 {
		errs = append(errs, ValidationError{
			Invariant: InvariantNonPositiveAgentBudgets,
			Detail:    fmt.Sprintf("agent %q must declare positive max_concurrent_requests and timeout_ms", name),
		})
	}

	return errs
}

func validateRoute(doc *Document, name string, route IntentRoute) ValidationErrors {
	var errs ValidationErrors

	if route.PrimaryAgent == "" {
		errs = append(errs, ValidationError{
			Invariant: InvariantMissingPrimaryAgent,
			Detail:    fmt.Sprintf("intent %q declares no primary_agent", name),
		})
	} else if _, ok := doc.AgentDefinitions[route.PrimaryAgent]; !ok {
		errs = append(errs, ValidationError{
			Invariant: InvariantAgentNotDefined,
			Detail:    fmt.Sprintf("intent %q references undefined primary agent %q", name, route.PrimaryAgent),
		})
	}

	seen := make(map[string]bool, len(route.FallbackAgents))
	for _, agent := range route.FallbackAgents {
		if _, ok := doc.AgentDefinitions[agent]; !ok {
			errs = append(errs, ValidationError{
				Invariant: InvariantAgentNotDefined,
				Detail:    fmt.Sprintf("intent %q references undefined fallback agent %q", name, agent),
			})
		}
		if seen[agent] {
			errs = append(errs, ValidationError{
				Invariant: InvariantDuplicateFallbackAgent,
				Detail:    fmt.Sprintf("intent %q lists fallback agent %q more than once", name, agent),
			})
		}
		seen[agent] = true
	}

	if route.MaxCost < 0 || route.MaxLatencyMs < 0 {
		errs = append(errs, ValidationError{
			Invariant: InvariantNegativeBudget,
			Detail:    fmt.Sprintf("intent %q declares a negative max_cost or max_latency_ms", name),
		})
	}
	if route.ConfidenceThreshold < 0 || route.ConfidenceThreshold > 1 {
		errs = append(errs, ValidationError{
			Invariant: InvariantConfidenceOutOfRange,
			Detail:    fmt.Sprintf("intent %q confidence_threshold %.3f outside [0,1]", name, route.ConfidenceThreshold),
		})
	}

	errs = append(errs, validatePattern(name, route.Pattern)...)

	return errs
}

func validatePattern(name string, pattern *IntentPattern) ValidationErrors {
	var errs ValidationErrors

	// The reserved default route is the no-match fallback; a pattern on it
	// could shadow real intents.
	if name == DefaultIntentKey {
		if pattern != nil {
			errs = append(errs, ValidationError{
				Invariant: InvariantDefaultRouteHasPattern,
				Detail:    "the reserved default route must not declare a pattern",
			})
		}
		return errs
	}

	if pattern == nil {
		errs = append(errs, ValidationError{
			Invariant: InvariantMissingIntentPattern,
			Detail:    fmt.Sprintf("intent %q declares no pattern and can never be classified", name),
		})
		return errs
	}

	if len(pattern.Keywords) == 0 {
		errs = append(errs, ValidationError{
			Invariant: InvariantEmptyPatternKeywords,
			Detail:    fmt.Sprintf("intent %q pattern declares no keywords", name),
		})
	}
	if pattern.MinScore < 0 || pattern.MinScore > 1 ||
		pattern.KeywordWeight < 0 || pattern.ContextWeight < 0 {
		errs = append(errs, ValidationError{
			Invariant: InvariantInvalidPatternScore,
			Detail:    fmt.Sprintf("intent %q pattern declares an out-of-range min_score or negative weight", name),
		})
	}

	return errs
}

func validateEscalationRule(doc *Document, idx int, rule EscalationRule) ValidationErrors {
	var errs ValidationErrors

	switch rule.Condition {
	case CondCostOverThreshold, CondLatencyOverThreshold,
		CondConfidenceUnderThreshold, CondAgentUnavailable:
	default:
		errs = append(errs, ValidationError{
			Invariant: InvariantUnknownEscalation,
			Detail:    fmt.Sprintf("escalation rule %d declares unknown condition %q", idx, rule.Condition),
		})
	}
	switch rule.Action {
	case ActionEscalateToFallback, ActionReject:
	default:
		errs = append(errs, ValidationError{
			Invariant: InvariantUnknownEscalation,
			Detail:    fmt.Sprintf("escalation rule %d declares unknown action %q", idx, rule.Action),
		})
	}

	seen := make(map[string]bool, len(rule.FallbackOrder))
	for _, agent := range rule.FallbackOrder {
		if _, ok := doc.AgentDefinitions[agent]; !ok {
			errs = append(errs, ValidationError{
				Invariant: InvariantAgentNotDefined,
				Detail:    fmt.Sprintf("escalation rule %d references undefined agent %q", idx, agent),
			})
		}
		// An agent appearing twice makes the chain return to itself.
		if seen[agent] {
			errs = append(errs, ValidationError{
				Invariant: InvariantCyclicEscalationChain,
				Detail:    fmt.Sprintf("escalation rule %d fallback_order revisits agent %q", idx, agent),
			})
		}
		seen[agent] = true
	}

	return errs
}

func sortedIntentNames(doc *Document) []string {
	names := make([]string, 0, len(doc.IntentMappings))
	for name := range doc.IntentMappings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedAgentNames(doc *Document) []string {
	names := make([]string, 0, len(doc.AgentDefinitions))
	for name := range doc.AgentDefinitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
