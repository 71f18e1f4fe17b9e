package policy

import (
	"errors"
	"fmt"
	"strings"
)

// Domain-specific errors for the policy package.
var (
	ErrNoActivePolicy = errors.New("no policy document has been published")
	ErrEmptyDocument  = errors.New("policy document is empty")
)

// Invariant names surfaced to operators on validation failure.
const (
	InvariantMissingVersion          = "missing_version"
	InvariantAgentNotDefined         = "agent_not_defined"
	InvariantNegativeBudget          = "negative_budget"
	InvariantConfidenceOutOfRange    = "confidence_threshold_out_of_range"
	InvariantDuplicateFallbackAgent  = "duplicate_fallback_agent"
	InvariantCyclicEscalationChain   = "cyclic_escalation_chain"
	InvariantUnknownEscalation       = "unknown_escalation_condition_or_action"
	InvariantMissingIntentPattern    = "missing_intent_pattern"
	InvariantEmptyPatternKeywords    = "empty_pattern_keywords"
	InvariantInvalidPatternScore     = "invalid_pattern_score"
	InvariantDefaultRouteHasPattern  = "default_route_has_pattern"
	InvariantNoIntentMappings        = "no_intent_mappings"
	InvariantMissingPrimaryAgent     = "missing_primary_agent"
	InvariantNonPositiveAgentBudgets = "non_positive_agent_budgets"
)

// ValidationError reports a single violated policy invariant.
type ValidationError struct {
	Invariant string
	Detail    string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("policy invariant %s violated: %s", e.Invariant, e.Detail)
}

// ValidationErrors aggregates every invariant a document violates.
// A document with a non-empty ValidationErrors is never published.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	names := make([]string, 0, len(e))
	for _, v := range e {
		names = append(names, v.Invariant)
	}
	return fmt.Sprintf("policy validation failed: %s", strings.Join(names, ", "))
}

// Invariants returns the violated invariant names in declaration order.
func (e ValidationErrors) Invariants() []string {
	names := make([]string, 0, len(e))
	for _, v := range e {
		names = append(names, v.Invariant)
	}
	return names
}
