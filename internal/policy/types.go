package policy

import "time"

// DefaultIntentKey is the reserved intent_mappings entry used when
// classification yields no candidate. The default route never declares a
// pattern; it is only reachable as a fallback.
const DefaultIntentKey = "default"

// Pattern weight defaults applied when a pattern omits them.
const (
	DefaultKeywordWeight = 0.6
	DefaultContextWeight = 0.4
)

// Document is a versioned, immutable routing policy. Instances are never
// mutated after publish; a reload builds a whole new Document and swaps it in.
type Document struct {
	Version          string                     `mapstructure:"version" json:"version"`
	IntentMappings   map[string]IntentRoute     `mapstructure:"intent_mappings" json:"intent_mappings"`
	AgentDefinitions map[string]AgentDefinition `mapstructure:"agent_definitions" json:"agent_definitions"`
	EscalationRules  []EscalationRule           `mapstructure:"escalation_rules" json:"escalation_rules"`
	PublishedAt      time.Time                  `mapstructure:"-" json:"published_at"`
}

// IntentPattern declares how a single intent is recognized in a raw query.
// Name mirrors the intent_mappings key it belongs to.
type IntentPattern struct {
	Name           string   `mapstructure:"-" json:"name"`
	Keywords       []string `mapstructure:"keywords" json:"keywords"`
	ContextMarkers []string `mapstructure:"context_markers" json:"context_markers"`
	KeywordWeight  float64  `mapstructure:"keyword_weight" json:"keyword_weight"`
	ContextWeight  float64  `mapstructure:"context_weight" json:"context_weight"`
	MinScore       float64  `mapstructure:"min_score" json:"min_score"`
	Priority       int      `mapstructure:"priority" json:"priority"`
}

// IntentRoute maps a recognized intent to an executing agent with budgets.
type IntentRoute struct {
	Pattern              *IntentPattern `mapstructure:"pattern" json:"pattern,omitempty"`
	PrimaryAgent         string         `mapstructure:"primary_agent" json:"primary_agent"`
	FallbackAgents       []string       `mapstructure:"fallback_agents" json:"fallback_agents"`
	ConfidenceThreshold  float64        `mapstructure:"confidence_threshold" json:"confidence_threshold"`
	MaxCost              float64        `mapstructure:"max_cost" json:"max_cost"`
	MaxLatencyMs         int            `mapstructure:"max_latency_ms" json:"max_latency_ms"`
	CapabilitiesRequired []string       `mapstructure:"capabilities_required" json:"capabilities_required"`
}

// AgentDefinition describes an executing agent's capabilities and cost model.
type AgentDefinition struct {
	Capabilities          []string `mapstructure:"capabilities" json:"capabilities"`
	CostPerToken          float64  `mapstructure:"cost_per_token" json:"cost_per_token"`
	MaxConcurrentRequests int      `mapstructure:"max_concurrent_requests" json:"max_concurrent_requests"`
	TimeoutMs             int      `mapstructure:"timeout_ms" json:"timeout_ms"`
}

// HasCapabilities reports whether the agent declares every capability in want.
func (a AgentDefinition) HasCapabilities(want []string) bool {
	for _, cap := range want {
		found := false
		for _, have := range a.Capabilities {
			if have == cap {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// EscalationCondition names the budget breach an escalation rule covers.
type EscalationCondition string

const (
	CondCostOverThreshold        EscalationCondition = "cost_over_threshold"
	CondLatencyOverThreshold     EscalationCondition = "latency_over_threshold"
	CondConfidenceUnderThreshold EscalationCondition = "confidence_under_threshold"
	CondAgentUnavailable         EscalationCondition = "agent_unavailable"
)

// EscalationAction is what happens when an escalation rule fires.
type EscalationAction string

const (
	ActionEscalateToFallback EscalationAction = "escalate_to_fallback"
	ActionReject             EscalationAction = "reject"
)

// EscalationRule overrides the route's own fallback list when its condition
// fires. Rules are evaluated in declaration order; first condition match wins.
type EscalationRule struct {
	Condition     EscalationCondition `mapstructure:"condition" json:"condition"`
	Action        EscalationAction    `mapstructure:"action" json:"action"`
	FallbackOrder []string            `mapstructure:"fallback_order" json:"fallback_order"`
}

// RuleFor returns the first escalation rule declared for the given condition,
// or nil if none covers it.
func (d *Document) RuleFor(cond EscalationCondition) *EscalationRule {
	for i := range d.EscalationRules {
		if d.EscalationRules[i].Condition == cond {
			return &d.EscalationRules[i]
		}
	}
	return nil
}

// Route returns the route for an intent name.
func (d *Document) Route(intent string) (IntentRoute, bool) {
	r, ok := d.IntentMappings[intent]
	return r, ok
}

// DefaultRoute returns the reserved default route, if declared.
func (d *Document) DefaultRoute() (IntentRoute, bool) {
	r, ok := d.IntentMappings[DefaultIntentKey]
	return r, ok
}

// Agent returns the definition for an agent name.
func (d *Document) Agent(name string) (AgentDefinition, bool) {
	a, ok := d.AgentDefinitions[name]
	return a, ok
}
