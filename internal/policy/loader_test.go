package policy_test

import (
	"errors"
	"testing"

	"intent-routing-engine/internal/policy"
)

const samplePolicyYAML = `
version: "v1"

intent_mappings:
  research_general:
    pattern:
      keywords: ["research", "find", "summarize"]
      context_markers: ["sources"]
      min_score: 0.2
      priority: 10
    primary_agent: general_agent
    fallback_agents: [cheap_agent]
    confidence_threshold: 0.3
    max_cost: 0.05
    max_latency_ms: 30000
    capabilities_required: [web_search]

  default:
    primary_agent: cheap_agent
    confidence_threshold: 0.0
    max_cost: 0.01
    max_latency_ms: 15000

agent_definitions:
  cheap_agent:
    capabilities: [general_qa]
    cost_per_token: 0.000001
    max_concurrent_requests: 64
    timeout_ms: 10000
  general_agent:
    capabilities: [general_qa, web_search]
    cost_per_token: 0.00001
    max_concurrent_requests: 16
    timeout_ms: 30000

escalation_rules:
  - condition: agent_unavailable
    action: escalate_to_fallback
    fallback_order: [cheap_agent]
  - condition: cost_over_threshold
    action: reject
`

func TestParse(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		doc, err := policy.Parse([]byte(samplePolicyYAML))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if doc.Version != "v1" {
			t.Errorf("expected version v1, got %q", doc.Version)
		}
		if len(doc.IntentMappings) != 2 {
			t.Fatalf("expected 2 intents, got %d", len(doc.IntentMappings))
		}

		route, ok := doc.Route("research_general")
		if !ok {
			t.Fatal("expected research_general route")
		}
		if route.PrimaryAgent != "general_agent" {
			t.Errorf("expected primary general_agent, got %q", route.PrimaryAgent)
		}
		if route.Pattern == nil {
			t.Fatal("expected a pattern on research_general")
		}
		if route.Pattern.Name != "research_general" {
			t.Errorf("pattern should be named after its intent key, got %q", route.Pattern.Name)
		}
		if len(route.Pattern.Keywords) != 3 {
			t.Errorf("expected 3 keywords, got %d", len(route.Pattern.Keywords))
		}
		if route.MaxLatencyMs != 30000 {
			t.Errorf("expected max_latency_ms 30000, got %d", route.MaxLatencyMs)
		}

		def, ok := doc.Agent("general_agent")
		if !ok {
			t.Fatal("expected general_agent definition")
		}
		if def.MaxConcurrentRequests != 16 {
			t.Errorf("expected max_concurrent_requests 16, got %d", def.MaxConcurrentRequests)
		}
		if !def.HasCapabilities([]string{"web_search"}) {
			t.Error("general_agent should cover web_search")
		}

		if len(doc.EscalationRules) != 2 {
			t.Fatalf("expected 2 escalation rules, got %d", len(doc.EscalationRules))
		}
	})

	t.Run("omitted weights fall back to defaults", func(t *testing.T) {
		doc, err := policy.Parse([]byte(samplePolicyYAML))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		pattern := doc.IntentMappings["research_general"].Pattern
		if pattern.KeywordWeight != policy.DefaultKeywordWeight {
			t.Errorf("expected keyword weight %.1f, got %.2f", policy.DefaultKeywordWeight, pattern.KeywordWeight)
		}
		if pattern.ContextWeight != policy.DefaultContextWeight {
			t.Errorf("expected context weight %.1f, got %.2f", policy.DefaultContextWeight, pattern.ContextWeight)
		}
	})

	t.Run("default route has no pattern", func(t *testing.T) {
		doc, err := policy.Parse([]byte(samplePolicyYAML))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		route, ok := doc.DefaultRoute()
		if !ok {
			t.Fatal("expected a default route")
		}
		if route.Pattern != nil {
			t.Error("default route must not carry a pattern")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := policy.Parse([]byte("   \n\t"))
		if !errors.Is(err, policy.ErrEmptyDocument) {
			t.Errorf("expected ErrEmptyDocument, got %v", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := policy.Parse([]byte("version: [unclosed"))
		if err == nil {
			t.Error("expected a parse error")
		}
	})
}

func TestDocument_RuleFor(t *testing.T) {
	doc, err := policy.Parse([]byte(samplePolicyYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rule := doc.RuleFor(policy.CondAgentUnavailable)
	if rule == nil {
		t.Fatal("expected a rule for agent_unavailable")
	}
	if rule.Action != policy.ActionEscalateToFallback {
		t.Errorf("expected escalate_to_fallback, got %q", rule.Action)
	}

	if doc.RuleFor(policy.CondConfidenceUnderThreshold) != nil {
		t.Error("expected no rule for confidence_under_threshold")
	}
}
