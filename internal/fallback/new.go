package fallback

import (
	"context"

	"intent-routing-engine/internal/policy"
	pkgLog "intent-routing-engine/pkg/log"
)

// Resolver is the interface for fallback chain resolution.
type Resolver interface {
	// Resolve walks the effective fallback chain and returns the first agent
	// that exists, covers the route's required capabilities, and is available.
	// ok is false when the chain is exhausted; resolution never fabricates an
	// agent outside the declared chain.
	Resolve(ctx context.Context, route policy.IntentRoute, rule *policy.EscalationRule, doc *policy.Document) (agent string, ok bool)
}

// Availability reports whether an agent can accept another routing right now.
type Availability interface {
	Available(agent string, maxConcurrent int) bool
}

// ChainResolver resolves fallbacks strictly in declared order.
type ChainResolver struct {
	l     pkgLog.Logger
	avail Availability
}

// Ensure ChainResolver implements Resolver interface
var _ Resolver = (*ChainResolver)(nil)

// New creates a new ChainResolver.
func New(l pkgLog.Logger, avail Availability) *ChainResolver {
	return &ChainResolver{l: l, avail: avail}
}
