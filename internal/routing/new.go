package routing

import (
	"context"

	"intent-routing-engine/internal/classifier"
	"intent-routing-engine/internal/compliance"
	"intent-routing-engine/internal/fallback"
	"intent-routing-engine/internal/policy"
	pkgLog "intent-routing-engine/pkg/log"
)

// UseCase defines the business logic interface for the routing domain.
type UseCase interface {
	// Route produces exactly one Decision per request. Terminal failures are
	// returned as typed errors alongside a Decision recording the failure;
	// every path, success or terminal, is emitted to telemetry before return.
	Route(ctx context.Context, input RouteInput) (Decision, error)
}

// PolicySource provides the active policy snapshot.
type PolicySource interface {
	Active() *policy.Document
}

// SlotAcquirer reserves per-agent in-flight capacity.
type SlotAcquirer interface {
	Acquire(agent string, maxConcurrent int) (release func(), ok bool)
}

// Emitter records decisions; implementations must never block the routing
// path or surface errors back into it.
type Emitter interface {
	Emit(decision Decision)
}

// Engine orchestrates classification, compliance validation, and fallback
// resolution into one decision per request.
type Engine struct {
	l          pkgLog.Logger
	policies   PolicySource
	classifier classifier.Classifier
	validator  compliance.Validator
	resolver   fallback.Resolver
	slots      SlotAcquirer
	emitter    Emitter

	costEstimator    CostEstimator
	latencyEstimator LatencyEstimator
	defaultTokens    int
}

// Ensure Engine implements UseCase interface
var _ UseCase = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithCostEstimator replaces the default tokens*cost_per_token estimator.
func WithCostEstimator(est CostEstimator) Option {
	return func(e *Engine) { e.costEstimator = est }
}

// WithLatencyEstimator replaces the default timeout-ceiling estimator.
func WithLatencyEstimator(est LatencyEstimator) Option {
	return func(e *Engine) { e.latencyEstimator = est }
}

// WithDefaultTokens sets the token estimate used when the caller supplies none.
func WithDefaultTokens(tokens int) Option {
	return func(e *Engine) { e.defaultTokens = tokens }
}

// New creates a new routing Engine.
func New(
	l pkgLog.Logger,
	policies PolicySource,
	cls classifier.Classifier,
	validator compliance.Validator,
	resolver fallback.Resolver,
	slots SlotAcquirer,
	emitter Emitter,
	opts ...Option,
) *Engine {
	e := &Engine{
		l:                l,
		policies:         policies,
		classifier:       cls,
		validator:        validator,
		resolver:         resolver,
		slots:            slots,
		emitter:          emitter,
		costEstimator:    DefaultCostEstimator,
		latencyEstimator: DefaultLatencyEstimator,
		defaultTokens:    1000,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
