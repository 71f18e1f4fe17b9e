package classifier

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"intent-routing-engine/internal/policy"
	pkgLog "intent-routing-engine/pkg/log"
)

// Classifier is the interface for intent classification.
type Classifier interface {
	// Classify scores a raw query against every pattern declared by the
	// document and returns candidates sorted by confidence descending,
	// ties broken by ascending pattern priority, then intent name.
	Classify(ctx context.Context, query string, doc *policy.Document) []Candidate
}

// KeywordClassifier scores queries with weighted keyword and context-marker
// ratios. Classification is pure with respect to (query, policy version), so
// results are cached behind an expirable LRU.
type KeywordClassifier struct {
	l     pkgLog.Logger
	cache *expirable.LRU[string, []Candidate]
}

// Ensure KeywordClassifier implements Classifier interface
var _ Classifier = (*KeywordClassifier)(nil)

// New creates a new KeywordClassifier. cacheSize <= 0 disables caching.
func New(l pkgLog.Logger, cacheSize int, cacheTTL time.Duration) *KeywordClassifier {
	c := &KeywordClassifier{l: l}
	if cacheSize > 0 {
		c.cache = expirable.NewLRU[string, []Candidate](cacheSize, nil, cacheTTL)
	}
	return c
}
