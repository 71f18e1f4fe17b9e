package classifier

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"intent-routing-engine/internal/policy"
)

// Classify scores the query against every declared pattern. Patterns below
// their min_score are dropped entirely so downstream logic never routes on a
// near-zero signal. An empty or whitespace-only query yields no candidates.
func (c *KeywordClassifier) Classify(ctx context.Context, query string, doc *policy.Document) []Candidate {
	tokens, normalized := normalize(query)
	if len(tokens) == 0 {
		return nil
	}

	cacheKey := doc.Version + "\x1f" + normalized
	if c.cache != nil {
		if cached, ok := c.cache.Get(cacheKey); ok {
			c.l.Debugf(ctx, "classifier cache hit for policy %s", doc.Version)
			out := make([]Candidate, len(cached))
			copy(out, cached)
			return out
		}
	}

	tokenSet := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = true
	}

	type scored struct {
		Candidate
		priority int
	}
	var results []scored

	for name, route := range doc.IntentMappings {
		pattern := route.Pattern
		if pattern == nil {
			continue
		}

		score := scorePattern(pattern, tokenSet, normalized)
		if score < pattern.MinScore {
			continue
		}

		results = append(results, scored{
			Candidate: Candidate{Intent: name, Confidence: score},
			priority:  pattern.Priority,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Confidence != results[j].Confidence {
			return results[i].Confidence > results[j].Confidence
		}
		if results[i].priority != results[j].priority {
			return results[i].priority < results[j].priority
		}
		return results[i].Intent < results[j].Intent
	})

	candidates := make([]Candidate, len(results))
	for i, r := range results {
		candidates[i] = r.Candidate
	}

	if c.cache != nil {
		stored := make([]Candidate, len(candidates))
		copy(stored, candidates)
		c.cache.Add(cacheKey, stored)
		c.l.Debugf(ctx, "classifier cache miss for policy %s, scored %d candidates", doc.Version, len(candidates))
	}

	return candidates
}

// scorePattern computes keyword_ratio*keyword_weight + context_ratio*context_weight.
// An empty marker set contributes a zero ratio, not a division by zero.
func scorePattern(pattern *policy.IntentPattern, tokenSet map[string]bool, normalized string) float64 {
	var keywordRatio float64
	if len(pattern.Keywords) > 0 {
		matched := 0
		for _, kw := range pattern.Keywords {
			if matchTerm(kw, tokenSet, normalized) {
				matched++
			}
		}
		keywordRatio = float64(matched) / float64(len(pattern.Keywords))
	}

	var contextRatio float64
	if len(pattern.ContextMarkers) > 0 {
		matched := 0
		for _, marker := range pattern.ContextMarkers {
			if matchPhrase(marker, normalized) {
				matched++
			}
		}
		contextRatio = float64(matched) / float64(len(pattern.ContextMarkers))
	}

	return keywordRatio*pattern.KeywordWeight + contextRatio*pattern.ContextWeight
}

// matchTerm matches a single-word keyword against the token set; multi-word
// keywords fall back to contiguous phrase matching.
func matchTerm(term string, tokenSet map[string]bool, normalized string) bool {
	_, normTerm := normalize(term)
	if normTerm == "" {
		return false
	}
	if !strings.Contains(normTerm, " ") {
		return tokenSet[normTerm]
	}
	return matchPhrase(term, normalized)
}

// matchPhrase matches a multi-word marker only as a contiguous token phrase.
func matchPhrase(phrase, normalized string) bool {
	_, normPhrase := normalize(phrase)
	if normPhrase == "" {
		return false
	}
	return strings.Contains(" "+normalized+" ", " "+normPhrase+" ")
}

// normalize case-folds and tokenizes on whitespace and punctuation, returning
// the tokens and the single-space-joined normalized text.
func normalize(s string) ([]string, string) {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	return tokens, strings.Join(tokens, " ")
}
