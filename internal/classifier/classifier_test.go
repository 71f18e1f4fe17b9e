package classifier_test

import (
	"context"
	"math"
	"testing"
	"time"

	"intent-routing-engine/internal/classifier"
	"intent-routing-engine/internal/policy"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func testDocument() *policy.Document {
	return &policy.Document{
		Version: "v1",
		IntentMappings: map[string]policy.IntentRoute{
			"research_general": {
				Pattern: &policy.IntentPattern{
					Name:           "research_general",
					Keywords:       []string{"research", "summarize"},
					ContextMarkers: []string{"sources"},
					KeywordWeight:  0.6,
					ContextWeight:  0.4,
					MinScore:       0.2,
					Priority:       10,
				},
				PrimaryAgent: "general_agent",
			},
			"code_generation": {
				Pattern: &policy.IntentPattern{
					Name:           "code_generation",
					Keywords:       []string{"implement", "refactor", "write a function"},
					ContextMarkers: []string{"stack trace"},
					KeywordWeight:  0.6,
					ContextWeight:  0.4,
					MinScore:       0.25,
					Priority:       5,
				},
				PrimaryAgent: "code_agent",
			},
			"default": {
				PrimaryAgent: "cheap_agent",
			},
		},
	}
}

func TestKeywordClassifier_Classify(t *testing.T) {
	ctx := context.Background()

	t.Run("empty query yields no candidates", func(t *testing.T) {
		c := classifier.New(&mockLogger{}, 0, 0)
		if got := c.Classify(ctx, "   \t ", testDocument()); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("weighted keyword and marker scoring", func(t *testing.T) {
		c := classifier.New(&mockLogger{}, 0, 0)

		got := c.Classify(ctx, "Research competitors and summarize findings, with sources.", testDocument())
		if len(got) != 1 {
			t.Fatalf("expected 1 candidate, got %v", got)
		}
		if got[0].Intent != "research_general" {
			t.Errorf("expected research_general, got %q", got[0].Intent)
		}
		// both keywords and the only marker match: 1.0*0.6 + 1.0*0.4
		if !approx(got[0].Confidence, 1.0) {
			t.Errorf("expected confidence 1.0, got %f", got[0].Confidence)
		}
	})

	t.Run("partial keyword match scales the ratio", func(t *testing.T) {
		c := classifier.New(&mockLogger{}, 0, 0)

		got := c.Classify(ctx, "please research this topic", testDocument())
		if len(got) != 1 {
			t.Fatalf("expected 1 candidate, got %v", got)
		}
		// one of two keywords, no markers: 0.5*0.6
		if !approx(got[0].Confidence, 0.3) {
			t.Errorf("expected confidence 0.3, got %f", got[0].Confidence)
		}
	})

	t.Run("scores below min_score are dropped", func(t *testing.T) {
		doc := testDocument()
		doc.IntentMappings["research_general"].Pattern.MinScore = 0.5

		c := classifier.New(&mockLogger{}, 0, 0)
		if got := c.Classify(ctx, "please research this topic", doc); len(got) != 0 {
			t.Errorf("expected no candidates below min_score, got %v", got)
		}
	})

	t.Run("multi-word keyword matches as a contiguous phrase", func(t *testing.T) {
		c := classifier.New(&mockLogger{}, 0, 0)

		got := c.Classify(ctx, "implement and write a function that parses YAML", testDocument())
		if len(got) != 1 || got[0].Intent != "code_generation" {
			t.Fatalf("expected code_generation, got %v", got)
		}
		// two of three keywords, no markers: (2/3)*0.6
		if !approx(got[0].Confidence, 0.4) {
			t.Errorf("expected confidence 0.4, got %f", got[0].Confidence)
		}

		// phrase words present but not contiguous: only "implement" scores,
		// (1/3)*0.6 = 0.2 sits below the 0.25 min_score
		got = c.Classify(ctx, "implement something, write me a short function", testDocument())
		if len(got) != 0 {
			t.Errorf("non-contiguous phrase should not match, got %v", got)
		}
	})

	t.Run("context marker is phrase-matched", func(t *testing.T) {
		c := classifier.New(&mockLogger{}, 0, 0)

		got := c.Classify(ctx, "refactor this, here is the stack trace", testDocument())
		if len(got) != 1 {
			t.Fatalf("expected 1 candidate, got %v", got)
		}
		// one of three keywords plus the marker: (1/3)*0.6 + 1.0*0.4
		if !approx(got[0].Confidence, 0.2+0.4) {
			t.Errorf("expected confidence 0.6, got %f", got[0].Confidence)
		}
	})

	t.Run("tokenization strips punctuation and case", func(t *testing.T) {
		c := classifier.New(&mockLogger{}, 0, 0)

		got := c.Classify(ctx, "IMPLEMENT... REFACTOR!!!", testDocument())
		if len(got) != 1 || got[0].Intent != "code_generation" {
			t.Errorf("expected code_generation, got %v", got)
		}
	})

	t.Run("candidates sorted by confidence, ties by priority then name", func(t *testing.T) {
		doc := testDocument()
		// make both patterns score identically on a shared keyword
		doc.IntentMappings["research_general"].Pattern.Keywords = []string{"analyze"}
		doc.IntentMappings["research_general"].Pattern.ContextMarkers = nil
		doc.IntentMappings["code_generation"].Pattern.Keywords = []string{"analyze"}
		doc.IntentMappings["code_generation"].Pattern.ContextMarkers = nil

		c := classifier.New(&mockLogger{}, 0, 0)
		got := c.Classify(ctx, "analyze this", doc)
		if len(got) != 2 {
			t.Fatalf("expected 2 candidates, got %v", got)
		}
		// equal confidence: code_generation has the lower priority value
		if got[0].Intent != "code_generation" || got[1].Intent != "research_general" {
			t.Errorf("tie-break order wrong: %v", got)
		}
	})

	t.Run("classification is deterministic", func(t *testing.T) {
		c := classifier.New(&mockLogger{}, 0, 0)
		doc := testDocument()

		first := c.Classify(ctx, "research and refactor with sources", doc)
		for i := 0; i < 20; i++ {
			again := c.Classify(ctx, "research and refactor with sources", doc)
			if len(again) != len(first) {
				t.Fatalf("result length changed between runs: %v vs %v", first, again)
			}
			for j := range first {
				if again[j] != first[j] {
					t.Fatalf("result order changed between runs: %v vs %v", first, again)
				}
			}
		}
	})
}

func TestKeywordClassifier_Cache(t *testing.T) {
	ctx := context.Background()

	t.Run("cache is keyed by policy version", func(t *testing.T) {
		c := classifier.New(&mockLogger{}, 16, time.Minute)
		doc := testDocument()

		first := c.Classify(ctx, "please research this topic", doc)
		if len(first) != 1 {
			t.Fatalf("expected 1 candidate, got %v", first)
		}

		// same version: mutated patterns are not observed, proving the hit
		doc.IntentMappings["research_general"].Pattern.Keywords = []string{"unrelated"}
		cached := c.Classify(ctx, "please research this topic", doc)
		if len(cached) != 1 || cached[0] != first[0] {
			t.Errorf("expected cached result %v, got %v", first, cached)
		}

		// new version: recomputed against the mutated patterns
		doc.Version = "v2"
		fresh := c.Classify(ctx, "please research this topic", doc)
		if len(fresh) != 0 {
			t.Errorf("expected recomputation for new version, got %v", fresh)
		}
	})

	t.Run("callers cannot corrupt cached entries", func(t *testing.T) {
		c := classifier.New(&mockLogger{}, 16, time.Minute)
		doc := testDocument()

		got := c.Classify(ctx, "please research this topic", doc)
		if len(got) != 1 {
			t.Fatalf("expected 1 candidate, got %v", got)
		}
		got[0].Intent = "mutated"

		again := c.Classify(ctx, "please research this topic", doc)
		if len(again) != 1 || again[0].Intent != "research_general" {
			t.Errorf("cached entry was corrupted by caller mutation: %v", again)
		}
	})

	t.Run("cache disabled with non-positive size", func(t *testing.T) {
		c := classifier.New(&mockLogger{}, 0, time.Minute)
		doc := testDocument()

		first := c.Classify(ctx, "please research this topic", doc)
		doc.IntentMappings["research_general"].Pattern.Keywords = []string{"unrelated"}
		second := c.Classify(ctx, "please research this topic", doc)
		if len(first) != 1 || len(second) != 0 {
			t.Errorf("expected recomputation without cache: first=%v second=%v", first, second)
		}
	})
}
