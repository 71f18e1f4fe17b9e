package telemetry_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"intent-routing-engine/internal/routing"
	"intent-routing-engine/internal/telemetry"
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

func sampleDecision(id string) routing.Decision {
	return routing.Decision{
		RequestID:        id,
		PolicyVersion:    "v1",
		ChosenIntent:     "research_general",
		ChosenAgent:      "general_agent",
		ComplianceStatus: "COMPLIANT",
		Candidates: []routing.Candidate{
			{Intent: "research_general", Agent: "general_agent", Confidence: 0.8},
		},
		FallbackPath:        []string{},
		EscalationTriggered: false,
		EstimatedCost:       0.01,
		EstimatedLatencyMs:  30000,
		DecidedAt:           time.Now().UTC(),
	}
}

func readEvents(t *testing.T, path string) []map[string]any {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open sink: %v", err)
	}
	defer f.Close()

	var events []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var event map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("line is not valid JSON: %q", scanner.Text())
		}
		events = append(events, event)
	}
	return events
}

func TestRecorder(t *testing.T) {
	t.Run("decisions are written as one JSON event per line", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "decisions.ndjson")
		r, err := telemetry.New(&mockLogger{}, telemetry.Config{BufferSize: 8, OutputPath: path})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		r.Emit(sampleDecision("req-1"))
		r.Emit(sampleDecision("req-2"))
		r.Close()

		events := readEvents(t, path)
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}

		event := events[0]
		if event["event_type"] != telemetry.EventTypeRoutingDecision {
			t.Errorf("expected event_type routing_decision, got %v", event["event_type"])
		}
		if event["request_id"] != "req-1" {
			t.Errorf("expected request_id req-1, got %v", event["request_id"])
		}
		if event["policy_version"] != "v1" {
			t.Errorf("expected policy_version v1, got %v", event["policy_version"])
		}
		if event["compliance_status"] != "COMPLIANT" {
			t.Errorf("expected compliance_status COMPLIANT, got %v", event["compliance_status"])
		}
		if event["chosen_agent"] != "general_agent" {
			t.Errorf("expected chosen_agent general_agent, got %v", event["chosen_agent"])
		}
		if _, ok := event["timestamp"]; !ok {
			t.Error("expected a timestamp field")
		}
		if _, ok := event["agent_scores"]; !ok {
			t.Error("expected an agent_scores field")
		}
		if _, ok := event["estimated_cost_usd"]; !ok {
			t.Error("expected an estimated_cost_usd field")
		}

		agents, ok := event["candidate_agents"].([]any)
		if !ok || len(agents) != 1 || agents[0] != "general_agent" {
			t.Errorf("expected candidate_agents [general_agent], got %v", event["candidate_agents"])
		}
	})

	t.Run("close drains buffered events", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "decisions.ndjson")
		r, err := telemetry.New(&mockLogger{}, telemetry.Config{BufferSize: 64, OutputPath: path})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for i := 0; i < 50; i++ {
			r.Emit(sampleDecision("req"))
		}
		r.Close()

		if events := readEvents(t, path); len(events) != 50 {
			t.Errorf("expected 50 events after drain, got %d", len(events))
		}
	})

	t.Run("full buffer drops instead of blocking", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "decisions.ndjson")
		r, err := telemetry.New(&mockLogger{}, telemetry.Config{BufferSize: 1, OutputPath: path})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// stop the writer so the buffer cannot drain
		r.Close()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 10; i++ {
				r.Emit(sampleDecision("req"))
			}
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Emit blocked on a full buffer")
		}

		if r.Dropped() == 0 {
			t.Error("expected dropped events to be counted")
		}
	})

	t.Run("close is idempotent", func(t *testing.T) {
		r, err := telemetry.New(&mockLogger{}, telemetry.Config{BufferSize: 4, OutputPath: filepath.Join(t.TempDir(), "d.ndjson")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		r.Close()
		r.Close()
	})
}
