package telemetry

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"intent-routing-engine/internal/routing"
	pkgLog "intent-routing-engine/pkg/log"
)

// Recorder emits every routing decision as a versioned JSON event through a
// buffered channel and a single writer goroutine. Emit never blocks the
// routing critical path and never surfaces an error into it: when the buffer
// is full the event is dropped and counted.
type Recorder struct {
	l    pkgLog.Logger
	sink *zap.Logger

	events  chan routing.Decision
	quit    chan struct{}
	wg      sync.WaitGroup
	dropped atomic.Int64
}

// Ensure Recorder implements routing.Emitter interface
var _ routing.Emitter = (*Recorder)(nil)

// New creates a Recorder and starts its writer goroutine.
func New(l pkgLog.Logger, cfg Config) (*Recorder, error) {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 256
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = "stderr"
	}

	ws, _, err := zap.Open(cfg.OutputPath)
	if err != nil {
		return nil, err
	}

	// The zap message carries the event type and the time key carries the
	// schema's timestamp field, so each line is exactly one schema event.
	encCfg := zapcore.EncoderConfig{
		MessageKey: "event_type",
		TimeKey:    "timestamp",
		EncodeTime: zapcore.ISO8601TimeEncoder,
		LineEnding: zapcore.DefaultLineEnding,
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), ws, zapcore.InfoLevel)

	r := &Recorder{
		l:      l,
		sink:   zap.New(core),
		events: make(chan routing.Decision, cfg.BufferSize),
		quit:   make(chan struct{}),
	}

	r.wg.Add(1)
	go r.run()

	return r, nil
}

// Emit enqueues a decision for recording. Fire-and-forget: a full buffer
// drops the event rather than stalling routing.
func (r *Recorder) Emit(decision routing.Decision) {
	select {
	case r.events <- decision:
	default:
		r.dropped.Add(1)
	}
}

// Dropped returns how many events were discarded due to a full buffer.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Close drains buffered events and stops the writer.
func (r *Recorder) Close() {
	select {
	case <-r.quit:
		return
	default:
	}
	close(r.quit)
	r.wg.Wait()

	if n := r.dropped.Load(); n > 0 {
		r.l.Warnf(context.Background(), "telemetry dropped %d events due to full buffer", n)
	}
}

func (r *Recorder) run() {
	defer r.wg.Done()

	for {
		select {
		case d := <-r.events:
			r.write(d)
		case <-r.quit:
			for {
				select {
				case d := <-r.events:
					r.write(d)
				default:
					r.sink.Sync()
					return
				}
			}
		}
	}
}

func (r *Recorder) write(d routing.Decision) {
	candidateAgents := make([]string, 0, len(d.Candidates))
	agentScores := make(map[string]float64, len(d.Candidates))
	for _, c := range d.Candidates {
		candidateAgents = append(candidateAgents, c.Agent)
		agentScores[c.Agent] = c.Confidence
	}

	r.sink.Info(EventTypeRoutingDecision,
		zap.String("request_id", d.RequestID),
		zap.String("policy_version", d.PolicyVersion),
		zap.String("compliance_status", d.ComplianceStatus),
		zap.String("chosen_agent", d.ChosenAgent),
		zap.Strings("candidate_agents", candidateAgents),
		zap.Any("agent_scores", agentScores),
		zap.Strings("fallback_path", d.FallbackPath),
		zap.Bool("escalation_triggered", d.EscalationTriggered),
		zap.Float64("estimated_cost_usd", d.EstimatedCost),
		zap.Int("estimated_latency_ms", d.EstimatedLatencyMs),
	)
}
