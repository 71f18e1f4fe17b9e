package telemetry

// EventTypeRoutingDecision is the event_type stamped on every emitted event.
const EventTypeRoutingDecision = "routing_decision"

// Config configures the async decision recorder.
type Config struct {
	BufferSize int
	OutputPath string // file path, or "stderr"/"stdout"
}
