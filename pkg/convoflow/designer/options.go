package designer

import (
	"log/slog"
	"time"

	"github.com/randalmurphal/convoflow/pkg/convoflow"
	"github.com/randalmurphal/convoflow/pkg/convoflow/observability"
	"github.com/randalmurphal/convoflow/pkg/convoflow/store"
)

// Option configures a Designer session.
type Option func(*Designer)

// WithLogger sets the structured logger for session events.
// Default: no logging.
func WithLogger(l *slog.Logger) Option {
	return func(d *Designer) {
		d.logger = l
	}
}

// WithAgentStore sets the collaborator used to keep the agent's display
// name in sync with the flow name. Default: no syncing.
func WithAgentStore(a store.AgentStore) Option {
	return func(d *Designer) {
		d.agents = a
	}
}

// WithMetrics sets the metrics recorder. Default: no-op.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(d *Designer) {
		if m != nil {
			d.metrics = m
		}
	}
}

// WithSpans sets the span manager for load/save tracing. Default: no-op.
func WithSpans(s observability.SpanManager) Option {
	return func(d *Designer) {
		if s != nil {
			d.spans = s
		}
	}
}

// WithFlowName sets the initial flow name, typically the agent's
// current display name. Default: convoflow.DefaultFlowName.
func WithFlowName(name string) Option {
	return func(d *Designer) {
		if name != "" {
			d.snap.FlowName = name
		}
	}
}

// WithMetadata sets the initial flow metadata.
// Default: convoflow.DefaultMetadata().
func WithMetadata(meta convoflow.Metadata) Option {
	return func(d *Designer) {
		d.snap.Metadata = meta
	}
}

// elapsed converts a TimedOperation reading into a duration.
func elapsed(done func() float64) time.Duration {
	return time.Duration(done() * float64(time.Millisecond))
}
