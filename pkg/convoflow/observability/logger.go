// Package observability provides structured logging, metrics, and
// tracing helpers for flow editing sessions.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds session context to a logger. Returns a new logger
// with agent_id and flow_id fields.
func EnrichLogger(logger *slog.Logger, agentID, flowID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("agent_id", agentID),
		slog.String("flow_id", flowID),
	)
}

// LogFlowLoaded logs a successful flow load.
func LogFlowLoaded(logger *slog.Logger, agentID, flowID string, nodes, edges int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("flow loaded",
		slog.String("agent_id", agentID),
		slog.String("flow_id", flowID),
		slog.Int("nodes", nodes),
		slog.Int("edges", edges),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogFlowSaved logs a successful save. Op is "create" or "update".
func LogFlowSaved(logger *slog.Logger, op, flowID string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("flow saved",
		slog.String("op", op),
		slog.String("flow_id", flowID),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogBootstrap logs the creation of a default flow for an agent that
// had none persisted.
func LogBootstrap(logger *slog.Logger, agentID string) {
	if logger == nil {
		return
	}
	logger.Info("no persisted flow, bootstrapping default",
		slog.String("agent_id", agentID),
	)
}

// LogSyncError logs a recoverable storage failure (non-fatal).
func LogSyncError(logger *slog.Logger, op, agentID string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("flow sync failed",
		slog.String("op", op),
		slog.String("agent_id", agentID),
		slog.String("error", err.Error()),
	)
}

// LogStaleResult logs a load/save result discarded because the session
// moved on while the call was in flight.
func LogStaleResult(logger *slog.Logger, op, agentID string) {
	if logger == nil {
		return
	}
	logger.Debug("discarding stale result",
		slog.String("op", op),
		slog.String("agent_id", agentID),
	)
}

// LogAgentRenameFailed logs a failed agent rename (non-blocking).
func LogAgentRenameFailed(logger *slog.Logger, agentID string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("agent rename failed",
		slog.String("agent_id", agentID),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation. Returns a
// function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
