package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopMetricsDoesNothing(t *testing.T) {
	m := NoopMetrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordLoad(ctx, true, 10*time.Millisecond)
		m.RecordLoad(ctx, false, 0)
		m.RecordSave(ctx, "create", true, 5*time.Millisecond)
		m.RecordSave(ctx, "update", false, 0)
		m.RecordSyncError(ctx, "load")
		m.RecordGraphSize(ctx, 0, 0)
		m.RecordGraphSize(ctx, -1, -1)
	})
}

func TestNoopSpanManager(t *testing.T) {
	sm := NoopSpanManager{}
	ctx := context.Background()

	t.Run("load span keeps the context", func(t *testing.T) {
		gotCtx, span := sm.StartLoadSpan(ctx, "agent-1")
		assert.Equal(t, ctx, gotCtx)
		assert.NotNil(t, span)
		assert.NotPanics(t, func() { sm.EndSpanWithError(span, nil) })
	})

	t.Run("save span keeps the context", func(t *testing.T) {
		gotCtx, span := sm.StartSaveSpan(ctx, "flow-1", "update")
		assert.Equal(t, ctx, gotCtx)
		assert.NotNil(t, span)
		assert.NotPanics(t, func() { sm.EndSpanWithError(span, errors.New("x")) })
	})
}
