package trace

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSpan_Disabled(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, Init(ctx, Config{Enabled: false}))

	spanCtx, span := StartSpan(ctx, "noop")
	defer span.End()

	assert.Equal(t, ctx, spanCtx)
	assert.False(t, span.SpanContext().IsValid())
	_, _, ok := GetTraceFields(spanCtx)
	assert.False(t, ok)
}

func TestStartSpan_Enabled(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	require.NoError(t, Init(ctx, Config{Enabled: true, ServiceName: "test-dashboard", Writer: &out}))
	assert.True(t, Enabled())

	spanCtx, span := StartSpan(ctx, "analytics.compute")
	traceID, spanID, ok := GetTraceFields(spanCtx)
	require.True(t, ok)
	assert.Len(t, traceID, 32)
	assert.Len(t, spanID, 16)
	span.End()

	require.NoError(t, Shutdown(ctx))
	assert.False(t, Enabled())
	assert.Contains(t, out.String(), "analytics.compute")
}
