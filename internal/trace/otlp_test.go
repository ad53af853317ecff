package trace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOTLPExporter_Disabled(t *testing.T) {
	e, err := NewOTLPExporter(context.Background(), "", "")
	require.NoError(t, err)
	assert.False(t, e.Enabled())

	_, span := e.Tracer("test").Start(context.Background(), "op")
	assert.True(t, span.SpanContext().IsValid(), "tracers keep working without an exporter")
	span.End()

	assert.NoError(t, e.Shutdown(context.Background()))
}

func TestNewOTLPExporter_Enabled(t *testing.T) {
	// The exporter does not connect until spans are flushed.
	e, err := NewOTLPExporter(context.Background(), "127.0.0.1:4318", "onborder-test")
	require.NoError(t, err)
	assert.True(t, e.Enabled())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = e.Shutdown(ctx)
}

func TestOTLPExporter_NilSafe(t *testing.T) {
	var e *OTLPExporter
	assert.False(t, e.Enabled())
	assert.NoError(t, e.Shutdown(context.Background()))

	_, span := e.Tracer("test").Start(context.Background(), "op")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
}
