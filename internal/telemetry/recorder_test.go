package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestRecorder(t *testing.T) (*Recorder, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return NewRecorder(mp), reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumFor(t *testing.T, m metricdata.Metrics, kv ...attribute.KeyValue) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)

	want := attribute.NewSet(kv...)
	for _, dp := range sum.DataPoints {
		if dp.Attributes.Equals(&want) {
			return dp.Value
		}
	}
	return 0
}

func TestRecorder_Connections(t *testing.T) {
	rec, reader := newTestRecorder(t)
	ctx := context.Background()

	rec.RecordConnection(ctx)
	rec.RecordConnection(ctx)

	m := collect(t, reader)
	assert.Equal(t, int64(2), sumFor(t, m["fsrelay.connections.total"]))
}

func TestRecorder_CommandsByStatus(t *testing.T) {
	rec, reader := newTestRecorder(t)
	ctx := context.Background()

	rec.RecordCommand(ctx, "ls", StatusOK, time.Millisecond)
	rec.RecordCommand(ctx, "ls", StatusOK, 2*time.Millisecond)
	rec.RecordCommand(ctx, "cd", StatusFailed, time.Millisecond)

	m := collect(t, reader)
	cmds := m["fsrelay.commands.total"]
	assert.Equal(t, int64(2), sumFor(t, cmds, attribute.String("command", "ls"), attribute.String("status", StatusOK)))
	assert.Equal(t, int64(1), sumFor(t, cmds, attribute.String("command", "cd"), attribute.String("status", StatusFailed)))

	hist, ok := m["fsrelay.command.duration_ms"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(3), count)
}

func TestRecorder_TransferBytes(t *testing.T) {
	rec, reader := newTestRecorder(t)
	ctx := context.Background()

	rec.RecordTransfer(ctx, "upload", 1024)
	rec.RecordTransfer(ctx, "upload", 1)
	rec.RecordTransfer(ctx, "download", 0)

	m := collect(t, reader)
	bytes := m["fsrelay.transfer.bytes"]
	assert.Equal(t, int64(1025), sumFor(t, bytes, attribute.String("direction", "upload")))
	assert.Equal(t, int64(0), sumFor(t, bytes, attribute.String("direction", "download")))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var rec *Recorder
	ctx := context.Background()
	rec.RecordConnection(ctx)
	rec.RecordCommand(ctx, "ls", StatusOK, time.Second)
	rec.RecordTransfer(ctx, "download", 10)
}

func TestDefault_UsesGlobalProvider(t *testing.T) {
	rec := Default()
	require.NotNil(t, rec)
	rec.RecordCommand(context.Background(), "ls", StatusOK, time.Millisecond)
}

func TestInit_EmptyEndpointIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), "")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
