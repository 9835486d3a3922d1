// Package telemetry records fsrelay server metrics through OpenTelemetry.
//
// Instruments are created once per Recorder against a MeterProvider. With
// no exporter configured the global provider is a no-op, so recording is
// always safe.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/dmitrijs2005/fsrelay"

// Status values attached to command metrics.
const (
	StatusOK      = "ok"
	StatusFailed  = "failed"
	StatusClosed  = "closed"
	StatusIgnored = "ignored"
)

// Recorder holds the server's metric instruments. A nil *Recorder records
// nothing.
type Recorder struct {
	connections metric.Int64Counter
	commands    metric.Int64Counter
	transferred metric.Int64Counter
	duration    metric.Float64Histogram
}

// NewRecorder registers the instruments against mp.
func NewRecorder(mp metric.MeterProvider) *Recorder {
	m := mp.Meter(meterName)
	r := &Recorder{}

	r.connections, _ = m.Int64Counter("fsrelay.connections.total",
		metric.WithDescription("Total accepted client connections"),
	)
	r.commands, _ = m.Int64Counter("fsrelay.commands.total",
		metric.WithDescription("Total dispatched commands"),
	)
	r.transferred, _ = m.Int64Counter("fsrelay.transfer.bytes",
		metric.WithDescription("Payload bytes moved by cp"),
		metric.WithUnit("By"),
	)
	r.duration, _ = m.Float64Histogram("fsrelay.command.duration_ms",
		metric.WithDescription("Command handling latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	return r
}

// Default returns a Recorder bound to the global MeterProvider.
func Default() *Recorder {
	return NewRecorder(otel.GetMeterProvider())
}

// RecordConnection counts an accepted connection.
func (r *Recorder) RecordConnection(ctx context.Context) {
	if r == nil {
		return
	}
	r.connections.Add(ctx, 1)
}

// RecordCommand counts one dispatched command and its latency.
func (r *Recorder) RecordCommand(ctx context.Context, name, status string, elapsed time.Duration) {
	if r == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("command", name),
		attribute.String("status", status),
	)
	r.commands.Add(ctx, 1, attrs)
	r.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
}

// RecordTransfer adds n payload bytes moved in the given direction.
func (r *Recorder) RecordTransfer(ctx context.Context, direction string, n int64) {
	if r == nil || n <= 0 {
		return
	}
	r.transferred.Add(ctx, n, metric.WithAttributes(attribute.String("direction", direction)))
}
