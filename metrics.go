package pwbox

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrumentation uses the OpenTelemetry metrics API only; without a
// registered SDK every call below is a no-op.
var (
	meter = otel.Meter("github.com/rbaliyan/pwbox")

	sealCount   metric.Int64Counter
	openCount   metric.Int64Counter
	kdfDuration metric.Float64Histogram
)

func init() {
	var err error
	sealCount, err = meter.Int64Counter("pwbox.seal.count",
		metric.WithDescription("Number of seal operations."))
	if err != nil {
		otel.Handle(err)
	}
	openCount, err = meter.Int64Counter("pwbox.open.count",
		metric.WithDescription("Number of open operations, labeled by result."))
	if err != nil {
		otel.Handle(err)
	}
	kdfDuration, err = meter.Float64Histogram("pwbox.kdf.duration",
		metric.WithDescription("Key derivation duration."),
		metric.WithUnit("ms"))
	if err != nil {
		otel.Handle(err)
	}
}

func recordSeal(err error) {
	sealCount.Add(context.Background(), 1, metric.WithAttributes(resultAttr(err)))
}

func recordOpen(err error) {
	openCount.Add(context.Background(), 1, metric.WithAttributes(resultAttr(err)))
}

func recordKDF(start time.Time) {
	kdfDuration.Record(context.Background(), float64(time.Since(start))/float64(time.Millisecond))
}

func resultAttr(err error) attribute.KeyValue {
	result := "ok"
	switch {
	case IsAuthFailure(err):
		result = "auth_failure"
	case err != nil:
		result = "error"
	}
	return attribute.String("result", result)
}
