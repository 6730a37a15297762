package telemetry

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestConfigureHoneycomb(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	ConfigureHoneycomb("secret", "levels")

	assert.Equal(t, honeycombEndpoint, os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	assert.Equal(t, "x-honeycomb-team=secret,x-honeycomb-dataset=levels", os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
}

func TestTracerUsesGlobalProvider(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := Tracer("test").Start(context.Background(), "unit")
	span.End()

	ended := recorder.Ended()
	if assert.Len(t, ended, 1) {
		assert.Equal(t, "unit", ended[0].Name())
		assert.Equal(t, "sneakmap/test", ended[0].InstrumentationScope().Name)
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource(context.Background(), "daemon")
	if !assert.NoError(t, err) {
		return
	}

	attrs := map[attribute.Key]string{}
	for _, kv := range res.Attributes() {
		attrs[kv.Key] = kv.Value.Emit()
	}
	assert.Equal(t, serviceName, attrs["service.name"])
	assert.Equal(t, "daemon", attrs["service.component"])
	assert.Equal(t, "go", attrs["telemetry.sdk.language"])
	assert.NotEmpty(t, attrs["host.name"])
}

func TestConfigureHoneycombWithoutKey(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	ConfigureHoneycomb("", "levels")

	assert.Equal(t, honeycombEndpoint, os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	assert.Empty(t, os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
}
