package tracing

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitTracerDisabledIsNoop(t *testing.T) {
	tp, err := InitTracer(Config{Enabled: false, ServiceName: "donation-service"})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, ok := tp.(*sdktrace.TracerProvider); ok {
		t.Fatal("expected a no-op provider")
	}
	if err := Shutdown(context.Background(), tp); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSamplerSelection(t *testing.T) {
	if got := sampler(1).Description(); got != sdktrace.AlwaysSample().Description() {
		t.Fatalf("expected always-on sampler, got %s", got)
	}
	if got := sampler(0).Description(); got != sdktrace.AlwaysSample().Description() {
		t.Fatalf("expected always-on sampler for zero ratio, got %s", got)
	}
	want := sdktrace.ParentBased(sdktrace.TraceIDRatioBased(0.25)).Description()
	if got := sampler(0.25).Description(); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
