package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestOperationOutcomes(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Operation("record_disposition", nil)
	m.Operation("record_disposition", nil)
	m.Operation("record_disposition", errors.New("conflict"))

	if got := testutil.ToFloat64(m.operations.WithLabelValues("record_disposition", OutcomeSuccess)); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("record_disposition", OutcomeError)); got != 1 {
		t.Fatalf("expected 1 error, got %v", got)
	}
}

func TestDisposedAndTransitions(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Disposed(7, 2)
	m.StatusTransition("Inspection", "Approved")
	m.StatusTransition("Approved", "Approved")

	if got := testutil.ToFloat64(m.disposedQuantities.WithLabelValues("inventory")); got != 7 {
		t.Fatalf("expected 7 to inventory, got %v", got)
	}
	if got := testutil.ToFloat64(m.disposedQuantities.WithLabelValues("waste")); got != 2 {
		t.Fatalf("expected 2 to waste, got %v", got)
	}
	if got := testutil.CollectAndCount(m.statusTransitions); got != 1 {
		t.Fatalf("expected one transition series, got %d", got)
	}
}

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveRequest("GET", "/api/donations", 200, 20*time.Millisecond)

	if got := testutil.ToFloat64(m.requestCounter.WithLabelValues("GET", "/api/donations", "200")); got != 1 {
		t.Fatalf("expected 1 request, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Operation("x", nil)
	m.Disposed(1, 1)
	m.StatusTransition("a", "b")
	m.ObserveRequest("GET", "/", 200, time.Millisecond)
}
