package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveCommand(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(Config{ServiceName: "test"}, reg)
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}

	m.ObserveCommand("Count", OutcomeOK, 5*time.Millisecond)
	m.ObserveCommand("count", OutcomeOK, 5*time.Millisecond)
	m.ObserveCommand("count", OutcomeRejected, time.Millisecond)

	if got := testutil.ToFloat64(m.commands.WithLabelValues("count", OutcomeOK)); got != 2 {
		t.Fatalf("expected 2 ok counts, got %v", got)
	}
	if got := testutil.ToFloat64(m.commands.WithLabelValues("count", OutcomeRejected)); got != 1 {
		t.Fatalf("expected 1 rejected count, got %v", got)
	}
}

func TestRecordGrant(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(Config{}, reg)
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}
	m.RecordGrant("advanced_stats")
	if got := testutil.ToFloat64(m.grants.WithLabelValues("advanced_stats")); got != 1 {
		t.Fatalf("expected 1 grant, got %v", got)
	}
}

func TestNewRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := New(Config{}, reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := New(Config{}, reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveCommand("count", OutcomeOK, time.Millisecond)
	m.RecordGrant("advanced_stats")
}
