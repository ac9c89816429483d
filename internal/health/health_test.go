package health

import (
	"context"
	"errors"
	"testing"

	"github.com/vietddude/flamescan/internal/infra/storage/memory"
	"github.com/vietddude/flamescan/internal/pipeline"
)

// =============================================================================
// Mocks
// =============================================================================

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error { return m.err }

func newTracker(total, done, nulls int) *pipeline.Tracker {
	tr := &pipeline.Tracker{}
	tr.Begin(total, done)
	for i := 0; i < nulls; i++ {
		tr.Record(false)
	}
	return tr
}

// =============================================================================
// Tests
// =============================================================================

func TestMonitor_Healthy(t *testing.T) {
	monitor := NewMonitor("run-1", &mockPinger{}, newTracker(100, 10, 0), memory.NewMemoryStore())

	report := monitor.CheckHealth(context.Background())

	if report.Status != StatusHealthy {
		t.Errorf("expected healthy, got %s", report.Status)
	}
	if report.Backend != "ok" {
		t.Errorf("expected backend ok, got %s", report.Backend)
	}
	if report.RunID != "run-1" {
		t.Errorf("expected run id run-1, got %s", report.RunID)
	}
}

func TestMonitor_DegradedOnUnreachableBackend(t *testing.T) {
	pinger := &mockPinger{err: errors.New("connection refused")}
	monitor := NewMonitor("run-1", pinger, newTracker(100, 10, 0), memory.NewMemoryStore())

	report := monitor.CheckHealth(context.Background())

	if report.Status != StatusDegraded {
		t.Errorf("expected degraded, got %s", report.Status)
	}
	if report.Backend != "unreachable" {
		t.Errorf("expected backend unreachable, got %s", report.Backend)
	}
}

func TestMonitor_DegradedOnNulls(t *testing.T) {
	monitor := NewMonitor("run-1", &mockPinger{}, newTracker(100, 10, 3), memory.NewMemoryStore())

	report := monitor.CheckHealth(context.Background())

	if report.Status != StatusDegraded {
		t.Errorf("expected degraded, got %s", report.Status)
	}
}

func TestMonitor_Critical(t *testing.T) {
	monitor := NewMonitor("run-1", &mockPinger{}, newTracker(200, 0, 60), memory.NewMemoryStore())

	report := monitor.CheckHealth(context.Background())

	if report.Status != StatusCritical {
		t.Errorf("expected critical, got %s", report.Status)
	}
}

func TestMonitor_RateLimitsChecks(t *testing.T) {
	pinger := &mockPinger{}
	tracker := newTracker(10, 0, 0)
	monitor := NewMonitor("run-1", pinger, tracker, memory.NewMemoryStore())

	first := monitor.CheckHealth(context.Background())

	// Degrade the backend; the cached report should still be served.
	pinger.err = errors.New("down")
	second := monitor.CheckHealth(context.Background())

	if first.Status != second.Status {
		t.Errorf("report not cached: %s then %s", first.Status, second.Status)
	}
}
