package health

import (
	"context"
	"sync"
	"time"

	"github.com/vietddude/flamescan/internal/infra/storage"
	"github.com/vietddude/flamescan/internal/pipeline"
)

// BackendPinger checks whether the scoring backend is reachable.
type BackendPinger interface {
	Ping(ctx context.Context) error
}

// Monitor aggregates health status from the run's components.
type Monitor struct {
	runID      string
	pinger     BackendPinger
	tracker    *pipeline.Tracker
	store      storage.ResultStore
	lastCheck  time.Time
	lastReport RunHealth
	mu         sync.Mutex
}

// NewMonitor creates a new health monitor.
func NewMonitor(runID string, pinger BackendPinger, tracker *pipeline.Tracker, store storage.ResultStore) *Monitor {
	return &Monitor{
		runID:   runID,
		pinger:  pinger,
		tracker: tracker,
		store:   store,
	}
}

// CheckHealth performs a health check of the backend and the run state.
func (m *Monitor) CheckHealth(ctx context.Context) RunHealth {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Rate limit checks (max once per 10s) to avoid spamming the backend
	if time.Since(m.lastCheck) < 10*time.Second && !m.lastCheck.IsZero() {
		return m.lastReport
	}

	snap := m.tracker.Snapshot()
	report := RunHealth{
		Status:  StatusHealthy,
		RunID:   m.runID,
		Backend: "ok",
		Stored:  m.store.Len(),
		Nulls:   snap.Nulls,
		Pending: snap.Pending,
	}

	if m.pinger != nil {
		if err := m.pinger.Ping(ctx); err != nil {
			report.Backend = "unreachable"
		}
	}

	// Evaluate status. A large number of null scores means the backend
	// has been failing long enough to exhaust retries repeatedly.
	if report.Nulls > 50 {
		report.Status = StatusCritical
	} else if report.Nulls > 0 || report.Backend != "ok" {
		report.Status = StatusDegraded
	}

	m.lastCheck = time.Now()
	m.lastReport = report
	return report
}

// Progress returns the live run counters without rate limiting.
func (m *Monitor) Progress() pipeline.Snapshot {
	return m.tracker.Snapshot()
}
