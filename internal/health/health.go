// Package health provides system health monitoring and status reporting.
package health

// SystemStatus represents the overall health state of the system or a component.
type SystemStatus string

const (
	StatusHealthy  SystemStatus = "healthy"
	StatusDegraded SystemStatus = "degraded"
	StatusCritical SystemStatus = "critical"
)

// RunHealth contains health metrics for the scoring run.
type RunHealth struct {
	Status  SystemStatus `json:"status"`
	RunID   string       `json:"run_id"`
	Backend string       `json:"backend"`
	Stored  int          `json:"stored"`
	Nulls   int          `json:"nulls"`
	Pending int          `json:"pending"`
}
