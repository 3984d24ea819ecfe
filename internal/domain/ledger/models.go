package ledger

import "time"

const (
	SourceManualAdmin       = "manual_admin"
	SourceSelfReport        = "self_report"
	SourceSystemIntegration = "system_integration"
)

func ValidSource(source string) bool {
	switch source {
	case SourceManualAdmin, SourceSelfReport, SourceSystemIntegration:
		return true
	}
	return false
}

// Entry is one append-only observation of a metric for an employee.
// Corrections are new rows with a later recorded_at, never updates.
type Entry struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	MetricKey   string    `json:"metricKey"`
	Value       float64   `json:"value"`
	Unit        string    `json:"unit"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	RecordedAt  time.Time `json:"recordedAt"`
	SourceType  string    `json:"sourceType"`
}

type ListFilter struct {
	EmployeeID string
	MetricKey  string
	From       time.Time
	To         time.Time
	Limit      int
	Offset     int
}
