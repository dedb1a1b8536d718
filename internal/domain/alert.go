package domain

import "time"

// AlertType enumerates derived alert kinds.
type AlertType string

const (
	AlertTypeAccepted       AlertType = "ACCEPTED"
	AlertTypeOnsite         AlertType = "ONSITE"
	AlertTypeCompleted      AlertType = "COMPLETED"
	AlertTypeOverdue        AlertType = "OVERDUE"
	AlertTypeEngineerAccept AlertType = "ENGINEER_ACCEPT"
	AlertTypeEngineerOnsite AlertType = "ENGINEER_ONSITE"
)

// AlertSeverity is independent of Job priority.
type AlertSeverity string

const (
	AlertSeverityLow    AlertSeverity = "low"
	AlertSeverityMedium AlertSeverity = "medium"
	AlertSeverityHigh   AlertSeverity = "high"
)

// Alert is derived from a Job at evaluation time; it is never stored.
// ID is stable across regenerations so that resolution state can be
// re-merged after every derivation pass.
type Alert struct {
	ID        string        `json:"id"`
	Type      AlertType     `json:"type"`
	Severity  AlertSeverity `json:"severity"`
	JobID     string        `json:"jobId"`
	JobNumber string        `json:"jobNumber"`
	Message   string        `json:"message"`
	// Timestamp is the SLA deadline instant, not the evaluation time.
	Timestamp time.Time `json:"timestamp"`

	Resolved   bool       `json:"resolved"`
	ResolvedBy string     `json:"resolvedBy,omitempty"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	Resolution string     `json:"resolution,omitempty"`
}

// AlertID builds the stable key for a derived alert.
func AlertID(t AlertType, jobID string) string {
	return string(t) + "-" + jobID
}

// Resolution records who closed an alert and why. Kept in a side store
// keyed by Alert.ID because derived alerts are recomputed on every job
// change and would otherwise lose their resolved state.
type Resolution struct {
	AlertID    string    `json:"alertId"`
	Type       AlertType `json:"type"`
	JobID      string    `json:"jobId"`
	ResolvedBy string    `json:"resolvedBy"`
	ResolvedAt time.Time `json:"resolvedAt"`
	Resolution string    `json:"resolution"`
}

// ManualAlert is a user-authored alert. Unlike derived alerts it is stored
// directly and follows an ordinary CRUD lifecycle.
type ManualAlert struct {
	ID       string        `json:"id"`
	JobID    string        `json:"jobId"`
	Type     string        `json:"type"`
	Message  string        `json:"message"`
	Severity AlertSeverity `json:"severity"`

	// Snapshot of the job at creation time.
	JobPriority JobPriority `json:"jobPriority"`
	JobStatus   JobStatus   `json:"jobStatus"`

	CreatedAt  time.Time  `json:"createdAt"`
	Resolved   bool       `json:"resolved"`
	ResolvedBy string     `json:"resolvedBy,omitempty"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	Resolution string     `json:"resolution,omitempty"`
}

// severityByType fixes the severity of each derived alert kind.
var severityByType = map[AlertType]AlertSeverity{
	AlertTypeAccepted:       AlertSeverityHigh,
	AlertTypeOnsite:         AlertSeverityHigh,
	AlertTypeCompleted:      AlertSeverityMedium,
	AlertTypeOverdue:        AlertSeverityHigh,
	AlertTypeEngineerAccept: AlertSeverityMedium,
	AlertTypeEngineerOnsite: AlertSeverityMedium,
}

// SeverityFor returns the fixed severity for a derived alert type.
func SeverityFor(t AlertType) AlertSeverity {
	if s, ok := severityByType[t]; ok {
		return s
	}
	return AlertSeverityLow
}
