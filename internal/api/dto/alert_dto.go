package dto

import (
	"time"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// AlertResponse represents a derived alert.
type AlertResponse struct {
	ID         string               `json:"id"`
	Type       domain.AlertType     `json:"type"`
	Severity   domain.AlertSeverity `json:"severity"`
	JobID      string               `json:"job_id"`
	JobNumber  string               `json:"job_number"`
	Message    string               `json:"message"`
	Timestamp  time.Time            `json:"timestamp"`
	Resolved   bool                 `json:"resolved"`
	ResolvedBy string               `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time           `json:"resolved_at,omitempty"`
	Resolution string               `json:"resolution,omitempty"`

	// Display enrichment from the engineer directory; not part of alert logic.
	EngineerPhone string `json:"engineer_phone,omitempty"`
	EngineerEmail string `json:"engineer_email,omitempty"`
}

// CreateAlertRequest payload for manual alerts.
type CreateAlertRequest struct {
	JobID    string               `json:"job_id"`
	Type     string               `json:"type"`
	Message  string               `json:"message"`
	Severity domain.AlertSeverity `json:"severity"`
}

// ResolveAlertRequest payload.
type ResolveAlertRequest struct {
	ResolvedBy string `json:"resolved_by"`
	Resolution string `json:"resolution"`
}

// ManualAlertResponse represents a stored user-authored alert.
type ManualAlertResponse struct {
	ID          string               `json:"id"`
	JobID       string               `json:"job_id"`
	Type        string               `json:"type"`
	Message     string               `json:"message"`
	Severity    domain.AlertSeverity `json:"severity"`
	JobPriority domain.JobPriority   `json:"job_priority"`
	JobStatus   domain.JobStatus     `json:"job_status"`
	CreatedAt   time.Time            `json:"created_at"`
	Resolved    bool                 `json:"resolved"`
	ResolvedBy  string               `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time           `json:"resolved_at,omitempty"`
	Resolution  string               `json:"resolution,omitempty"`
}

// ResolutionResponse represents a historical resolution record.
type ResolutionResponse struct {
	AlertID    string           `json:"alert_id"`
	Type       domain.AlertType `json:"type"`
	JobID      string           `json:"job_id"`
	ResolvedBy string           `json:"resolved_by"`
	ResolvedAt time.Time        `json:"resolved_at"`
	Resolution string           `json:"resolution"`
}
