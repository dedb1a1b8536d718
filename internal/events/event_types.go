package events

import (
	"time"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventJobCreated         EventType = "job_created"
	EventJobUpdated         EventType = "job_updated"
	EventAlertResolved      EventType = "alert_resolved"
	EventAlertAutoResolved  EventType = "alert_auto_resolved"
	EventManualAlertCreated EventType = "manual_alert_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	JobID     string      `json:"job_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// JobCreatedPayload payload.
type JobCreatedPayload struct {
	JobNumber string             `json:"job_number"`
	Priority  domain.JobPriority `json:"priority"`
	Customer  string             `json:"customer"`
	Site      string             `json:"site"`
}

// JobUpdatedPayload payload.
type JobUpdatedPayload struct {
	JobNumber string           `json:"job_number"`
	OldStatus domain.JobStatus `json:"old_status"`
	NewStatus domain.JobStatus `json:"new_status"`
}

// AlertResolvedPayload payload.
type AlertResolvedPayload struct {
	AlertID    string           `json:"alert_id"`
	AlertType  domain.AlertType `json:"alert_type"`
	ResolvedBy string           `json:"resolved_by"`
}

// ManualAlertCreatedPayload payload.
type ManualAlertCreatedPayload struct {
	AlertID  string               `json:"alert_id"`
	Type     string               `json:"type"`
	Severity domain.AlertSeverity `json:"severity"`
}
