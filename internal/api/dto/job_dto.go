package dto

import (
	"time"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// SLAConfigPayload carries per-job SLA windows in minutes.
type SLAConfigPayload struct {
	AcceptMinutes    int `json:"accept_minutes"`
	OnsiteMinutes    int `json:"onsite_minutes"`
	CompletedMinutes int `json:"completed_minutes"`
}

// CreateJobRequest payload.
type CreateJobRequest struct {
	JobNumber       string             `json:"job_number"`
	Priority        domain.JobPriority `json:"priority"`
	CustomerID      string             `json:"customer_id"`
	Customer        string             `json:"customer"`
	Site            string             `json:"site"`
	EngineerID      string             `json:"engineer_id"`
	Engineer        string             `json:"engineer"`
	TicketReference string             `json:"ticket_reference"`
	Description     string             `json:"description"`
	SLA             *SLAConfigPayload  `json:"sla"`
}

// UpdateJobRequest is a full replacement value; there is no partial update.
type UpdateJobRequest struct {
	JobNumber       string             `json:"job_number"`
	Status          domain.JobStatus   `json:"status"`
	Priority        domain.JobPriority `json:"priority"`
	DateLogged      time.Time          `json:"date_logged"`
	DateAccepted    *time.Time         `json:"date_accepted"`
	DateOnSite      *time.Time         `json:"date_on_site"`
	DateCompleted   *time.Time         `json:"date_completed"`
	CustomerID      string             `json:"customer_id"`
	Customer        string             `json:"customer"`
	Site            string             `json:"site"`
	EngineerID      string             `json:"engineer_id"`
	Engineer        string             `json:"engineer"`
	TicketReference string             `json:"ticket_reference"`
	Description     string             `json:"description"`
	SLA             *SLAConfigPayload  `json:"sla"`
}

// JobResponse response.
type JobResponse struct {
	ID              string             `json:"id"`
	JobNumber       string             `json:"job_number"`
	Status          domain.JobStatus   `json:"status"`
	Priority        domain.JobPriority `json:"priority"`
	DateLogged      time.Time          `json:"date_logged"`
	DateAccepted    *time.Time         `json:"date_accepted,omitempty"`
	DateOnSite      *time.Time         `json:"date_on_site,omitempty"`
	DateCompleted   *time.Time         `json:"date_completed,omitempty"`
	CustomerID      string             `json:"customer_id"`
	Customer        string             `json:"customer"`
	Site            string             `json:"site"`
	EngineerID      string             `json:"engineer_id,omitempty"`
	Engineer        string             `json:"engineer,omitempty"`
	TicketReference string             `json:"ticket_reference,omitempty"`
	Description     string             `json:"description,omitempty"`
	SLA             SLAConfigPayload   `json:"sla"`
}
