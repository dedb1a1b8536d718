package dto

import (
	"time"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// SiteSummaryResponse represents the derived site aggregation.
type SiteSummaryResponse struct {
	Site          string    `json:"site"`
	Customer      string    `json:"customer"`
	TotalJobs     int       `json:"total_jobs"`
	ActiveJobs    int       `json:"active_jobs"`
	CompletedJobs int       `json:"completed_jobs"`
	CriticalJobs  int       `json:"critical_jobs"`
	UrgentJobs    int       `json:"urgent_jobs"`
	Engineers     []string  `json:"engineers"`
	LastJobDate   time.Time `json:"last_job_date"`
}

// EngineerResponse directory entry.
type EngineerResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Phone       string                `json:"phone"`
	Email       string                `json:"email"`
	Status      domain.EngineerStatus `json:"status"`
	IsOnHoliday bool                  `json:"is_on_holiday"`
	ShiftTiming string                `json:"shift_timing,omitempty"`
}

// CustomerResponse account entry.
type CustomerResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Sites []string `json:"sites"`
}
