package domain

import "time"

// SiteSummary is a derived aggregation of jobs sharing a site string.
// It is recomputed from the job collection on demand and never persisted.
type SiteSummary struct {
	Site          string    `json:"site"`
	Customer      string    `json:"customer"`
	TotalJobs     int       `json:"totalJobs"`
	ActiveJobs    int       `json:"activeJobs"`
	CompletedJobs int       `json:"completedJobs"`
	CriticalJobs  int       `json:"criticalJobs"`
	UrgentJobs    int       `json:"urgentJobs"`
	Engineers     []string  `json:"engineers"`
	LastJobDate   time.Time `json:"lastJobDate"`
}
