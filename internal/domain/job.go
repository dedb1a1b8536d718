package domain

import "time"

// JobStatus enumerates workflow states for field-service jobs. The legacy
// tri-state values (green/amber/red) predate the workflow statuses and still
// appear in persisted data and dashboard views.
type JobStatus string

const (
	JobStatusNew           JobStatus = "new"
	JobStatusAllocated     JobStatus = "allocated"
	JobStatusAttended      JobStatus = "attended"
	JobStatusAwaitingParts JobStatus = "awaiting_parts"
	JobStatusPartsToFit    JobStatus = "parts_to_fit"
	JobStatusCompleted     JobStatus = "completed"
	JobStatusCosted        JobStatus = "costed"
	JobStatusReqsInvoice   JobStatus = "reqs_invoice"

	// Legacy tri-state statuses.
	JobStatusGreen JobStatus = "green"
	JobStatusAmber JobStatus = "amber"
	JobStatusRed   JobStatus = "red"
)

// JobPriority enumerates commercial urgency.
type JobPriority string

const (
	JobPriorityCritical JobPriority = "Critical"
	JobPriorityHigh     JobPriority = "High"
	JobPriorityMedium   JobPriority = "Medium"
	JobPriorityLow      JobPriority = "Low"
)

// completedLike holds the statuses treated as finished for aggregation
// purposes. green is the legacy equivalent of completed.
var completedLike = map[JobStatus]struct{}{
	JobStatusGreen:       {},
	JobStatusCompleted:   {},
	JobStatusCosted:      {},
	JobStatusReqsInvoice: {},
}

// IsCompletedLike reports whether the status counts as finished work.
func (s JobStatus) IsCompletedLike() bool {
	_, ok := completedLike[s]
	return ok
}

// SLAConfig holds per-job SLA windows in minutes. Each window is measured
// from the previous lifecycle timestamp, except Accept which is measured
// from DateLogged. A zero or negative window disables that rule for the job.
type SLAConfig struct {
	AcceptMinutes    int `json:"acceptSLA"`
	OnsiteMinutes    int `json:"onsiteSLA"`
	CompletedMinutes int `json:"completedSLA"`
}

// Job is the aggregate for a unit of field-service work. Lifecycle
// timestamps are monotonic whenever set:
// DateLogged <= DateAccepted <= DateOnSite <= DateCompleted.
type Job struct {
	ID        string `json:"id"`
	JobNumber string `json:"jobNumber"`

	Status   JobStatus   `json:"status"`
	Priority JobPriority `json:"priority"`

	DateLogged    time.Time  `json:"dateLogged"`
	DateAccepted  *time.Time `json:"dateAccepted,omitempty"`
	DateOnSite    *time.Time `json:"dateOnSite,omitempty"`
	DateCompleted *time.Time `json:"dateCompleted,omitempty"`

	SLA SLAConfig `json:"customAlerts"`

	// Relationships carry a stable id plus a denormalized display name.
	// Name-based lookup survives only as a compatibility shim on the
	// directories.
	CustomerID string `json:"customerId,omitempty"`
	Customer   string `json:"customer"`
	Site       string `json:"site"`
	EngineerID string `json:"engineerId,omitempty"`
	Engineer   string `json:"engineer,omitempty"`

	TicketReference string `json:"ticketReference,omitempty"`
	Description     string `json:"description,omitempty"`
}
