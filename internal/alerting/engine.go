package alerting

import (
	"fmt"
	"sort"
	"time"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// Clock supplies the current instant. Injected so derivation stays
// deterministic under test.
type Clock func() time.Time

// Derive evaluates every job against the canonical alert rules and returns
// the raw (unresolved) alert list sorted by deadline, most recent first.
//
// The rules are evaluated independently: a single job may produce several
// alerts at once, and the OVERDUE rule deliberately double-fires alongside
// the SLA rules. The function is pure; resolution state is merged afterwards
// by the ResolutionStore.
func Derive(jobs []domain.Job, now time.Time) []domain.Alert {
	var alerts []domain.Alert
	for i := range jobs {
		alerts = append(alerts, deriveForJob(&jobs[i], now)...)
	}
	sort.SliceStable(alerts, func(a, b int) bool {
		return alerts[a].Timestamp.After(alerts[b].Timestamp)
	})
	return alerts
}

func deriveForJob(job *domain.Job, now time.Time) []domain.Alert {
	var alerts []domain.Alert

	// Accept SLA: measured from DateLogged. A zero window disables the rule.
	if job.DateAccepted == nil && job.SLA.AcceptMinutes > 0 {
		deadline := job.DateLogged.Add(minutes(job.SLA.AcceptMinutes))
		if now.After(deadline) {
			alerts = append(alerts, newAlert(job, domain.AlertTypeAccepted, deadline,
				fmt.Sprintf("Job %s breached its accept SLA of %d minutes", job.JobNumber, job.SLA.AcceptMinutes)))
		}
	}

	// Onsite SLA: measured from DateAccepted.
	if job.DateAccepted != nil && job.DateOnSite == nil && job.SLA.OnsiteMinutes > 0 {
		deadline := job.DateAccepted.Add(minutes(job.SLA.OnsiteMinutes))
		if now.After(deadline) {
			alerts = append(alerts, newAlert(job, domain.AlertTypeOnsite, deadline,
				fmt.Sprintf("Job %s breached its onsite SLA of %d minutes", job.JobNumber, job.SLA.OnsiteMinutes)))
		}
	}

	// Completion SLA: measured from DateOnSite.
	if job.DateOnSite != nil && job.DateCompleted == nil && job.SLA.CompletedMinutes > 0 {
		deadline := job.DateOnSite.Add(minutes(job.SLA.CompletedMinutes))
		if now.After(deadline) {
			alerts = append(alerts, newAlert(job, domain.AlertTypeCompleted, deadline,
				fmt.Sprintf("Job %s breached its completion SLA of %d minutes", job.JobNumber, job.SLA.CompletedMinutes)))
		}
	}

	// Generic overdue: status-derived, not time-derived. May fire alongside
	// the SLA rules above; never deduplicated.
	if job.Status == domain.JobStatusRed && job.DateCompleted == nil {
		alerts = append(alerts, newAlert(job, domain.AlertTypeOverdue, job.DateLogged,
			fmt.Sprintf("Job %s is flagged overdue", job.JobNumber)))
	}

	// Engineer action required: live alerts, auto-resolved the moment the
	// firing condition lapses.
	if job.Status == domain.JobStatusAllocated && job.DateAccepted == nil {
		alerts = append(alerts, newAlert(job, domain.AlertTypeEngineerAccept, job.DateLogged,
			fmt.Sprintf("Engineer has not accepted job %s", job.JobNumber)))
	}
	if job.DateAccepted != nil && job.DateOnSite == nil && job.Status != domain.JobStatusCompleted {
		alerts = append(alerts, newAlert(job, domain.AlertTypeEngineerOnsite, *job.DateAccepted,
			fmt.Sprintf("Engineer has not arrived on site for job %s", job.JobNumber)))
	}

	return alerts
}

func newAlert(job *domain.Job, t domain.AlertType, deadline time.Time, message string) domain.Alert {
	return domain.Alert{
		ID:        domain.AlertID(t, job.ID),
		Type:      t,
		Severity:  domain.SeverityFor(t),
		JobID:     job.ID,
		JobNumber: job.JobNumber,
		Message:   message,
		Timestamp: deadline,
	}
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
