package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/store"
)

func siteJob(id, site string, status domain.JobStatus) domain.Job {
	return domain.Job{
		ID:         id,
		JobNumber:  "C00" + id,
		Status:     status,
		Priority:   domain.JobPriorityMedium,
		DateLogged: base,
		Customer:   "Northfield Retail",
		Site:       site,
	}
}

func newSiteFixture(t *testing.T, jobs ...domain.Job) *SiteService {
	t.Helper()
	jobStore := store.NewJobStore(noopSnapshot{}, zap.NewNop())
	jobStore.Load(context.Background(), func() []domain.Job { return jobs })
	return NewSiteService(jobStore)
}

func TestSiteAggregationCounts(t *testing.T) {
	svc := newSiteFixture(t,
		siteJob("1", "Alpha", domain.JobStatusNew),
		siteJob("2", "Alpha", domain.JobStatusCompleted),
		siteJob("3", "Alpha", domain.JobStatusRed),
	)

	summary, err := svc.Summary("Alpha")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.TotalJobs != 3 {
		t.Errorf("totalJobs = %d, want 3", summary.TotalJobs)
	}
	if summary.ActiveJobs != 2 {
		t.Errorf("activeJobs = %d, want 2", summary.ActiveJobs)
	}
	if summary.CompletedJobs != 1 {
		t.Errorf("completedJobs = %d, want 1", summary.CompletedJobs)
	}
	if summary.UrgentJobs != 1 {
		t.Errorf("urgentJobs = %d, want 1", summary.UrgentJobs)
	}
}

func TestSiteAggregationLegacyGreenCountsCompleted(t *testing.T) {
	svc := newSiteFixture(t,
		siteJob("1", "Alpha", domain.JobStatusGreen),
		siteJob("2", "Alpha", domain.JobStatusCosted),
		siteJob("3", "Alpha", domain.JobStatusReqsInvoice),
		siteJob("4", "Alpha", domain.JobStatusAmber),
	)

	summary, err := svc.Summary("Alpha")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.CompletedJobs != 3 {
		t.Errorf("completedJobs = %d, want 3", summary.CompletedJobs)
	}
	if summary.ActiveJobs != 1 {
		t.Errorf("activeJobs = %d, want 1", summary.ActiveJobs)
	}
}

func TestSiteAggregationEngineersAndLastJob(t *testing.T) {
	j1 := siteJob("1", "Alpha", domain.JobStatusAllocated)
	j1.Engineer = "Dave Thompson"
	j1.Priority = domain.JobPriorityCritical
	j2 := siteJob("2", "Alpha", domain.JobStatusAttended)
	j2.Engineer = "Dave Thompson"
	j2.DateLogged = base.Add(2 * time.Hour)
	j3 := siteJob("3", "Alpha", domain.JobStatusAllocated)
	j3.Engineer = "Priya Nair"

	svc := newSiteFixture(t, j1, j2, j3)
	summary, err := svc.Summary("Alpha")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(summary.Engineers) != 2 {
		t.Errorf("engineers = %v, want deduplicated pair", summary.Engineers)
	}
	if summary.CriticalJobs != 1 {
		t.Errorf("criticalJobs = %d, want 1", summary.CriticalJobs)
	}
	if !summary.LastJobDate.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("lastJobDate = %v, want %v", summary.LastJobDate, base.Add(2*time.Hour))
	}
}

func TestSiteSummaryCaseInsensitive(t *testing.T) {
	svc := newSiteFixture(t, siteJob("1", "Leeds Central", domain.JobStatusNew))

	if _, err := svc.Summary("leeds central"); err != nil {
		t.Fatalf("case-insensitive site lookup failed: %v", err)
	}
	if _, err := svc.Summary("Nowhere"); err == nil {
		t.Fatal("unknown site returned a summary")
	}
}

func TestSummariesSortedBySite(t *testing.T) {
	svc := newSiteFixture(t,
		siteJob("1", "Zeta", domain.JobStatusNew),
		siteJob("2", "Alpha", domain.JobStatusNew),
	)

	summaries := svc.Summaries()
	if len(summaries) != 2 || summaries[0].Site != "Alpha" {
		t.Fatalf("summaries not sorted by site: %+v", summaries)
	}
}
