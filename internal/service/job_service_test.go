package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/seed"
	"github.com/spec-kit/fieldops-service/internal/store"
	apperrors "github.com/spec-kit/fieldops-service/pkg/util/errorutil"
)

func newJobFixture(t *testing.T, jobs ...domain.Job) (*JobService, *store.JobStore) {
	t.Helper()
	jobStore := store.NewJobStore(noopSnapshot{}, zap.NewNop())
	jobStore.Load(context.Background(), func() []domain.Job { return jobs })
	svc := NewJobService(JobDependencies{
		Jobs:      jobStore,
		Engineers: store.NewEngineerDirectory(seed.Engineers()),
		Customers: store.NewCustomerDirectory(seed.Customers()),
		Clock:     func() time.Time { return base.Add(time.Hour) },
	})
	return svc, jobStore
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != code {
		t.Fatalf("err = %v, want %s", err, code)
	}
}

func TestUpdateJobRejectsOutOfOrderTimestamps(t *testing.T) {
	ctx := context.Background()
	svc, _ := newJobFixture(t, allocatedJob("11111"))

	updated := allocatedJob("11111")
	beforeLogged := base.Add(-time.Minute)
	updated.DateAccepted = &beforeLogged
	_, err := svc.UpdateJob(ctx, updated)
	assertErrorCode(t, err, "VALIDATION_FAILED")

	// Completion before arrival is equally out of order.
	updated = allocatedJob("11111")
	accepted := base.Add(10 * time.Minute)
	onsite := base.Add(30 * time.Minute)
	completed := base.Add(20 * time.Minute)
	updated.DateAccepted = &accepted
	updated.DateOnSite = &onsite
	updated.DateCompleted = &completed
	_, err = svc.UpdateJob(ctx, updated)
	assertErrorCode(t, err, "VALIDATION_FAILED")
}

func TestUpdateJobComparesAgainstLastSetTimestamp(t *testing.T) {
	ctx := context.Background()
	svc, _ := newJobFixture(t, allocatedJob("22222"))

	// DateAccepted unset: DateOnSite is checked against DateLogged only.
	updated := allocatedJob("22222")
	onsite := base.Add(45 * time.Minute)
	updated.DateOnSite = &onsite
	if _, err := svc.UpdateJob(ctx, updated); err != nil {
		t.Fatalf("onsite without accepted should pass the ordering check: %v", err)
	}

	updated = allocatedJob("22222")
	beforeLogged := base.Add(-time.Minute)
	updated.DateOnSite = &beforeLogged
	_, err := svc.UpdateJob(ctx, updated)
	assertErrorCode(t, err, "VALIDATION_FAILED")
}

func TestUpdateJobUnknownIDNotFound(t *testing.T) {
	svc, _ := newJobFixture(t, allocatedJob("33333"))

	_, err := svc.UpdateJob(context.Background(), allocatedJob("missing"))
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestAcceptJobTransition(t *testing.T) {
	ctx := context.Background()
	svc, _ := newJobFixture(t, allocatedJob("44444"))

	job, err := svc.AcceptJob(ctx, "44444")
	if err != nil {
		t.Fatalf("AcceptJob: %v", err)
	}
	if job.DateAccepted == nil || !job.DateAccepted.Equal(base.Add(time.Hour)) {
		t.Errorf("dateAccepted = %v, want clock instant", job.DateAccepted)
	}
	if job.Status != domain.JobStatusAllocated {
		t.Errorf("status = %q, acceptance must not change it", job.Status)
	}

	_, err = svc.AcceptJob(ctx, "44444")
	assertErrorCode(t, err, "CONFLICT")
}

func TestOnsiteJobRequiresAcceptance(t *testing.T) {
	ctx := context.Background()
	svc, _ := newJobFixture(t, allocatedJob("55555"))

	_, err := svc.OnsiteJob(ctx, "55555")
	assertErrorCode(t, err, "CONFLICT")

	if _, err := svc.AcceptJob(ctx, "55555"); err != nil {
		t.Fatalf("AcceptJob: %v", err)
	}
	job, err := svc.OnsiteJob(ctx, "55555")
	if err != nil {
		t.Fatalf("OnsiteJob: %v", err)
	}
	if job.Status != domain.JobStatusAttended {
		t.Errorf("status = %q, want attended", job.Status)
	}
	if job.DateOnSite == nil {
		t.Error("dateOnSite not set")
	}

	_, err = svc.OnsiteJob(ctx, "55555")
	assertErrorCode(t, err, "CONFLICT")
}

func TestCompleteJobRequiresOnsite(t *testing.T) {
	ctx := context.Background()
	svc, _ := newJobFixture(t, allocatedJob("66666"))

	_, err := svc.CompleteJob(ctx, "66666")
	assertErrorCode(t, err, "CONFLICT")

	if _, err := svc.AcceptJob(ctx, "66666"); err != nil {
		t.Fatalf("AcceptJob: %v", err)
	}
	if _, err := svc.OnsiteJob(ctx, "66666"); err != nil {
		t.Fatalf("OnsiteJob: %v", err)
	}
	job, err := svc.CompleteJob(ctx, "66666")
	if err != nil {
		t.Fatalf("CompleteJob: %v", err)
	}
	if job.Status != domain.JobStatusCompleted || job.DateCompleted == nil {
		t.Errorf("completion not recorded: %+v", job)
	}

	_, err = svc.CompleteJob(ctx, "66666")
	assertErrorCode(t, err, "CONFLICT")
}

func TestListJobsTicketReferenceCombinesFilters(t *testing.T) {
	j1 := allocatedJob("77777")
	j1.TicketReference = "TKT-0042"
	j2 := allocatedJob("88888")
	j2.TicketReference = "TKT-0042"
	j2.Status = domain.JobStatusCompleted
	j3 := allocatedJob("99999")
	svc, _ := newJobFixture(t, j1, j2, j3)

	completed := domain.JobStatusCompleted
	jobs := svc.ListJobs(JobFilter{TicketReference: "tkt-0042", Status: &completed})
	if len(jobs) != 1 || jobs[0].ID != "88888" {
		t.Fatalf("status filter not applied to ticket-reference set: %+v", jobs)
	}

	jobs = svc.ListJobs(JobFilter{TicketReference: "TKT-0042"})
	if len(jobs) != 2 {
		t.Fatalf("expected 2 linked jobs, got %d", len(jobs))
	}
}
