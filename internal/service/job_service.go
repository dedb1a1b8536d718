package service

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/fieldops-service/internal/alerting"
	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/events"
	"github.com/spec-kit/fieldops-service/internal/seed"
	"github.com/spec-kit/fieldops-service/internal/store"
	apperrors "github.com/spec-kit/fieldops-service/pkg/util/errorutil"
)

// JobService coordinates job lifecycle workflows.
type JobService struct {
	jobs       *store.JobStore
	engineers  *store.EngineerDirectory
	customers  *store.CustomerDirectory
	dispatcher events.Dispatcher
	clock      alerting.Clock
	defaultSLA domain.SLAConfig
	rnd        *rand.Rand
}

// JobDependencies bundles collaborators for the job service.
type JobDependencies struct {
	Jobs       *store.JobStore
	Engineers  *store.EngineerDirectory
	Customers  *store.CustomerDirectory
	Dispatcher events.Dispatcher
	Clock      alerting.Clock
	DefaultSLA domain.SLAConfig
	Random     *rand.Rand
}

// JobCreateInput describes job creation payload.
type JobCreateInput struct {
	JobNumber       string
	Priority        domain.JobPriority
	CustomerID      string
	Customer        string
	Site            string
	EngineerID      string
	Engineer        string
	TicketReference string
	Description     string
	SLA             domain.SLAConfig
}

// JobFilter describes listing filters.
type JobFilter struct {
	Status          *domain.JobStatus
	Priority        *domain.JobPriority
	Site            string
	Customer        string
	Engineer        string
	TicketReference string
}

// NewJobService constructs the service.
func NewJobService(deps JobDependencies) *JobService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	rnd := deps.Random
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &JobService{
		jobs:       deps.Jobs,
		engineers:  deps.Engineers,
		customers:  deps.Customers,
		dispatcher: deps.Dispatcher,
		clock:      clock,
		defaultSLA: deps.DefaultSLA,
		rnd:        rnd,
	}
}

// CreateJob validates and stores a new job.
func (s *JobService) CreateJob(ctx context.Context, input JobCreateInput) (*domain.Job, error) {
	customer, err := s.resolveCustomer(input.CustomerID, input.Customer)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Site) == "" {
		return nil, apperrors.NewValidationError("site required", nil)
	}

	job := domain.Job{
		ID:              uuid.NewString(),
		JobNumber:       strings.TrimSpace(input.JobNumber),
		Status:          domain.JobStatusNew,
		Priority:        input.Priority,
		DateLogged:      s.clock(),
		SLA:             input.SLA,
		CustomerID:      customer.ID,
		Customer:        customer.Name,
		Site:            strings.TrimSpace(input.Site),
		TicketReference: strings.TrimSpace(input.TicketReference),
		Description:     strings.TrimSpace(input.Description),
	}
	if job.JobNumber == "" {
		job.JobNumber = seed.JobNumber(s.rnd)
	}
	if job.Priority == "" {
		job.Priority = domain.JobPriorityMedium
	}
	if job.SLA == (domain.SLAConfig{}) {
		job.SLA = s.defaultSLA
	}

	if input.EngineerID != "" || input.Engineer != "" {
		engineer, err := s.resolveEngineer(input.EngineerID, input.Engineer)
		if err != nil {
			return nil, err
		}
		job.EngineerID = engineer.ID
		job.Engineer = engineer.Name
		job.Status = domain.JobStatusAllocated
	}

	if err := s.jobs.AddJob(ctx, job); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:  events.EventJobCreated,
		JobID: job.ID,
		Payload: events.JobCreatedPayload{
			JobNumber: job.JobNumber,
			Priority:  job.Priority,
			Customer:  job.Customer,
			Site:      job.Site,
		},
	})
	return &job, nil
}

// UpdateJob replaces a stored job with the supplied full value.
func (s *JobService) UpdateJob(ctx context.Context, updated domain.Job) (*domain.Job, error) {
	existing, ok := s.jobs.GetJobByID(updated.ID)
	if !ok {
		return nil, apperrors.NewNotFound("Job", map[string]any{"job_id": updated.ID})
	}
	if err := validateLifecycle(&updated); err != nil {
		return nil, err
	}
	if err := s.jobs.UpdateJob(ctx, updated); err != nil {
		return nil, s.mapStoreErr(err, updated.ID)
	}
	s.publishUpdated(ctx, existing, &updated)
	return &updated, nil
}

// AcceptJob records engineer acceptance. The status stays allocated; the
// timestamp alone drives the SLA rules.
func (s *JobService) AcceptJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.advance(ctx, id, func(job *domain.Job, now time.Time) error {
		if job.DateAccepted != nil {
			return apperrors.NewConflict("job already accepted", nil)
		}
		job.DateAccepted = &now
		return nil
	})
}

// OnsiteJob records engineer arrival and marks the job attended.
func (s *JobService) OnsiteJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.advance(ctx, id, func(job *domain.Job, now time.Time) error {
		if job.DateAccepted == nil {
			return apperrors.NewConflict("job not yet accepted", nil)
		}
		if job.DateOnSite != nil {
			return apperrors.NewConflict("job already onsite", nil)
		}
		job.DateOnSite = &now
		job.Status = domain.JobStatusAttended
		return nil
	})
}

// CompleteJob records completion and closes the lifecycle.
func (s *JobService) CompleteJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.advance(ctx, id, func(job *domain.Job, now time.Time) error {
		if job.DateOnSite == nil {
			return apperrors.NewConflict("job not yet onsite", nil)
		}
		if job.DateCompleted != nil {
			return apperrors.NewConflict("job already completed", nil)
		}
		job.DateCompleted = &now
		job.Status = domain.JobStatusCompleted
		return nil
	})
}

// GetJob returns a job by id or job number (dual-key lookup).
func (s *JobService) GetJob(id string) (*domain.Job, error) {
	job, ok := s.jobs.GetJobByID(id)
	if !ok {
		return nil, apperrors.NewNotFound("Job", map[string]any{"job_id": id})
	}
	return job, nil
}

// ListJobs returns the current collection filtered in memory. A ticket
// reference narrows the source set; the remaining filters still apply.
func (s *JobService) ListJobs(filter JobFilter) []domain.Job {
	source := s.jobs.Jobs()
	if filter.TicketReference != "" {
		source = s.jobs.GetJobsByTicketReference(filter.TicketReference)
	}
	var out []domain.Job
	for _, job := range source {
		if filter.Status != nil && job.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && job.Priority != *filter.Priority {
			continue
		}
		if filter.Site != "" && !strings.EqualFold(job.Site, filter.Site) {
			continue
		}
		if filter.Customer != "" && !strings.EqualFold(job.Customer, filter.Customer) && job.CustomerID != filter.Customer {
			continue
		}
		if filter.Engineer != "" && !strings.EqualFold(job.Engineer, filter.Engineer) && job.EngineerID != filter.Engineer {
			continue
		}
		out = append(out, job)
	}
	return out
}

func (s *JobService) advance(ctx context.Context, id string, mutate func(*domain.Job, time.Time) error) (*domain.Job, error) {
	job, ok := s.jobs.GetJobByID(id)
	if !ok {
		return nil, apperrors.NewNotFound("Job", map[string]any{"job_id": id})
	}
	before := *job
	if err := mutate(job, s.clock()); err != nil {
		return nil, err
	}
	if err := s.jobs.UpdateJob(ctx, *job); err != nil {
		return nil, s.mapStoreErr(err, job.ID)
	}
	s.publishUpdated(ctx, &before, job)
	return job, nil
}

func (s *JobService) resolveCustomer(id, name string) (*domain.Customer, error) {
	if id != "" {
		if customer, ok := s.customers.GetByID(id); ok {
			return customer, nil
		}
		return nil, apperrors.NewNotFound("Customer", map[string]any{"customer_id": id})
	}
	if name != "" {
		if customer, ok := s.customers.GetByName(name); ok {
			return customer, nil
		}
		return nil, apperrors.NewNotFound("Customer", map[string]any{"customer": name})
	}
	return nil, apperrors.NewValidationError("customer required", nil)
}

func (s *JobService) resolveEngineer(id, name string) (*domain.Engineer, error) {
	if id != "" {
		if engineer, ok := s.engineers.GetByID(id); ok {
			return engineer, nil
		}
		return nil, apperrors.NewNotFound("Engineer", map[string]any{"engineer_id": id})
	}
	if engineer, ok := s.engineers.GetByName(name); ok {
		return engineer, nil
	}
	return nil, apperrors.NewNotFound("Engineer", map[string]any{"engineer": name})
}

func (s *JobService) publishUpdated(ctx context.Context, before, after *domain.Job) {
	s.publish(ctx, events.Event{
		Type:  events.EventJobUpdated,
		JobID: after.ID,
		Payload: events.JobUpdatedPayload{
			JobNumber: after.JobNumber,
			OldStatus: before.Status,
			NewStatus: after.Status,
		},
	})
}

func (s *JobService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = s.clock()
	_ = s.dispatcher.Publish(ctx, event)
}

func (s *JobService) mapStoreErr(err error, jobID string) error {
	if err == store.ErrJobNotFound {
		return apperrors.NewNotFound("Job", map[string]any{"job_id": jobID})
	}
	return err
}

// validateLifecycle enforces monotonic ordering of lifecycle timestamps.
func validateLifecycle(job *domain.Job) error {
	prev := job.DateLogged
	for _, step := range []struct {
		name string
		at   *time.Time
	}{
		{"dateAccepted", job.DateAccepted},
		{"dateOnSite", job.DateOnSite},
		{"dateCompleted", job.DateCompleted},
	} {
		if step.at == nil {
			continue
		}
		if step.at.Before(prev) {
			return apperrors.NewValidationError("lifecycle timestamps out of order", map[string]any{"field": step.name})
		}
		prev = *step.at
	}
	return nil
}
