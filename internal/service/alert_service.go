package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/fieldops-service/internal/alerting"
	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/events"
	"github.com/spec-kit/fieldops-service/internal/observability"
	"github.com/spec-kit/fieldops-service/internal/repository"
	"github.com/spec-kit/fieldops-service/internal/store"
	apperrors "github.com/spec-kit/fieldops-service/pkg/util/errorutil"
)

// Fixed resolution strings written by the auto-resolver.
const (
	resolutionEngineerAccepted = "Engineer accepted the job"
	resolutionEngineerOnsite   = "Engineer arrived on site"
	systemResolver             = "System"
)

// AlertService is the single consumer-facing surface for alert derivation.
// Every view calls it; the rules are never re-derived inline elsewhere.
type AlertService struct {
	jobs        *store.JobStore
	resolutions *alerting.ResolutionStore
	manual      repository.ManualAlertRepository
	dispatcher  events.Dispatcher
	clock       alerting.Clock
	metrics     *observability.Metrics
	logger      *zap.Logger

	// liveAlerts tracks the engineer-action alert ids seen on the previous
	// derivation pass, so a pass can detect which conditions have lapsed.
	mu         sync.Mutex
	liveAlerts map[string]domain.AlertType
}

// AlertDependencies bundles collaborators for the alert service.
type AlertDependencies struct {
	Jobs        *store.JobStore
	Resolutions *alerting.ResolutionStore
	ManualRepo  repository.ManualAlertRepository
	Dispatcher  events.Dispatcher
	Clock       alerting.Clock
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// AlertFilter narrows the alert listing.
type AlertFilter struct {
	Type     *domain.AlertType
	Severity *domain.AlertSeverity
	Resolved *bool
}

// ManualAlertInput describes user-authored alert creation.
type ManualAlertInput struct {
	JobID    string
	Type     string
	Message  string
	Severity domain.AlertSeverity
}

// NewAlertService constructs the service.
func NewAlertService(deps AlertDependencies) *AlertService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &AlertService{
		jobs:        deps.Jobs,
		resolutions: deps.Resolutions,
		manual:      deps.ManualRepo,
		dispatcher:  deps.Dispatcher,
		clock:       clock,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		liveAlerts:  make(map[string]domain.AlertType),
	}
}

// RegisterHandlers subscribes re-evaluation to job store changes. Auto
// resolution is event-driven, never timer-driven.
func (s *AlertService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventJobCreated, s.handleJobChange)
	s.dispatcher.Subscribe(events.EventJobUpdated, s.handleJobChange)
}

func (s *AlertService) handleJobChange(ctx context.Context, _ events.Event) error {
	s.Reevaluate(ctx)
	return nil
}

// Alerts returns the combined alert view: derived alerts with resolution
// state merged in, plus stored manual alerts. The filter applies uniformly
// to both kinds and the list is sorted by timestamp descending.
func (s *AlertService) Alerts(ctx context.Context, filter AlertFilter) ([]domain.Alert, error) {
	raw := alerting.Derive(s.jobs.Jobs(), s.clock())
	merged := s.resolutions.Merge(raw)

	manual, err := s.manual.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range manual {
		merged = append(merged, s.manualAsAlert(&manual[i]))
	}
	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].Timestamp.After(merged[b].Timestamp)
	})

	s.recordMetrics(merged)

	var out []domain.Alert
	for _, alert := range merged {
		if filter.Type != nil && alert.Type != *filter.Type {
			continue
		}
		if filter.Severity != nil && alert.Severity != *filter.Severity {
			continue
		}
		if filter.Resolved != nil && alert.Resolved != *filter.Resolved {
			continue
		}
		out = append(out, alert)
	}
	return out, nil
}

// manualAsAlert projects a stored manual alert onto the common alert shape.
// The timestamp is the creation instant; manual alerts have no deadline.
func (s *AlertService) manualAsAlert(m *domain.ManualAlert) domain.Alert {
	alert := domain.Alert{
		ID:         m.ID,
		Type:       domain.AlertType(m.Type),
		Severity:   m.Severity,
		JobID:      m.JobID,
		Message:    m.Message,
		Timestamp:  m.CreatedAt,
		Resolved:   m.Resolved,
		ResolvedBy: m.ResolvedBy,
		ResolvedAt: m.ResolvedAt,
		Resolution: m.Resolution,
	}
	if job, ok := s.jobs.GetJobByID(m.JobID); ok {
		alert.JobNumber = job.JobNumber
	}
	return alert
}

// History returns resolution records, including those whose alert condition
// no longer holds.
func (s *AlertService) History() []domain.Resolution {
	return s.resolutions.Records()
}

// ResolvedAlert carries the outcome of a resolve action; exactly one of the
// two fields is set depending on whether the id named a derived or a manual
// alert.
type ResolvedAlert struct {
	Derived *domain.Alert
	Manual  *domain.ManualAlert
}

// ResolveAlert marks a derived or manual alert resolved. Derived alert ids
// have the form TYPE-jobID; anything else is treated as a manual alert id.
func (s *AlertService) ResolveAlert(ctx context.Context, alertID, resolvedBy, resolution string) (*ResolvedAlert, error) {
	raw := alerting.Derive(s.jobs.Jobs(), s.clock())
	for _, alert := range raw {
		if alert.ID != alertID {
			continue
		}
		if _, already := s.resolutions.Get(alertID); already {
			return nil, apperrors.NewConflict("alert already resolved", nil)
		}
		now := s.clock()
		s.resolutions.Resolve(ctx, domain.Resolution{
			AlertID:    alertID,
			Type:       alert.Type,
			JobID:      alert.JobID,
			ResolvedBy: resolvedBy,
			ResolvedAt: now,
			Resolution: resolution,
		})
		resolved := alert
		resolved.Resolved = true
		resolved.ResolvedBy = resolvedBy
		resolved.ResolvedAt = &now
		resolved.Resolution = resolution

		s.publish(ctx, events.Event{
			Type:  events.EventAlertResolved,
			JobID: alert.JobID,
			Payload: events.AlertResolvedPayload{
				AlertID:    alertID,
				AlertType:  alert.Type,
				ResolvedBy: resolvedBy,
			},
		})
		return &ResolvedAlert{Derived: &resolved}, nil
	}

	manual, err := s.resolveManual(ctx, alertID, resolvedBy, resolution)
	if err != nil {
		return nil, err
	}
	return &ResolvedAlert{Manual: manual}, nil
}

// CreateManualAlert stores a user-authored alert. JobID, Type and a
// non-empty Message are required; the job's priority and status are
// snapshotted at creation time.
func (s *AlertService) CreateManualAlert(ctx context.Context, input ManualAlertInput) (*domain.ManualAlert, error) {
	if strings.TrimSpace(input.JobID) == "" || strings.TrimSpace(input.Type) == "" || strings.TrimSpace(input.Message) == "" {
		return nil, apperrors.NewValidationError("jobId, type and message required", nil)
	}
	job, ok := s.jobs.GetJobByID(input.JobID)
	if !ok {
		return nil, apperrors.NewNotFound("Job", map[string]any{"job_id": input.JobID})
	}

	severity := input.Severity
	if severity == "" {
		severity = domain.AlertSeverityMedium
	}
	alert := &domain.ManualAlert{
		ID:          uuid.NewString(),
		JobID:       job.ID,
		Type:        strings.TrimSpace(input.Type),
		Message:     strings.TrimSpace(input.Message),
		Severity:    severity,
		JobPriority: job.Priority,
		JobStatus:   job.Status,
		CreatedAt:   s.clock(),
	}
	if err := s.manual.Create(ctx, alert); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:  events.EventManualAlertCreated,
		JobID: job.ID,
		Payload: events.ManualAlertCreatedPayload{
			AlertID:  alert.ID,
			Type:     alert.Type,
			Severity: alert.Severity,
		},
	})
	return alert, nil
}

// ListManualAlerts returns stored user-authored alerts, newest first.
func (s *AlertService) ListManualAlerts(ctx context.Context) ([]domain.ManualAlert, error) {
	return s.manual.List(ctx)
}

// Reevaluate re-runs derivation and auto-resolves engineer-action alerts
// whose firing condition lapsed since the previous pass.
func (s *AlertService) Reevaluate(ctx context.Context) {
	raw := alerting.Derive(s.jobs.Jobs(), s.clock())

	current := make(map[string]domain.AlertType, len(raw))
	for _, alert := range raw {
		if alert.Type == domain.AlertTypeEngineerAccept || alert.Type == domain.AlertTypeEngineerOnsite {
			current[alert.ID] = alert.Type
		}
	}

	s.mu.Lock()
	var lapsed []domain.Resolution
	for id, alertType := range s.liveAlerts {
		if _, stillFiring := current[id]; stillFiring {
			continue
		}
		lapsed = append(lapsed, s.systemResolution(id, alertType))
	}
	s.liveAlerts = current
	s.mu.Unlock()

	for _, res := range lapsed {
		if _, already := s.resolutions.Get(res.AlertID); already {
			continue
		}
		s.resolutions.Resolve(ctx, res)
		s.logger.Info("alert auto-resolved",
			zap.String("alert_id", res.AlertID),
			zap.String("job_id", res.JobID))
		s.publish(ctx, events.Event{
			Type:  events.EventAlertAutoResolved,
			JobID: res.JobID,
			Payload: events.AlertResolvedPayload{
				AlertID:    res.AlertID,
				AlertType:  res.Type,
				ResolvedBy: systemResolver,
			},
		})
	}

	s.recordMetrics(s.resolutions.Merge(raw))
}

func (s *AlertService) systemResolution(alertID string, alertType domain.AlertType) domain.Resolution {
	jobID := strings.TrimPrefix(alertID, string(alertType)+"-")
	resolvedAt := s.clock()
	resolution := resolutionEngineerAccepted
	if alertType == domain.AlertTypeEngineerOnsite {
		resolution = resolutionEngineerOnsite
	}

	// Use the job timestamp that cleared the condition when available; fall
	// back to now for status-cleared cases.
	if job, ok := s.jobs.GetJobByID(jobID); ok {
		switch alertType {
		case domain.AlertTypeEngineerAccept:
			if job.DateAccepted != nil {
				resolvedAt = *job.DateAccepted
			}
		case domain.AlertTypeEngineerOnsite:
			if job.DateOnSite != nil {
				resolvedAt = *job.DateOnSite
			}
		}
	}

	return domain.Resolution{
		AlertID:    alertID,
		Type:       alertType,
		JobID:      jobID,
		ResolvedBy: systemResolver,
		ResolvedAt: resolvedAt,
		Resolution: resolution,
	}
}

func (s *AlertService) resolveManual(ctx context.Context, alertID, resolvedBy, resolution string) (*domain.ManualAlert, error) {
	alert, err := s.manual.Resolve(ctx, alertID, resolvedBy, resolution, s.clock())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Alert", map[string]any{"alert_id": alertID})
		}
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:  events.EventAlertResolved,
		JobID: alert.JobID,
		Payload: events.AlertResolvedPayload{
			AlertID:    alert.ID,
			ResolvedBy: resolvedBy,
		},
	})
	return alert, nil
}

func (s *AlertService) recordMetrics(alerts []domain.Alert) {
	if s.metrics == nil {
		return
	}
	active := make(map[string]int)
	for _, alert := range alerts {
		if !alert.Resolved {
			active[string(alert.Type)]++
		}
	}
	s.metrics.RecordDerivation(active)
}

func (s *AlertService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = s.clock()
	_ = s.dispatcher.Publish(ctx, event)
}
