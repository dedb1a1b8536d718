package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fieldops-service/internal/api/dto"
	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/service"
	"github.com/spec-kit/fieldops-service/internal/store"
	apperrors "github.com/spec-kit/fieldops-service/pkg/util/errorutil"
)

// AlertsHandler manages alert endpoints.
type AlertsHandler struct {
	service   *service.AlertService
	engineers *store.EngineerDirectory
	jobs      *store.JobStore
}

// NewAlertsHandler constructs handler.
func NewAlertsHandler(alertService *service.AlertService, engineers *store.EngineerDirectory, jobs *store.JobStore) *AlertsHandler {
	return &AlertsHandler{service: alertService, engineers: engineers, jobs: jobs}
}

// ListAlerts GET /alerts.
func (h *AlertsHandler) ListAlerts(c *fiber.Ctx) error {
	filter := service.AlertFilter{}
	if t := c.Query("type"); t != "" {
		at := domain.AlertType(t)
		filter.Type = &at
	}
	if sev := c.Query("severity"); sev != "" {
		as := domain.AlertSeverity(sev)
		filter.Severity = &as
	}
	if res := c.Query("resolved"); res != "" {
		parsed, err := strconv.ParseBool(res)
		if err != nil {
			return apperrors.NewValidationError("invalid resolved filter", nil)
		}
		filter.Resolved = &parsed
	}

	alerts, err := h.service.Alerts(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AlertResponse, 0, len(alerts))
	for i := range alerts {
		items = append(items, h.alertResponse(&alerts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// History GET /alerts/history.
func (h *AlertsHandler) History(c *fiber.Ctx) error {
	records := h.service.History()
	items := make([]dto.ResolutionResponse, 0, len(records))
	for _, r := range records {
		items = append(items, dto.ResolutionResponse{
			AlertID:    r.AlertID,
			Type:       r.Type,
			JobID:      r.JobID,
			ResolvedBy: r.ResolvedBy,
			ResolvedAt: r.ResolvedAt,
			Resolution: r.Resolution,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateAlert POST /alerts. Creates a manual (user-authored) alert.
func (h *AlertsHandler) CreateAlert(c *fiber.Ctx) error {
	var req dto.CreateAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	alert, err := h.service.CreateManualAlert(c.UserContext(), service.ManualAlertInput{
		JobID:    req.JobID,
		Type:     req.Type,
		Message:  req.Message,
		Severity: req.Severity,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": manualAlertResponse(alert)})
}

// ListManualAlerts GET /alerts/manual.
func (h *AlertsHandler) ListManualAlerts(c *fiber.Ctx) error {
	alerts, err := h.service.ListManualAlerts(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ManualAlertResponse, 0, len(alerts))
	for i := range alerts {
		items = append(items, manualAlertResponse(&alerts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ResolveAlert POST /alerts/:id/resolve.
func (h *AlertsHandler) ResolveAlert(c *fiber.Ctx) error {
	var req dto.ResolveAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ResolvedBy == "" {
		return apperrors.NewValidationError("resolved_by required", nil)
	}

	result, err := h.service.ResolveAlert(c.UserContext(), c.Params("id"), req.ResolvedBy, req.Resolution)
	if err != nil {
		return err
	}
	if result.Derived != nil {
		return c.JSON(fiber.Map{"data": h.alertResponse(result.Derived)})
	}
	return c.JSON(fiber.Map{"data": manualAlertResponse(result.Manual)})
}

func (h *AlertsHandler) alertResponse(alert *domain.Alert) dto.AlertResponse {
	resp := dto.AlertResponse{
		ID:         alert.ID,
		Type:       alert.Type,
		Severity:   alert.Severity,
		JobID:      alert.JobID,
		JobNumber:  alert.JobNumber,
		Message:    alert.Message,
		Timestamp:  alert.Timestamp,
		Resolved:   alert.Resolved,
		ResolvedBy: alert.ResolvedBy,
		ResolvedAt: alert.ResolvedAt,
		Resolution: alert.Resolution,
	}
	// Enrich with engineer contact details for display only.
	if job, ok := h.jobs.GetJobByID(alert.JobID); ok && job.Engineer != "" {
		if engineer, found := h.engineers.GetByName(job.Engineer); found {
			resp.EngineerPhone = engineer.Phone
			resp.EngineerEmail = engineer.Email
		}
	}
	return resp
}

func manualAlertResponse(alert *domain.ManualAlert) dto.ManualAlertResponse {
	return dto.ManualAlertResponse{
		ID:          alert.ID,
		JobID:       alert.JobID,
		Type:        alert.Type,
		Message:     alert.Message,
		Severity:    alert.Severity,
		JobPriority: alert.JobPriority,
		JobStatus:   alert.JobStatus,
		CreatedAt:   alert.CreatedAt,
		Resolved:    alert.Resolved,
		ResolvedBy:  alert.ResolvedBy,
		ResolvedAt:  alert.ResolvedAt,
		Resolution:  alert.Resolution,
	}
}
