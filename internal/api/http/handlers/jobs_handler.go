package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fieldops-service/internal/api/dto"
	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/service"
	apperrors "github.com/spec-kit/fieldops-service/pkg/util/errorutil"
)

// JobsHandler manages job endpoints.
type JobsHandler struct {
	service *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService) *JobsHandler {
	return &JobsHandler{service: jobService}
}

// CreateJob POST /jobs.
func (h *JobsHandler) CreateJob(c *fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Site == "" || (req.CustomerID == "" && req.Customer == "") {
		return apperrors.NewValidationError("customer and site required", nil)
	}

	input := service.JobCreateInput{
		JobNumber:       req.JobNumber,
		Priority:        req.Priority,
		CustomerID:      req.CustomerID,
		Customer:        req.Customer,
		Site:            req.Site,
		EngineerID:      req.EngineerID,
		Engineer:        req.Engineer,
		TicketReference: req.TicketReference,
		Description:     req.Description,
	}
	if req.SLA != nil {
		input.SLA = slaFromPayload(*req.SLA)
	}
	job, err := h.service.CreateJob(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": jobResponse(job)})
}

// ListJobs GET /jobs.
func (h *JobsHandler) ListJobs(c *fiber.Ctx) error {
	filter := service.JobFilter{
		Site:            c.Query("site"),
		Customer:        c.Query("customer"),
		Engineer:        c.Query("engineer"),
		TicketReference: c.Query("ticket_ref"),
	}
	if status := c.Query("status"); status != "" {
		js := domain.JobStatus(status)
		filter.Status = &js
	}
	if priority := c.Query("priority"); priority != "" {
		jp := domain.JobPriority(priority)
		filter.Priority = &jp
	}

	jobs := h.service.ListJobs(filter)
	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, jobResponse(&jobs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetJob GET /jobs/:id. The id parameter may be a job id or a job number.
func (h *JobsHandler) GetJob(c *fiber.Ctx) error {
	job, err := h.service.GetJob(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// UpdateJob PUT /jobs/:id. The body is a full replacement value.
func (h *JobsHandler) UpdateJob(c *fiber.Ctx) error {
	var req dto.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	job := domain.Job{
		ID:              c.Params("id"),
		JobNumber:       req.JobNumber,
		Status:          req.Status,
		Priority:        req.Priority,
		DateLogged:      req.DateLogged,
		DateAccepted:    req.DateAccepted,
		DateOnSite:      req.DateOnSite,
		DateCompleted:   req.DateCompleted,
		CustomerID:      req.CustomerID,
		Customer:        req.Customer,
		Site:            req.Site,
		EngineerID:      req.EngineerID,
		Engineer:        req.Engineer,
		TicketReference: req.TicketReference,
		Description:     req.Description,
	}
	if req.SLA != nil {
		job.SLA = slaFromPayload(*req.SLA)
	}
	updated, err := h.service.UpdateJob(c.UserContext(), job)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(updated)})
}

// AcceptJob POST /jobs/:id/accept.
func (h *JobsHandler) AcceptJob(c *fiber.Ctx) error {
	job, err := h.service.AcceptJob(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// OnsiteJob POST /jobs/:id/onsite.
func (h *JobsHandler) OnsiteJob(c *fiber.Ctx) error {
	job, err := h.service.OnsiteJob(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// CompleteJob POST /jobs/:id/complete.
func (h *JobsHandler) CompleteJob(c *fiber.Ctx) error {
	job, err := h.service.CompleteJob(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

func jobResponse(job *domain.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:              job.ID,
		JobNumber:       job.JobNumber,
		Status:          job.Status,
		Priority:        job.Priority,
		DateLogged:      job.DateLogged,
		DateAccepted:    job.DateAccepted,
		DateOnSite:      job.DateOnSite,
		DateCompleted:   job.DateCompleted,
		CustomerID:      job.CustomerID,
		Customer:        job.Customer,
		Site:            job.Site,
		EngineerID:      job.EngineerID,
		Engineer:        job.Engineer,
		TicketReference: job.TicketReference,
		Description:     job.Description,
		SLA: dto.SLAConfigPayload{
			AcceptMinutes:    job.SLA.AcceptMinutes,
			OnsiteMinutes:    job.SLA.OnsiteMinutes,
			CompletedMinutes: job.SLA.CompletedMinutes,
		},
	}
}

func slaFromPayload(p dto.SLAConfigPayload) domain.SLAConfig {
	return domain.SLAConfig{
		AcceptMinutes:    p.AcceptMinutes,
		OnsiteMinutes:    p.OnsiteMinutes,
		CompletedMinutes: p.CompletedMinutes,
	}
}
