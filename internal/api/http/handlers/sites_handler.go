package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fieldops-service/internal/api/dto"
	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/service"
)

// SitesHandler serves derived site aggregations.
type SitesHandler struct {
	service *service.SiteService
}

// NewSitesHandler constructs handler.
func NewSitesHandler(siteService *service.SiteService) *SitesHandler {
	return &SitesHandler{service: siteService}
}

// ListSites GET /sites.
func (h *SitesHandler) ListSites(c *fiber.Ctx) error {
	summaries := h.service.Summaries()
	items := make([]dto.SiteSummaryResponse, 0, len(summaries))
	for i := range summaries {
		items = append(items, siteResponse(&summaries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetSite GET /sites/:site.
func (h *SitesHandler) GetSite(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.Params("site"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": siteResponse(summary)})
}

func siteResponse(s *domain.SiteSummary) dto.SiteSummaryResponse {
	return dto.SiteSummaryResponse{
		Site:          s.Site,
		Customer:      s.Customer,
		TotalJobs:     s.TotalJobs,
		ActiveJobs:    s.ActiveJobs,
		CompletedJobs: s.CompletedJobs,
		CriticalJobs:  s.CriticalJobs,
		UrgentJobs:    s.UrgentJobs,
		Engineers:     s.Engineers,
		LastJobDate:   s.LastJobDate,
	}
}
