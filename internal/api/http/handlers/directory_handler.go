package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fieldops-service/internal/api/dto"
	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/store"
	apperrors "github.com/spec-kit/fieldops-service/pkg/util/errorutil"
)

// DirectoryHandler serves the engineer and customer directories.
type DirectoryHandler struct {
	engineers *store.EngineerDirectory
	customers *store.CustomerDirectory
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(engineers *store.EngineerDirectory, customers *store.CustomerDirectory) *DirectoryHandler {
	return &DirectoryHandler{engineers: engineers, customers: customers}
}

// ListEngineers GET /engineers.
func (h *DirectoryHandler) ListEngineers(c *fiber.Ctx) error {
	engineers := h.engineers.List()
	items := make([]dto.EngineerResponse, 0, len(engineers))
	for i := range engineers {
		items = append(items, engineerResponse(&engineers[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetEngineer GET /engineers/:id. Falls back to name matching for callers
// that only hold the denormalized display name.
func (h *DirectoryHandler) GetEngineer(c *fiber.Ctx) error {
	id := c.Params("id")
	engineer, ok := h.engineers.GetByID(id)
	if !ok {
		engineer, ok = h.engineers.GetByName(id)
	}
	if !ok {
		return apperrors.NewNotFound("Engineer", map[string]any{"engineer": id})
	}
	return c.JSON(fiber.Map{"data": engineerResponse(engineer)})
}

// ListCustomers GET /customers.
func (h *DirectoryHandler) ListCustomers(c *fiber.Ctx) error {
	customers := h.customers.List()
	items := make([]dto.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		items = append(items, dto.CustomerResponse{
			ID:    customer.ID,
			Name:  customer.Name,
			Sites: customer.Sites,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func engineerResponse(e *domain.Engineer) dto.EngineerResponse {
	return dto.EngineerResponse{
		ID:          e.ID,
		Name:        e.Name,
		Phone:       e.Phone,
		Email:       e.Email,
		Status:      e.Status,
		IsOnHoliday: e.IsOnHoliday,
		ShiftTiming: e.ShiftTiming,
	}
}
