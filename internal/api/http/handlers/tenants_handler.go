package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/catalyst-itsm/intake-service/internal/api/dto"
	"github.com/catalyst-itsm/intake-service/internal/service"
	apperrors "github.com/catalyst-itsm/intake-service/pkg/util"
)

// TenantsHandler manages tenant provisioning endpoints.
type TenantsHandler struct {
	tenants *service.TenantService
}

// NewTenantsHandler constructs handler.
func NewTenantsHandler(tenants *service.TenantService) *TenantsHandler {
	return &TenantsHandler{tenants: tenants}
}

// CreateTenant POST /tenants.
func (h *TenantsHandler) CreateTenant(c *fiber.Ctx) error {
	var req dto.CreateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	tenant, err := h.tenants.Provision(c.UserContext(), req.Name, req.Plan)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.TenantResponse{
		ID:             tenant.ID,
		Name:           tenant.Name,
		Plan:           tenant.Plan,
		SubscriptionID: tenant.SubscriptionID,
		CreatedAt:      tenant.CreatedAt,
	}})
}
