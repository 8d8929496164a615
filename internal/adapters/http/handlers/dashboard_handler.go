package handlers

import (
	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/core/services"
	"gymdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
	memberRepo       repositories.MemberRepository
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	dashboardService *services.DashboardService,
	memberRepo repositories.MemberRepository,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		memberRepo:       memberRepo,
	}
}

// Admin handles the admin dashboard
// @Summary Admin dashboard
// @Description Member, booking, and financial statistics for the whole gym (Admin only)
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard/admin [get]
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetAdminDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

// Receptionist handles the receptionist dashboard
// @Summary Receptionist dashboard
// @Description Today's classes, expiring memberships, and bookings to resolve (Staff only)
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard/reception [get]
func (h *DashboardHandler) Receptionist(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetReceptionistDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

// Me handles the member's own dashboard
// @Summary Member dashboard
// @Description The authenticated member's membership status, bookings, and payments
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dashboard/me [get]
func (h *DashboardHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	member, err := h.memberRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		return response.NotFound(c, "No member profile for this account")
	}

	data, err := h.dashboardService.GetMemberDashboard(c.Context(), member.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}
