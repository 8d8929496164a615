package handlers

import (
	"strings"

	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PlanHandler handles membership plan catalog endpoints
type PlanHandler struct {
	planRepo repositories.MembershipPlanRepository
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planRepo repositories.MembershipPlanRepository) *PlanHandler {
	return &PlanHandler{planRepo: planRepo}
}

// List lists all membership plans
// @Summary List membership plans
// @Description Get the tier catalog with prices, durations and benefits
// @Tags Plans
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /plans [get]
func (h *PlanHandler) List(c *fiber.Ctx) error {
	plans, err := h.planRepo.FindAll(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list membership plans")
	}

	// Attach the benefits text from the tier definitions
	out := make([]fiber.Map, 0, len(plans))
	for _, plan := range plans {
		entry := fiber.Map{
			"code":            plan.Code,
			"name":            plan.Name,
			"price":           plan.Price,
			"duration_months": plan.DurationMonths,
		}
		if m, err := plan.ToMembership(); err == nil {
			entry["benefits"] = m.Benefits()
			entry["discount_rate"] = m.DiscountRate()
		}
		out = append(out, entry)
	}

	return response.Success(c, "Membership plans retrieved successfully", fiber.Map{
		"plans": out,
	})
}

// Get gets a membership plan by tier code
// @Summary Get membership plan
// @Description Get one tier from the catalog by code
// @Tags Plans
// @Accept json
// @Produce json
// @Param code path string true "Tier code"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /plans/{code} [get]
func (h *PlanHandler) Get(c *fiber.Ctx) error {
	code := strings.ToUpper(c.Params("code"))

	plan, err := h.planRepo.GetByCode(c.Context(), code)
	if err != nil {
		return response.NotFound(c, "Membership plan not found")
	}

	return response.Success(c, "Membership plan retrieved successfully", fiber.Map{
		"plan": plan,
	})
}

// UpdatePlanRequest represents plan price update request
type UpdatePlanRequest struct {
	Price float64 `json:"price"`
}

// Update updates a membership plan's price
// @Summary Update membership plan
// @Description Change the price of a tier (Admin only)
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Tier code"
// @Param body body UpdatePlanRequest true "New price"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /plans/{code} [put]
func (h *PlanHandler) Update(c *fiber.Ctx) error {
	code := strings.ToUpper(c.Params("code"))

	var req UpdatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Price < 0 {
		return response.BadRequest(c, "Price must not be negative")
	}

	plan, err := h.planRepo.GetByCode(c.Context(), code)
	if err != nil {
		return response.NotFound(c, "Membership plan not found")
	}

	plan.Price = req.Price
	if err := h.planRepo.Update(c.Context(), plan); err != nil {
		return response.InternalServerError(c, "Failed to update membership plan")
	}

	return response.Success(c, "Membership plan updated successfully", fiber.Map{
		"plan": plan,
	})
}
