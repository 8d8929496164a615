package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/core/domain"
	"gymdesk/internal/core/services"
	"gymdesk/internal/pkg/pagination"
	"gymdesk/internal/pkg/password"
	"gymdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member and membership endpoints
type MemberHandler struct {
	membershipService *services.MembershipService
	billingService    *services.BillingService
	planRepo          repositories.MembershipPlanRepository
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(
	membershipService *services.MembershipService,
	billingService *services.BillingService,
	planRepo repositories.MembershipPlanRepository,
) *MemberHandler {
	return &MemberHandler{
		membershipService: membershipService,
		billingService:    billingService,
		planRepo:          planRepo,
	}
}

// RegisterMemberRequest represents member registration request body
type RegisterMemberRequest struct {
	Name           string     `json:"name"`
	Username       string     `json:"username"`
	Password       string     `json:"password"`
	MembershipType string     `json:"membership_type,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
}

// ChangeMembershipRequest represents membership change request body
type ChangeMembershipRequest struct {
	MembershipType string `json:"membership_type"`
}

// Register handles member registration
// @Summary Register new member
// @Description Create a user account and its member profile in one step
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RegisterMemberRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) Register(c *fiber.Ctx) error {
	var req RegisterMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if req.Username == "" {
		return response.BadRequest(c, "Username is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}
	if !password.ValidatePassword(req.Password) {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	input := &services.RegisterMemberInput{
		Name:      strings.TrimSpace(req.Name),
		Username:  strings.TrimSpace(req.Username),
		Password:  req.Password,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	// Resolve membership from the plan catalog when a tier was chosen
	if req.MembershipType != "" {
		membership, err := h.resolveMembership(c, req.MembershipType)
		if err != nil {
			return response.BadRequest(c, "Unknown membership type")
		}
		input.Membership = membership
	}

	member, err := h.membershipService.RegisterMember(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			return response.Conflict(c, "Username already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid registration data")
		default:
			return response.InternalServerError(c, "Failed to register member")
		}
	}

	return response.Created(c, "Member registered successfully", fiber.Map{
		"member": member.ToResponse(),
	})
}

// List handles listing members with pagination
// @Summary List members
// @Description List members with pagination; ?active=true restricts to active memberships
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param active query bool false "Only active memberships"
// @Success 200 {object} response.Response
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	if c.Query("active") == "true" {
		members, err := h.membershipService.FindActiveMembers(c.Context())
		if err != nil {
			return response.InternalServerError(c, "Failed to list members")
		}
		return response.Success(c, "Members retrieved successfully", fiber.Map{
			"members": toMemberResponses(members),
		})
	}

	params := pagination.GetParams(c)
	members, total, err := h.membershipService.ListMembers(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully",
		pagination.NewResponse(toMemberResponses(members), params, total))
}

// Get handles getting a member by ID
// @Summary Get member
// @Description Get a member by ID
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.membershipService.FindMemberByID(c.Context(), memberID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}

	return response.Success(c, "Member retrieved successfully", fiber.Map{
		"member": member.ToResponse(),
	})
}

// ChangeMembership handles switching a member to another tier
// @Summary Change membership
// @Description Switch the member to a new tier; the end date restarts from today
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body ChangeMembershipRequest true "New tier"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/membership [put]
func (h *MemberHandler) ChangeMembership(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var req ChangeMembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.MembershipType == "" {
		return response.BadRequest(c, "Membership type is required")
	}

	membership, err := h.resolveMembership(c, req.MembershipType)
	if err != nil {
		return response.BadRequest(c, "Unknown membership type")
	}

	member, err := h.membershipService.UpdateMembership(c.Context(), memberID, membership)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to change membership")
	}

	return response.Success(c, "Membership changed successfully", fiber.Map{
		"member": member.ToResponse(),
	})
}

// Renew handles membership renewal with payment
// @Summary Renew membership
// @Description Record the renewal fee and restart the membership period in one transaction
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body ChangeMembershipRequest true "Tier to renew on"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/renew [post]
func (h *MemberHandler) Renew(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var req ChangeMembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.MembershipType == "" {
		return response.BadRequest(c, "Membership type is required")
	}

	membership, err := h.resolveMembership(c, req.MembershipType)
	if err != nil {
		return response.BadRequest(c, "Unknown membership type")
	}

	result := h.billingService.ProcessMembershipRenewal(c.Context(), memberID, membership)
	if !result.OK {
		if errors.Is(result.Err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to renew membership")
	}

	return response.Success(c, "Membership renewed successfully", fiber.Map{
		"fee": h.billingService.CalculateMembershipFee(membership),
	})
}

// Cancel handles membership cancellation
// @Summary Cancel membership
// @Description End the membership immediately; the member record is kept
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/cancel [post]
func (h *MemberHandler) Cancel(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	result := h.membershipService.CancelMembership(c.Context(), memberID)
	if !result.OK {
		if errors.Is(result.Err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to cancel membership")
	}

	return response.Success(c, "Membership cancelled successfully", nil)
}

// ExpiringSoon handles listing memberships about to lapse
// @Summary List expiring memberships
// @Description List members whose membership ends within the given number of days
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param days query int false "Look-ahead window in days (default 7)"
// @Success 200 {object} response.Response
// @Router /members/expiring [get]
func (h *MemberHandler) ExpiringSoon(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days < 1 {
		return response.BadRequest(c, "Invalid days parameter")
	}

	members, err := h.membershipService.FindMembersExpiringSoon(c.Context(), days)
	if err != nil {
		return response.InternalServerError(c, "Failed to list expiring memberships")
	}

	return response.Success(c, "Expiring memberships retrieved successfully", fiber.Map{
		"members": toMemberResponses(members),
	})
}

// resolveMembership builds a membership from the plan catalog row for
// the given tier code.
func (h *MemberHandler) resolveMembership(c *fiber.Ctx, code string) (*domain.Membership, error) {
	plan, err := h.planRepo.GetByCode(c.Context(), strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	return plan.ToMembership()
}

func toMemberResponses(members []*models.Member) []*models.MemberResponse {
	out := make([]*models.MemberResponse, len(members))
	for i, m := range members {
		out[i] = m.ToResponse()
	}
	return out
}

// parseIDParam parses the :id path parameter
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
