package handlers

import (
	"errors"
	"strconv"
	"time"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/core/domain"
	"gymdesk/internal/core/services"
	"gymdesk/internal/pkg/pagination"
	"gymdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	billingService *services.BillingService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(billingService *services.BillingService) *PaymentHandler {
	return &PaymentHandler{billingService: billingService}
}

// RecordPaymentRequest represents payment recording request body
type RecordPaymentRequest struct {
	MemberID uint    `json:"member_id"`
	Amount   float64 `json:"amount"`
	Type     string  `json:"type"`
}

// UpdatePaymentRequest represents payment correction request body
type UpdatePaymentRequest struct {
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
}

// Record handles recording a payment
// @Summary Record payment
// @Description Record a membership, class, or other payment for a member, dated today
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RecordPaymentRequest true "Payment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments [post]
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var req RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.MemberID == 0 {
		return response.BadRequest(c, "Member ID is required")
	}
	if req.Amount <= 0 {
		return response.BadRequest(c, "Amount must be positive")
	}

	var payment *models.Payment
	var err error

	switch domain.PaymentType(req.Type) {
	case domain.PaymentMembership:
		payment, err = h.billingService.RecordMembershipPayment(c.Context(), req.MemberID, req.Amount)
	case domain.PaymentClass:
		payment, err = h.billingService.RecordClassPayment(c.Context(), req.MemberID, req.Amount)
	case domain.PaymentOther:
		payment, err = h.billingService.RecordOtherPayment(c.Context(), req.MemberID, req.Amount)
	default:
		return response.BadRequest(c, "Invalid payment type")
	}

	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to record payment")
	}

	return response.Created(c, "Payment recorded successfully", fiber.Map{
		"payment": payment,
	})
}

// Get handles getting a payment by ID
// @Summary Get payment
// @Description Get a payment by ID
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	paymentID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	payment, err := h.billingService.FindPaymentByID(c.Context(), paymentID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return response.NotFound(c, "Payment not found")
		}
		return response.InternalServerError(c, "Failed to get payment")
	}

	return response.Success(c, "Payment retrieved successfully", fiber.Map{
		"payment": payment,
	})
}

// List handles listing payments with optional filters
// @Summary List payments
// @Description List payments with pagination; filter by member_id, type, or a from/to range
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param member_id query int false "Member ID"
// @Param type query string false "Payment type"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	switch {
	case c.Query("member_id") != "":
		memberID := c.QueryInt("member_id")
		if memberID <= 0 {
			return response.BadRequest(c, "Invalid member_id")
		}
		payments, err := h.billingService.GetPaymentsByMember(c.Context(), uint(memberID))
		if err != nil {
			return response.InternalServerError(c, "Failed to list payments")
		}
		return response.Success(c, "Payments retrieved successfully", fiber.Map{"payments": payments})

	case c.Query("type") != "":
		payments, err := h.billingService.GetPaymentsByType(c.Context(), domain.PaymentType(c.Query("type")))
		if err != nil {
			return response.InternalServerError(c, "Failed to list payments")
		}
		return response.Success(c, "Payments retrieved successfully", fiber.Map{"payments": payments})

	case c.Query("from") != "" && c.Query("to") != "":
		start, err1 := time.Parse("2006-01-02", c.Query("from"))
		end, err2 := time.Parse("2006-01-02", c.Query("to"))
		if err1 != nil || err2 != nil {
			return response.BadRequest(c, "Invalid date range")
		}
		payments, err := h.billingService.GetPaymentsByDateRange(c.Context(), start, end)
		if err != nil {
			return response.InternalServerError(c, "Failed to list payments")
		}
		return response.Success(c, "Payments retrieved successfully", fiber.Map{"payments": payments})
	}

	params := pagination.GetParams(c)
	payments, total, err := h.billingService.ListPayments(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list payments")
	}

	return response.Success(c, "Payments retrieved successfully",
		pagination.NewResponse(payments, params, total))
}

// Recent handles listing recent payments
// @Summary List recent payments
// @Description List payments recorded within the last N days, newest first
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param days query int false "Look-back window in days (default 7)"
// @Success 200 {object} response.Response
// @Router /payments/recent [get]
func (h *PaymentHandler) Recent(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days < 1 {
		return response.BadRequest(c, "Invalid days parameter")
	}

	payments, err := h.billingService.GetRecentPayments(c.Context(), days)
	if err != nil {
		return response.InternalServerError(c, "Failed to list recent payments")
	}

	return response.Success(c, "Recent payments retrieved successfully", fiber.Map{
		"payments": payments,
	})
}

// Update handles correcting a payment
// @Summary Update payment
// @Description Correct a payment's amount or type (Admin only)
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Param body body UpdatePaymentRequest true "Corrected fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/{id} [put]
func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	paymentID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	var req UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	payment, err := h.billingService.FindPaymentByID(c.Context(), paymentID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return response.NotFound(c, "Payment not found")
		}
		return response.InternalServerError(c, "Failed to get payment")
	}

	if req.Amount > 0 {
		payment.Amount = req.Amount
	}
	if req.Type != "" {
		switch domain.PaymentType(req.Type) {
		case domain.PaymentMembership, domain.PaymentClass, domain.PaymentOther:
			payment.Type = req.Type
		default:
			return response.BadRequest(c, "Invalid payment type")
		}
	}

	result := h.billingService.UpdatePayment(c.Context(), payment)
	if !result.OK {
		return response.InternalServerError(c, "Failed to update payment")
	}

	return response.Success(c, "Payment updated successfully", fiber.Map{
		"payment": payment,
	})
}

// Delete handles deleting a payment
// @Summary Delete payment
// @Description Remove a mistakenly recorded payment (Admin only)
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/{id} [delete]
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	paymentID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	result := h.billingService.DeletePayment(c.Context(), paymentID)
	if !result.OK {
		if errors.Is(result.Err, domain.ErrPaymentNotFound) {
			return response.NotFound(c, "Payment not found")
		}
		return response.InternalServerError(c, "Failed to delete payment")
	}

	return response.Success(c, "Payment deleted successfully", nil)
}

// Revenue handles revenue summaries
// @Summary Revenue summary
// @Description Get total revenue, optionally for one month (month+year) or one type
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Param type query string false "Payment type"
// @Success 200 {object} response.Response
// @Router /payments/revenue [get]
func (h *PaymentHandler) Revenue(c *fiber.Ctx) error {
	if c.Query("month") != "" && c.Query("year") != "" {
		month := c.QueryInt("month")
		year := c.QueryInt("year")
		if month < 1 || month > 12 || year < 1 {
			return response.BadRequest(c, "Invalid month or year")
		}
		total, err := h.billingService.GetMonthlyRevenue(c.Context(), month, year)
		if err != nil {
			return response.InternalServerError(c, "Failed to get revenue")
		}
		return response.Success(c, "Revenue retrieved successfully", fiber.Map{
			"month": month, "year": year, "revenue": total,
		})
	}

	if c.Query("type") != "" {
		total, err := h.billingService.GetRevenueByType(c.Context(), domain.PaymentType(c.Query("type")))
		if err != nil {
			return response.InternalServerError(c, "Failed to get revenue")
		}
		return response.Success(c, "Revenue retrieved successfully", fiber.Map{
			"type": c.Query("type"), "revenue": total,
		})
	}

	total, err := h.billingService.GetTotalRevenue(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get revenue")
	}

	return response.Success(c, "Revenue retrieved successfully", fiber.Map{
		"revenue": total,
	})
}
