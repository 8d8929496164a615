package handlers

import (
	"errors"
	"time"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/core/domain"
	"gymdesk/internal/core/services"
	"gymdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookingHandler handles class booking endpoints
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// BookClassRequest represents booking request body
type BookClassRequest struct {
	MemberID  uint      `json:"member_id"`
	ClassName string    `json:"class_name"`
	ClassTime time.Time `json:"class_time"`
}

// Book handles booking a class
// @Summary Book a class
// @Description Book a class slot for a member; overlapping bookings within an hour are rejected
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BookClassRequest true "Booking data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bookings [post]
func (h *BookingHandler) Book(c *fiber.Ctx) error {
	var req BookClassRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.MemberID == 0 {
		return response.BadRequest(c, "Member ID is required")
	}
	if req.ClassName == "" {
		return response.BadRequest(c, "Class name is required")
	}
	if req.ClassTime.IsZero() {
		return response.BadRequest(c, "Class time is required")
	}

	booking, err := h.bookingService.BookClass(c.Context(), req.MemberID, req.ClassName, req.ClassTime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrPastClassTime):
			return response.BadRequest(c, "Class time must be in the future")
		case errors.Is(err, domain.ErrBookingConflict):
			return response.Conflict(c, "Member already has a booking within an hour of this class")
		default:
			return response.InternalServerError(c, "Failed to book class")
		}
	}

	return response.Created(c, "Class booked successfully", fiber.Map{
		"booking": booking,
	})
}

// Get handles getting a booking by ID
// @Summary Get booking
// @Description Get a booking by ID
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *fiber.Ctx) error {
	bookingID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid booking ID")
	}

	booking, err := h.bookingService.FindBookingByID(c.Context(), bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return response.NotFound(c, "Booking not found")
		}
		return response.InternalServerError(c, "Failed to get booking")
	}

	return response.Success(c, "Booking retrieved successfully", fiber.Map{
		"booking": booking,
	})
}

// List handles listing bookings with optional filters
// @Summary List bookings
// @Description List bookings; filter by member_id, class, status, or a from/to range
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param member_id query int false "Member ID"
// @Param class query string false "Class name"
// @Param status query string false "Booking status"
// @Param from query string false "Range start (RFC3339)"
// @Param to query string false "Range end (RFC3339)"
// @Success 200 {object} response.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *fiber.Ctx) error {
	var bookings []*models.Booking
	var err error

	switch {
	case c.Query("member_id") != "":
		memberID := c.QueryInt("member_id")
		if memberID <= 0 {
			return response.BadRequest(c, "Invalid member_id")
		}
		bookings, err = h.bookingService.GetBookingsByMember(c.Context(), uint(memberID))

	case c.Query("class") != "":
		bookings, err = h.bookingService.GetBookingsByClass(c.Context(), c.Query("class"))

	case c.Query("status") != "":
		bookings, err = h.bookingService.GetBookingsByStatus(c.Context(), domain.BookingStatus(c.Query("status")))

	case c.Query("from") != "" && c.Query("to") != "":
		start, err1 := time.Parse(time.RFC3339, c.Query("from"))
		end, err2 := time.Parse(time.RFC3339, c.Query("to"))
		if err1 != nil || err2 != nil {
			return response.BadRequest(c, "Invalid date range")
		}
		bookings, err = h.bookingService.GetBookingsByDateRange(c.Context(), start, end)

	default:
		bookings, err = h.bookingService.GetAllBookings(c.Context())
	}

	if err != nil {
		return response.InternalServerError(c, "Failed to list bookings")
	}

	return response.Success(c, "Bookings retrieved successfully", fiber.Map{
		"bookings": bookings,
	})
}

// Cancel handles cancelling a booking
// @Summary Cancel booking
// @Description Cancel a booking that is still in BOOKED status
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	bookingID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid booking ID")
	}

	booking, err := h.bookingService.CancelBooking(c.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingNotFound):
			return response.NotFound(c, "Booking not found")
		case errors.Is(err, domain.ErrInvalidStatusTransition):
			return response.Conflict(c, "Only BOOKED bookings can be cancelled")
		default:
			return response.InternalServerError(c, "Failed to cancel booking")
		}
	}

	return response.Success(c, "Booking cancelled successfully", fiber.Map{
		"booking": booking,
	})
}

// NoShow handles marking a booking as a no-show
// @Summary Mark no-show
// @Description Mark a booking as NO_SHOW
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id}/no-show [post]
func (h *BookingHandler) NoShow(c *fiber.Ctx) error {
	bookingID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid booking ID")
	}

	if err := h.bookingService.MarkNoShow(c.Context(), bookingID); err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return response.NotFound(c, "Booking not found")
		}
		return response.InternalServerError(c, "Failed to mark no-show")
	}

	return response.Success(c, "Booking marked as no-show", nil)
}

// Complete handles marking a booking as completed
// @Summary Mark completed
// @Description Mark a booking as COMPLETED
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id}/complete [post]
func (h *BookingHandler) Complete(c *fiber.Ctx) error {
	bookingID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid booking ID")
	}

	if err := h.bookingService.MarkCompleted(c.Context(), bookingID); err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return response.NotFound(c, "Booking not found")
		}
		return response.InternalServerError(c, "Failed to mark completed")
	}

	return response.Success(c, "Booking marked as completed", nil)
}

// Upcoming handles listing a member's upcoming bookings
// @Summary List upcoming bookings
// @Description List a member's future BOOKED bookings, soonest first
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Router /members/{id}/bookings/upcoming [get]
func (h *BookingHandler) Upcoming(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	bookings, err := h.bookingService.GetUpcomingBookings(c.Context(), memberID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list upcoming bookings")
	}

	return response.Success(c, "Upcoming bookings retrieved successfully", fiber.Map{
		"bookings": bookings,
	})
}

// Past handles listing a member's past bookings
// @Summary List past bookings
// @Description List a member's past bookings, most recent first
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Router /members/{id}/bookings/past [get]
func (h *BookingHandler) Past(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	bookings, err := h.bookingService.GetPastBookings(c.Context(), memberID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list past bookings")
	}

	return response.Success(c, "Past bookings retrieved successfully", fiber.Map{
		"bookings": bookings,
	})
}

// NeedingAttention handles listing stale BOOKED bookings
// @Summary List bookings needing attention
// @Description List bookings still BOOKED well past their class time
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /bookings/attention [get]
func (h *BookingHandler) NeedingAttention(c *fiber.Ctx) error {
	bookings, err := h.bookingService.GetBookingsNeedingAttention(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list bookings needing attention")
	}

	return response.Success(c, "Bookings needing attention retrieved successfully", fiber.Map{
		"bookings": bookings,
	})
}

// Stats handles booking statistics
// @Summary Booking statistics
// @Description Get active booking count and completion rate
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /bookings/stats [get]
func (h *BookingHandler) Stats(c *fiber.Ctx) error {
	active, err := h.bookingService.GetActiveBookingCount(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get booking stats")
	}

	rate, err := h.bookingService.GetBookingCompletionRate(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get booking stats")
	}

	return response.Success(c, "Booking stats retrieved successfully", fiber.Map{
		"active_bookings": active,
		"completion_rate": rate,
	})
}
