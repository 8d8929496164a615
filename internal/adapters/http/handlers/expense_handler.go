package handlers

import (
	"errors"
	"time"

	"gymdesk/internal/core/domain"
	"gymdesk/internal/core/services"
	"gymdesk/internal/pkg/pagination"
	"gymdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ExpenseHandler handles expense endpoints
type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// RecordExpenseRequest represents expense recording request body
type RecordExpenseRequest struct {
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Date        *time.Time `json:"date,omitempty"`
	Category    string     `json:"category"`
}

// UpdateExpenseRequest represents expense correction request body
type UpdateExpenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

// Record handles recording an expense
// @Summary Record expense
// @Description Record an operating expense; missing date defaults to today
// @Tags Expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RecordExpenseRequest true "Expense data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /expenses [post]
func (h *ExpenseHandler) Record(c *fiber.Ctx) error {
	var req RecordExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.RecordExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Category:    domain.ExpenseCategory(req.Category),
	}

	expense, err := h.expenseService.RecordExpense(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid expense data")
		}
		return response.InternalServerError(c, "Failed to record expense")
	}

	return response.Created(c, "Expense recorded successfully", fiber.Map{
		"expense": expense,
	})
}

// Get handles getting an expense by ID
// @Summary Get expense
// @Description Get an expense by ID
// @Tags Expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Get(c *fiber.Ctx) error {
	expenseID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid expense ID")
	}

	expense, err := h.expenseService.FindExpenseByID(c.Context(), expenseID)
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return response.NotFound(c, "Expense not found")
		}
		return response.InternalServerError(c, "Failed to get expense")
	}

	return response.Success(c, "Expense retrieved successfully", fiber.Map{
		"expense": expense,
	})
}

// List handles listing expenses with optional filters
// @Summary List expenses
// @Description List expenses with pagination; filter by category or a from/to range
// @Tags Expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param category query string false "Expense category"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	switch {
	case c.Query("category") != "":
		expenses, err := h.expenseService.GetExpensesByCategory(c.Context(), domain.ExpenseCategory(c.Query("category")))
		if err != nil {
			return response.InternalServerError(c, "Failed to list expenses")
		}
		return response.Success(c, "Expenses retrieved successfully", fiber.Map{"expenses": expenses})

	case c.Query("from") != "" && c.Query("to") != "":
		start, err1 := time.Parse("2006-01-02", c.Query("from"))
		end, err2 := time.Parse("2006-01-02", c.Query("to"))
		if err1 != nil || err2 != nil {
			return response.BadRequest(c, "Invalid date range")
		}
		expenses, err := h.expenseService.GetExpensesByDateRange(c.Context(), start, end)
		if err != nil {
			return response.InternalServerError(c, "Failed to list expenses")
		}
		return response.Success(c, "Expenses retrieved successfully", fiber.Map{"expenses": expenses})
	}

	params := pagination.GetParams(c)
	expenses, total, err := h.expenseService.ListExpenses(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list expenses")
	}

	return response.Success(c, "Expenses retrieved successfully",
		pagination.NewResponse(expenses, params, total))
}

// Update handles correcting an expense
// @Summary Update expense
// @Description Correct an expense's description, amount, or category (Admin only)
// @Tags Expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Param body body UpdateExpenseRequest true "Corrected fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	expenseID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid expense ID")
	}

	var req UpdateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	expense, err := h.expenseService.FindExpenseByID(c.Context(), expenseID)
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return response.NotFound(c, "Expense not found")
		}
		return response.InternalServerError(c, "Failed to get expense")
	}

	if req.Description != "" {
		expense.Description = req.Description
	}
	if req.Amount > 0 {
		expense.Amount = req.Amount
	}
	if req.Category != "" {
		if !domain.ExpenseCategory(req.Category).IsValid() {
			return response.BadRequest(c, "Invalid expense category")
		}
		expense.Category = req.Category
	}

	result := h.expenseService.UpdateExpense(c.Context(), expense)
	if !result.OK {
		return response.InternalServerError(c, "Failed to update expense")
	}

	return response.Success(c, "Expense updated successfully", fiber.Map{
		"expense": expense,
	})
}

// Delete handles deleting an expense
// @Summary Delete expense
// @Description Remove a mistakenly recorded expense (Admin only)
// @Tags Expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	expenseID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid expense ID")
	}

	result := h.expenseService.DeleteExpense(c.Context(), expenseID)
	if !result.OK {
		if errors.Is(result.Err, domain.ErrExpenseNotFound) {
			return response.NotFound(c, "Expense not found")
		}
		return response.InternalServerError(c, "Failed to delete expense")
	}

	return response.Success(c, "Expense deleted successfully", nil)
}
