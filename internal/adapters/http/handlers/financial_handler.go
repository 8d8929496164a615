package handlers

import (
	"errors"
	"time"

	"gymdesk/internal/core/domain"
	"gymdesk/internal/core/services"
	"gymdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FinancialHandler handles financial reporting endpoints
type FinancialHandler struct {
	financialService *services.FinancialService
}

// NewFinancialHandler creates a new financial handler
func NewFinancialHandler(financialService *services.FinancialService) *FinancialHandler {
	return &FinancialHandler{financialService: financialService}
}

// MonthlyReport handles monthly report generation
// @Summary Monthly financial report
// @Description Revenue, expenses, and net profit for one calendar month
// @Tags Financial
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /financial/reports/monthly [get]
func (h *FinancialHandler) MonthlyReport(c *fiber.Ctx) error {
	month := c.QueryInt("month")
	year := c.QueryInt("year")
	if month < 1 || month > 12 || year < 1 {
		return response.BadRequest(c, "Invalid month or year")
	}

	report, err := h.financialService.GenerateMonthlyReport(c.Context(), month, year)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate report")
	}

	return response.Success(c, "Report generated successfully", fiber.Map{
		"report":     report,
		"net_profit": report.NetProfit(),
	})
}

// AnnualReport handles annual report generation
// @Summary Annual financial report
// @Description Revenue, expenses, and net profit for one calendar year
// @Tags Financial
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param year query int true "Year"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /financial/reports/annual [get]
func (h *FinancialHandler) AnnualReport(c *fiber.Ctx) error {
	year := c.QueryInt("year")
	if year < 1 {
		return response.BadRequest(c, "Invalid year")
	}

	report, err := h.financialService.GenerateAnnualReport(c.Context(), year)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate report")
	}

	return response.Success(c, "Report generated successfully", fiber.Map{
		"report":     report,
		"net_profit": report.NetProfit(),
	})
}

// RangeReport handles date range report generation
// @Summary Date range financial report
// @Description Revenue, expenses, and net profit for an inclusive date range
// @Tags Financial
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /financial/reports/range [get]
func (h *FinancialHandler) RangeReport(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return response.BadRequest(c, "Invalid date range")
	}

	report, err := h.financialService.GenerateDateRangeReport(c.Context(), start, end)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate report")
	}

	margin, err := h.financialService.CalculateProfitMargin(c.Context(), start, end)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate report")
	}

	profitable, err := h.financialService.IsProfitable(c.Context(), start, end)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate report")
	}

	return response.Success(c, "Report generated successfully", fiber.Map{
		"report":        report,
		"net_profit":    report.NetProfit(),
		"profit_margin": margin,
		"profitable":    profitable,
	})
}

// ExpenseRatio handles the expense-to-revenue ratio
// @Summary Expense to revenue ratio
// @Description Expenses over revenue for a date range; 409 when the period has no revenue
// @Tags Financial
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /financial/expense-ratio [get]
func (h *FinancialHandler) ExpenseRatio(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return response.BadRequest(c, "Invalid date range")
	}

	ratio, err := h.financialService.GetExpenseToRevenueRatio(c.Context(), start, end)
	if err != nil {
		if errors.Is(err, domain.ErrNoRevenue) {
			return response.Conflict(c, "No revenue in the selected period")
		}
		return response.InternalServerError(c, "Failed to compute ratio")
	}

	return response.Success(c, "Ratio computed successfully", fiber.Map{
		"expense_to_revenue_ratio": ratio,
	})
}

// Growth handles growth rate metrics
// @Summary Revenue growth
// @Description Year-over-year growth (current+previous year) or trailing growth rate (months)
// @Tags Financial
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param current_year query int false "Current year"
// @Param previous_year query int false "Previous year"
// @Param months query int false "Trailing window in months"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /financial/growth [get]
func (h *FinancialHandler) Growth(c *fiber.Ctx) error {
	if c.Query("current_year") != "" && c.Query("previous_year") != "" {
		currentYear := c.QueryInt("current_year")
		previousYear := c.QueryInt("previous_year")
		if currentYear < 1 || previousYear < 1 {
			return response.BadRequest(c, "Invalid years")
		}

		growth, err := h.financialService.CalculateYearOverYearGrowth(c.Context(), currentYear, previousYear)
		if err != nil {
			return response.InternalServerError(c, "Failed to compute growth")
		}
		return response.Success(c, "Growth computed successfully", fiber.Map{
			"year_over_year_growth": growth,
		})
	}

	months := c.QueryInt("months", 6)
	if months < 2 {
		return response.BadRequest(c, "Months must be at least 2")
	}

	growth, err := h.financialService.GetRevenueGrowthRate(c.Context(), months)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute growth")
	}

	return response.Success(c, "Growth computed successfully", fiber.Map{
		"revenue_growth_rate": growth,
	})
}

// ProfitableMonths handles listing profitable months of a year
// @Summary Profitable months
// @Description List the months of a year whose net profit was positive
// @Tags Financial
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param year query int true "Year"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /financial/profitable-months [get]
func (h *FinancialHandler) ProfitableMonths(c *fiber.Ctx) error {
	year := c.QueryInt("year")
	if year < 1 {
		return response.BadRequest(c, "Invalid year")
	}

	months, err := h.financialService.GetProfitableMonths(c.Context(), year)
	if err != nil {
		return response.InternalServerError(c, "Failed to list profitable months")
	}

	return response.Success(c, "Profitable months retrieved successfully", fiber.Map{
		"months": months,
	})
}

// TopEntries handles listing the largest payments and expenses
// @Summary Top payments and expenses
// @Description List the largest payments and expenses on record
// @Tags Financial
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of entries (default 5)"
// @Success 200 {object} response.Response
// @Router /financial/top [get]
func (h *FinancialHandler) TopEntries(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 5)
	if limit < 1 {
		return response.BadRequest(c, "Invalid limit")
	}

	payments, err := h.financialService.GetTopPaymentsByAmount(c.Context(), limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list top entries")
	}

	expenses, err := h.financialService.GetTopExpensesByAmount(c.Context(), limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list top entries")
	}

	return response.Success(c, "Top entries retrieved successfully", fiber.Map{
		"payments": payments,
		"expenses": expenses,
	})
}

// MonthlyAverages handles yearly average metrics
// @Summary Monthly averages
// @Description Average monthly revenue and expenses across a year
// @Tags Financial
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param year query int true "Year"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /financial/averages [get]
func (h *FinancialHandler) MonthlyAverages(c *fiber.Ctx) error {
	year := c.QueryInt("year")
	if year < 1 {
		return response.BadRequest(c, "Invalid year")
	}

	revenue, err := h.financialService.GetAverageMonthlyRevenue(c.Context(), year)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute averages")
	}

	expenses, err := h.financialService.GetAverageMonthlyExpenses(c.Context(), year)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute averages")
	}

	return response.Success(c, "Averages computed successfully", fiber.Map{
		"average_monthly_revenue":  revenue,
		"average_monthly_expenses": expenses,
	})
}

// parseDateRange parses from/to query parameters as dates
func parseDateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
