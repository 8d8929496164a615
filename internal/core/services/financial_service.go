package services

import (
	"context"
	"sort"
	"time"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/core/domain"
)

// FinancialService aggregates payments and expenses into reports,
// margins and growth rates. Reports are always recomputed from the
// source records, never stored.
type FinancialService struct {
	paymentRepo repositories.PaymentRepository
	expenseRepo repositories.ExpenseRepository
}

// NewFinancialService creates a new financial service
func NewFinancialService(
	paymentRepo repositories.PaymentRepository,
	expenseRepo repositories.ExpenseRepository,
) *FinancialService {
	return &FinancialService{
		paymentRepo: paymentRepo,
		expenseRepo: expenseRepo,
	}
}

// GenerateMonthlyReport sums payments and expenses for one calendar
// month.
func (s *FinancialService) GenerateMonthlyReport(ctx context.Context, month, year int) (*domain.FinancialReport, error) {
	payments, err := s.paymentRepo.FindByMonth(ctx, month, year)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.FindByMonth(ctx, month, year)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, -1)
	return buildReport(start, end, payments, expenses), nil
}

// GenerateDateRangeReport sums payments and expenses dated within
// [start, end] inclusive.
func (s *FinancialService) GenerateDateRangeReport(ctx context.Context, start, end time.Time) (*domain.FinancialReport, error) {
	payments, err := s.paymentRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return buildReport(start, end, payments, expenses), nil
}

// GenerateAnnualReport sums payments and expenses for one calendar
// year.
func (s *FinancialService) GenerateAnnualReport(ctx context.Context, year int) (*domain.FinancialReport, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local)
	return s.GenerateDateRangeReport(ctx, start, end)
}

// CalculateProfitMargin returns net profit over revenue as a
// percentage for the period, or 0 when there is no revenue.
func (s *FinancialService) CalculateProfitMargin(ctx context.Context, start, end time.Time) (float64, error) {
	report, err := s.GenerateDateRangeReport(ctx, start, end)
	if err != nil {
		return 0, err
	}
	if report.TotalRevenue == 0 {
		return 0, nil
	}
	return report.NetProfit() / report.TotalRevenue * 100, nil
}

// CalculateYearOverYearGrowth returns the revenue growth of one year
// over another as a percentage, or 0 when the prior year had no
// revenue.
func (s *FinancialService) CalculateYearOverYearGrowth(ctx context.Context, currentYear, previousYear int) (float64, error) {
	current, err := s.GenerateAnnualReport(ctx, currentYear)
	if err != nil {
		return 0, err
	}
	previous, err := s.GenerateAnnualReport(ctx, previousYear)
	if err != nil {
		return 0, err
	}

	if previous.TotalRevenue == 0 {
		return 0, nil
	}
	return (current.TotalRevenue - previous.TotalRevenue) / previous.TotalRevenue * 100, nil
}

// GetRevenueByPaymentType sums payments of one type dated within the
// period.
func (s *FinancialService) GetRevenueByPaymentType(ctx context.Context, paymentType domain.PaymentType, start, end time.Time) (float64, error) {
	payments, err := s.paymentRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, p := range payments {
		if p.Type == string(paymentType) {
			total += p.Amount
		}
	}
	return total, nil
}

// GetExpensesByCategory sums expenses of one category dated within
// the period.
func (s *FinancialService) GetExpensesByCategory(ctx context.Context, category domain.ExpenseCategory, start, end time.Time) (float64, error) {
	expenses, err := s.expenseRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, e := range expenses {
		if e.Category == string(category) {
			total += e.Amount
		}
	}
	return total, nil
}

// GetTopPaymentsByAmount lists the largest payments, biggest first
func (s *FinancialService) GetTopPaymentsByAmount(ctx context.Context, limit int) ([]*models.Payment, error) {
	payments, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(payments, func(i, j int) bool {
		return payments[i].Amount > payments[j].Amount
	})
	if limit < len(payments) {
		payments = payments[:limit]
	}
	return payments, nil
}

// GetTopExpensesByAmount lists the largest expenses, biggest first
func (s *FinancialService) GetTopExpensesByAmount(ctx context.Context, limit int) ([]*models.Expense, error) {
	expenses, err := s.expenseRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].Amount > expenses[j].Amount
	})
	if limit < len(expenses) {
		expenses = expenses[:limit]
	}
	return expenses, nil
}

// GetAverageMonthlyRevenue returns the mean monthly revenue across
// all twelve months of the year.
func (s *FinancialService) GetAverageMonthlyRevenue(ctx context.Context, year int) (float64, error) {
	var total float64
	for month := 1; month <= 12; month++ {
		payments, err := s.paymentRepo.FindByMonth(ctx, month, year)
		if err != nil {
			return 0, err
		}
		for _, p := range payments {
			total += p.Amount
		}
	}
	return total / 12, nil
}

// GetAverageMonthlyExpenses returns the mean monthly expenses across
// all twelve months of the year.
func (s *FinancialService) GetAverageMonthlyExpenses(ctx context.Context, year int) (float64, error) {
	var total float64
	for month := 1; month <= 12; month++ {
		expenses, err := s.expenseRepo.FindByMonth(ctx, month, year)
		if err != nil {
			return 0, err
		}
		for _, e := range expenses {
			total += e.Amount
		}
	}
	return total / 12, nil
}

// IsProfitable reports whether the period's net profit is positive
func (s *FinancialService) IsProfitable(ctx context.Context, start, end time.Time) (bool, error) {
	report, err := s.GenerateDateRangeReport(ctx, start, end)
	if err != nil {
		return false, err
	}
	return report.NetProfit() > 0, nil
}

// GetRevenueGrowthRate splits the trailing window of the given number
// of months at its midpoint and returns the second half's revenue
// growth over the first as a percentage, or 0 when the first half had
// no revenue.
func (s *FinancialService) GetRevenueGrowthRate(ctx context.Context, months int) (float64, error) {
	end := today()
	start := end.AddDate(0, -months, 0)
	mid := start.AddDate(0, months/2, 0)

	firstHalf, err := s.revenueBetween(ctx, start, mid)
	if err != nil {
		return 0, err
	}
	secondHalf, err := s.revenueBetween(ctx, mid, end)
	if err != nil {
		return 0, err
	}

	if firstHalf == 0 {
		return 0, nil
	}
	return (secondHalf - firstHalf) / firstHalf * 100, nil
}

func (s *FinancialService) revenueBetween(ctx context.Context, start, end time.Time) (float64, error) {
	payments, err := s.paymentRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total, nil
}

// GetProfitableMonths returns the first day of every month of the
// year in which a payment occurred and the month's net profit was
// positive, in calendar order.
func (s *FinancialService) GetProfitableMonths(ctx context.Context, year int) ([]time.Time, error) {
	payments, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[time.Month]bool)
	var months []time.Month
	for _, p := range payments {
		if p.Date.Year() != year || seen[p.Date.Month()] {
			continue
		}
		seen[p.Date.Month()] = true
		months = append(months, p.Date.Month())
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })

	var profitable []time.Time
	for _, month := range months {
		report, err := s.GenerateMonthlyReport(ctx, int(month), year)
		if err != nil {
			return nil, err
		}
		if report.NetProfit() > 0 {
			profitable = append(profitable, time.Date(year, month, 1, 0, 0, 0, 0, time.Local))
		}
	}
	return profitable, nil
}

// GetExpenseToRevenueRatio returns expenses over revenue for the
// period. A period with no revenue has no meaningful ratio and yields
// ErrNoRevenue instead of a sentinel value.
func (s *FinancialService) GetExpenseToRevenueRatio(ctx context.Context, start, end time.Time) (float64, error) {
	report, err := s.GenerateDateRangeReport(ctx, start, end)
	if err != nil {
		return 0, err
	}
	if report.TotalRevenue == 0 {
		return 0, domain.ErrNoRevenue
	}
	return report.TotalExpenses / report.TotalRevenue, nil
}

func buildReport(start, end time.Time, payments []*models.Payment, expenses []*models.Expense) *domain.FinancialReport {
	report := &domain.FinancialReport{
		PeriodStart:  start,
		PeriodEnd:    end,
		PaymentCount: len(payments),
		ExpenseCount: len(expenses),
	}
	for _, p := range payments {
		report.TotalRevenue += p.Amount
	}
	for _, e := range expenses {
		report.TotalExpenses += e.Amount
	}
	return report
}
