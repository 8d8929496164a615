package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/core/domain"

	"gorm.io/gorm"
)

// ExpenseService handles manual expense entry. Expenses carry no
// derived state; everything beyond CRUD lives in the financial
// reporting service.
type ExpenseService struct {
	expenseRepo repositories.ExpenseRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repositories.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// RecordExpenseInput represents expense entry input
type RecordExpenseInput struct {
	Description string                 `json:"description"`
	Amount      float64                `json:"amount"`
	Date        *time.Time             `json:"date,omitempty"`
	Category    domain.ExpenseCategory `json:"category"`
}

// RecordExpense records a new expense, dated today when no date is
// given.
func (s *ExpenseService) RecordExpense(ctx context.Context, input *RecordExpenseInput) (*models.Expense, error) {
	if input.Description == "" || input.Amount <= 0 || !input.Category.IsValid() {
		return nil, domain.ErrInvalidInput
	}

	date := today()
	if input.Date != nil {
		date = startOfDay(*input.Date)
	}

	expense := &models.Expense{
		Description: input.Description,
		Amount:      input.Amount,
		Date:        date,
		Category:    string(input.Category),
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// FindExpenseByID gets an expense by ID
func (s *ExpenseService) FindExpenseByID(ctx context.Context, id uint) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// UpdateExpense corrects a recorded expense. Failures are reported
// through the Result and logged.
func (s *ExpenseService) UpdateExpense(ctx context.Context, expense *models.Expense) domain.Result {
	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		log.Printf("update expense %d failed: %v", expense.ID, err)
		return domain.Fail(err)
	}
	return domain.Ok()
}

// DeleteExpense removes an expense. Failures and missing rows are
// reported through the Result and logged.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uint) domain.Result {
	removed, err := s.expenseRepo.Delete(ctx, id)
	if err != nil {
		log.Printf("delete expense %d failed: %v", id, err)
		return domain.Fail(err)
	}
	if !removed {
		return domain.Fail(domain.ErrExpenseNotFound)
	}
	return domain.Ok()
}

// GetAllExpenses lists all expenses
func (s *ExpenseService) GetAllExpenses(ctx context.Context) ([]*models.Expense, error) {
	return s.expenseRepo.FindAll(ctx)
}

// ListExpenses lists expenses with pagination, newest first
func (s *ExpenseService) ListExpenses(ctx context.Context, offset, limit int) ([]*models.Expense, int64, error) {
	return s.expenseRepo.List(ctx, offset, limit)
}

// GetExpensesByCategory lists expenses in a category
func (s *ExpenseService) GetExpensesByCategory(ctx context.Context, category domain.ExpenseCategory) ([]*models.Expense, error) {
	return s.expenseRepo.FindByCategory(ctx, string(category))
}

// GetExpensesByDateRange lists expenses dated within [start, end]
func (s *ExpenseService) GetExpensesByDateRange(ctx context.Context, start, end time.Time) ([]*models.Expense, error) {
	return s.expenseRepo.FindByDateRange(ctx, start, end)
}

// GetExpensesByMonth lists expenses dated in the given month
func (s *ExpenseService) GetExpensesByMonth(ctx context.Context, month, year int) ([]*models.Expense, error) {
	return s.expenseRepo.FindByMonth(ctx, month, year)
}
