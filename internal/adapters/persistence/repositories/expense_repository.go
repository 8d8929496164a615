package repositories

import (
	"context"
	"time"

	"gymdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// expenseRepository implements ExpenseRepository interface
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

// Create creates a new expense
func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

// GetByID gets an expense by ID
func (r *expenseRepository) GetByID(ctx context.Context, id uint) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&expense).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// Update updates an expense, failing if the id does not exist
func (r *expenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	res := r.db.WithContext(ctx).Save(expense)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an expense, reporting whether a row was removed
func (r *expenseRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Expense{}, id)
	return res.RowsAffected > 0, res.Error
}

// FindAll lists all expenses
func (r *expenseRepository) FindAll(ctx context.Context) ([]*models.Expense, error) {
	var expenses []*models.Expense
	err := r.db.WithContext(ctx).Find(&expenses).Error
	return expenses, err
}

// FindByCategory lists expenses in a category
func (r *expenseRepository) FindByCategory(ctx context.Context, category string) ([]*models.Expense, error) {
	var expenses []*models.Expense
	err := r.db.WithContext(ctx).Where("category = ?", category).Find(&expenses).Error
	return expenses, err
}

// FindByDateRange lists expenses dated within [start, end] inclusive
func (r *expenseRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*models.Expense, error) {
	var expenses []*models.Expense
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Find(&expenses).Error
	return expenses, err
}

// FindByMonth lists expenses dated in the given calendar month
func (r *expenseRepository) FindByMonth(ctx context.Context, month, year int) ([]*models.Expense, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	var expenses []*models.Expense
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start, end).
		Find(&expenses).Error
	return expenses, err
}

// List lists expenses with pagination, newest first
func (r *expenseRepository) List(ctx context.Context, offset, limit int) ([]*models.Expense, int64, error) {
	var expenses []*models.Expense
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Expense{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Order("date DESC").Offset(offset).Limit(limit).Find(&expenses).Error; err != nil {
		return nil, 0, err
	}

	return expenses, total, nil
}
