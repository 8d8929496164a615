package repositories

import (
	"context"
	"time"

	"gymdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// paymentRepository implements PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create creates a new payment
func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// GetByID gets a payment by ID
func (r *paymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// Update updates a payment, failing if the id does not exist
func (r *paymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	res := r.db.WithContext(ctx).Save(payment)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a payment, reporting whether a row was removed
func (r *paymentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Payment{}, id)
	return res.RowsAffected > 0, res.Error
}

// FindAll lists all payments
func (r *paymentRepository) FindAll(ctx context.Context) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).Find(&payments).Error
	return payments, err
}

// FindByMemberID lists a member's payments
func (r *paymentRepository) FindByMemberID(ctx context.Context, memberID uint) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).Where("member_id = ?", memberID).Find(&payments).Error
	return payments, err
}

// FindByType lists payments of a given type
func (r *paymentRepository) FindByType(ctx context.Context, paymentType string) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).Where("type = ?", paymentType).Find(&payments).Error
	return payments, err
}

// FindByDateRange lists payments dated within [start, end] inclusive
func (r *paymentRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Find(&payments).Error
	return payments, err
}

// FindByMonth lists payments dated in the given calendar month
func (r *paymentRepository) FindByMonth(ctx context.Context, month, year int) ([]*models.Payment, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start, end).
		Find(&payments).Error
	return payments, err
}

// FindSince lists payments dated strictly after the cutoff, newest first
func (r *paymentRepository) FindSince(ctx context.Context, cutoff time.Time) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Where("date > ?", cutoff).
		Order("date DESC").
		Find(&payments).Error
	return payments, err
}

// List lists payments with pagination, newest first
func (r *paymentRepository) List(ctx context.Context, offset, limit int) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Payment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Order("date DESC").Offset(offset).Limit(limit).Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}
