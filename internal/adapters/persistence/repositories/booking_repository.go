package repositories

import (
	"context"
	"time"

	"gymdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bookingRepository implements BookingRepository interface
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create creates a new booking
func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// GetByID gets a booking by ID
func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Update updates a booking, failing if the id does not exist
func (r *bookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	res := r.db.WithContext(ctx).Save(booking)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a booking, reporting whether a row was removed
func (r *bookingRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Booking{}, id)
	return res.RowsAffected > 0, res.Error
}

// FindAll lists all bookings
func (r *bookingRepository) FindAll(ctx context.Context) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).Find(&bookings).Error
	return bookings, err
}

// FindByMemberID lists a member's bookings
func (r *bookingRepository) FindByMemberID(ctx context.Context, memberID uint) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).Where("member_id = ?", memberID).Find(&bookings).Error
	return bookings, err
}

// FindByClassName lists bookings for a class
func (r *bookingRepository) FindByClassName(ctx context.Context, className string) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).Where("class_name = ?", className).Find(&bookings).Error
	return bookings, err
}

// FindByStatus lists bookings in a given status
func (r *bookingRepository) FindByStatus(ctx context.Context, status string) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).Where("status = ?", status).Find(&bookings).Error
	return bookings, err
}

// FindByDateRange lists bookings whose class time falls in [start, end]
func (r *bookingRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Where("class_time >= ? AND class_time <= ?", start, end).
		Order("class_time ASC").
		Find(&bookings).Error
	return bookings, err
}

// FindBookedInWindow lists a member's BOOKED bookings whose class time
// falls in [start, end] inclusive. Used for conflict detection.
func (r *bookingRepository) FindBookedInWindow(ctx context.Context, memberID uint, start, end time.Time) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND status = ? AND class_time >= ? AND class_time <= ?",
			memberID, "BOOKED", start, end).
		Find(&bookings).Error
	return bookings, err
}

// FindBookedBefore lists BOOKED bookings whose class time is before the
// cutoff. Used for missed-checkout detection.
func (r *bookingRepository) FindBookedBefore(ctx context.Context, cutoff time.Time) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND class_time < ?", "BOOKED", cutoff).
		Find(&bookings).Error
	return bookings, err
}

// CountByStatus counts bookings in a given status
func (r *bookingRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// Count counts all bookings
func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).Count(&count).Error
	return count, err
}
