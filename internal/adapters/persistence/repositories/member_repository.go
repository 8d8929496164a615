package repositories

import (
	"context"
	"time"

	"gymdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// memberRepository implements MemberRepository interface
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create creates a new member row
func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetByID gets a member with its user record
func (r *memberRepository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByUserID gets the member row tied to a user
func (r *memberRepository) GetByUserID(ctx context.Context, userID uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Update updates a member, failing if the id does not exist
func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	res := r.db.WithContext(ctx).Save(member)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a member, reporting whether a row was removed
func (r *memberRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Member{}, id)
	return res.RowsAffected > 0, res.Error
}

// FindAll lists all members with their user records
func (r *memberRepository) FindAll(ctx context.Context) ([]*models.Member, error) {
	var members []*models.Member
	err := r.db.WithContext(ctx).Preload("User").Find(&members).Error
	return members, err
}

// FindActive lists members whose end date is strictly after today
func (r *memberRepository) FindActive(ctx context.Context, today time.Time) ([]*models.Member, error) {
	var members []*models.Member
	err := r.db.WithContext(ctx).Preload("User").
		Where("end_date > ?", today).
		Find(&members).Error
	return members, err
}

// FindExpiringBetween lists members whose end date lies strictly
// between from and to
func (r *memberRepository) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.Member, error) {
	var members []*models.Member
	err := r.db.WithContext(ctx).Preload("User").
		Where("end_date > ? AND end_date < ?", from, to).
		Order("end_date ASC").
		Find(&members).Error
	return members, err
}

// List lists members with pagination
func (r *memberRepository) List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error) {
	var members []*models.Member
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Member{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Preload("User").Offset(offset).Limit(limit).Find(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, total, nil
}
