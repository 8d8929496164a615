package repositories

import (
	"context"

	"gymdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// membershipPlanRepository implements MembershipPlanRepository interface
type membershipPlanRepository struct {
	db *gorm.DB
}

// NewMembershipPlanRepository creates a new membership plan repository
func NewMembershipPlanRepository(db *gorm.DB) MembershipPlanRepository {
	return &membershipPlanRepository{db: db}
}

// Create creates a new plan
func (r *membershipPlanRepository) Create(ctx context.Context, plan *models.MembershipPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

// GetByCode gets a plan by its tier code
func (r *membershipPlanRepository) GetByCode(ctx context.Context, code string) (*models.MembershipPlan, error) {
	var plan models.MembershipPlan
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Update updates a plan, failing if the id does not exist
func (r *membershipPlanRepository) Update(ctx context.Context, plan *models.MembershipPlan) error {
	res := r.db.WithContext(ctx).Save(plan)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindAll lists all plans
func (r *membershipPlanRepository) FindAll(ctx context.Context) ([]*models.MembershipPlan, error) {
	var plans []*models.MembershipPlan
	err := r.db.WithContext(ctx).Order("id ASC").Find(&plans).Error
	return plans, err
}
