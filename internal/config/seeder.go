package config

import (
	"log"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/core/domain"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedMembershipPlans(); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedMembershipPlans fills the membership_plans catalog with the
// built-in tiers. Existing rows are left alone so price changes made
// through the API survive restarts.
func (s *Seeder) seedMembershipPlans() error {
	for _, tier := range domain.MembershipTypes() {
		var count int64
		s.db.Model(&models.MembershipPlan{}).Where("code = ?", string(tier)).Count(&count)
		if count > 0 {
			continue
		}

		membership := domain.DefaultMembership(tier)
		plan := &models.MembershipPlan{
			Code:           string(tier),
			Name:           membership.Name,
			Price:          membership.Price,
			DurationMonths: membership.DurationMonths,
		}

		if err := s.db.Create(plan).Error; err != nil {
			return err
		}

		log.Printf("✅ Membership plan seeded: %s (%.2f / %d months)",
			plan.Code, plan.Price, plan.DurationMonths)
	}

	return nil
}
