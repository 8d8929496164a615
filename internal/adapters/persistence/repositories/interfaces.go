package repositories

import (
	"context"
	"time"

	"gymdesk/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// MemberRepository defines member repository interface
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id uint) (bool, error)
	FindAll(ctx context.Context) ([]*models.Member, error)
	FindActive(ctx context.Context, today time.Time) ([]*models.Member, error)
	FindExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.Member, error)
	List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error)
}

// BookingRepository defines booking repository interface
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id uint) (bool, error)
	FindAll(ctx context.Context) ([]*models.Booking, error)
	FindByMemberID(ctx context.Context, memberID uint) ([]*models.Booking, error)
	FindByClassName(ctx context.Context, className string) ([]*models.Booking, error)
	FindByStatus(ctx context.Context, status string) ([]*models.Booking, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error)
	FindBookedInWindow(ctx context.Context, memberID uint, start, end time.Time) ([]*models.Booking, error)
	FindBookedBefore(ctx context.Context, cutoff time.Time) ([]*models.Booking, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// PaymentRepository defines payment repository interface
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
	Delete(ctx context.Context, id uint) (bool, error)
	FindAll(ctx context.Context) ([]*models.Payment, error)
	FindByMemberID(ctx context.Context, memberID uint) ([]*models.Payment, error)
	FindByType(ctx context.Context, paymentType string) ([]*models.Payment, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*models.Payment, error)
	FindByMonth(ctx context.Context, month, year int) ([]*models.Payment, error)
	FindSince(ctx context.Context, cutoff time.Time) ([]*models.Payment, error)
	List(ctx context.Context, offset, limit int) ([]*models.Payment, int64, error)
}

// ExpenseRepository defines expense repository interface
type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, id uint) (*models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id uint) (bool, error)
	FindAll(ctx context.Context) ([]*models.Expense, error)
	FindByCategory(ctx context.Context, category string) ([]*models.Expense, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*models.Expense, error)
	FindByMonth(ctx context.Context, month, year int) ([]*models.Expense, error)
	List(ctx context.Context, offset, limit int) ([]*models.Expense, int64, error)
}

// MembershipPlanRepository defines membership plan repository interface
type MembershipPlanRepository interface {
	Create(ctx context.Context, plan *models.MembershipPlan) error
	GetByCode(ctx context.Context, code string) (*models.MembershipPlan, error)
	Update(ctx context.Context, plan *models.MembershipPlan) error
	FindAll(ctx context.Context) ([]*models.MembershipPlan, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}
