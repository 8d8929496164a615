package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/core/domain"
	"gymdesk/internal/pkg/password"

	"gorm.io/gorm"
)

// MembershipService handles member registration and membership lifecycle
type MembershipService struct {
	memberRepo repositories.MemberRepository
	userRepo   repositories.UserRepository
	txManager  repositories.TxManager
}

// NewMembershipService creates a new membership service
func NewMembershipService(
	memberRepo repositories.MemberRepository,
	userRepo repositories.UserRepository,
	txManager repositories.TxManager,
) *MembershipService {
	return &MembershipService{
		memberRepo: memberRepo,
		userRepo:   userRepo,
		txManager:  txManager,
	}
}

// RegisterMemberInput represents member registration input
type RegisterMemberInput struct {
	Name       string             `json:"name"`
	Username   string             `json:"username"`
	Password   string             `json:"password"`
	Membership *domain.Membership `json:"membership,omitempty"`
	StartDate  *time.Time         `json:"start_date,omitempty"`
	EndDate    *time.Time         `json:"end_date,omitempty"`
}

// RegisterMember registers a new member. The user row and the member
// row are written in one transaction: either both exist afterwards or
// neither does. Missing membership defaults to the Monthly tier, a
// missing start date to today, and a missing end date to the start
// date plus the membership duration.
func (s *MembershipService) RegisterMember(ctx context.Context, input *RegisterMemberInput) (*models.Member, error) {
	if input.Name == "" || input.Username == "" || input.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	membership := input.Membership
	if membership == nil {
		membership = domain.DefaultMembership(domain.MembershipMonthly)
	}

	start := input.StartDate
	if start == nil {
		t := today()
		start = &t
	} else {
		t := startOfDay(*start)
		start = &t
	}

	end := input.EndDate
	if end == nil {
		t := start.AddDate(0, membership.DurationMonths, 0)
		end = &t
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	var member *models.Member
	err = s.txManager.WithinTx(ctx, func(r *repositories.TxRepos) error {
		exists, err := r.Users.ExistsByUsername(ctx, input.Username)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrUsernameTaken
		}

		user := &models.User{
			Name:     input.Name,
			Username: input.Username,
			Password: hashed,
			Role:     string(domain.RoleMember),
		}
		if err := r.Users.Create(ctx, user); err != nil {
			return err
		}

		member = &models.Member{
			UserID:         user.ID,
			MembershipType: string(membership.Type),
			StartDate:      start,
			EndDate:        end,
		}
		member.User = *user
		return r.Members.Create(ctx, member)
	})
	if err != nil {
		return nil, err
	}

	return member, nil
}

// FindMemberByID gets a member by ID
func (s *MembershipService) FindMemberByID(ctx context.Context, memberID uint) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// FindAllMembers lists all members
func (s *MembershipService) FindAllMembers(ctx context.Context) ([]*models.Member, error) {
	return s.memberRepo.FindAll(ctx)
}

// ListMembers lists members with pagination
func (s *MembershipService) ListMembers(ctx context.Context, offset, limit int) ([]*models.Member, int64, error) {
	return s.memberRepo.List(ctx, offset, limit)
}

// FindActiveMembers lists members whose membership is active today
func (s *MembershipService) FindActiveMembers(ctx context.Context) ([]*models.Member, error) {
	return s.memberRepo.FindActive(ctx, today())
}

// UpdateMembership replaces a member's membership. The end date is
// recomputed as today plus the new duration; the start date is kept.
func (s *MembershipService) UpdateMembership(ctx context.Context, memberID uint, newMembership *domain.Membership) (*models.Member, error) {
	member, err := s.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	end := today().AddDate(0, newMembership.DurationMonths, 0)
	member.MembershipType = string(newMembership.Type)
	member.EndDate = &end

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// RenewMembership replaces the membership and restarts the period at
// today. Failures are reported through the Result and logged.
func (s *MembershipService) RenewMembership(ctx context.Context, memberID uint, newMembership *domain.Membership) domain.Result {
	member, err := s.FindMemberByID(ctx, memberID)
	if err != nil {
		log.Printf("renew membership for member %d failed: %v", memberID, err)
		return domain.Fail(err)
	}

	start := today()
	end := start.AddDate(0, newMembership.DurationMonths, 0)
	member.MembershipType = string(newMembership.Type)
	member.StartDate = &start
	member.EndDate = &end

	if err := s.memberRepo.Update(ctx, member); err != nil {
		log.Printf("renew membership for member %d failed: %v", memberID, err)
		return domain.Fail(err)
	}
	return domain.Ok()
}

// CancelMembership ends the membership immediately by moving the end
// date to yesterday. There is no cancelled flag: activity is derived
// purely from the date.
func (s *MembershipService) CancelMembership(ctx context.Context, memberID uint) domain.Result {
	member, err := s.FindMemberByID(ctx, memberID)
	if err != nil {
		log.Printf("cancel membership for member %d failed: %v", memberID, err)
		return domain.Fail(err)
	}

	yesterday := today().AddDate(0, 0, -1)
	member.EndDate = &yesterday

	if err := s.memberRepo.Update(ctx, member); err != nil {
		log.Printf("cancel membership for member %d failed: %v", memberID, err)
		return domain.Fail(err)
	}
	return domain.Ok()
}

// IsMemberActive reports whether the member's end date is strictly
// after today. A membership expiring exactly today is inactive.
func (s *MembershipService) IsMemberActive(member *models.Member) bool {
	return member.EndDate != nil && member.EndDate.After(today())
}

// IsMembershipActive reports whether the membership of the member with
// the given id is active; unknown members are inactive.
func (s *MembershipService) IsMembershipActive(ctx context.Context, memberID uint) bool {
	member, err := s.FindMemberByID(ctx, memberID)
	if err != nil {
		return false
	}
	return s.IsMemberActive(member)
}

// FindMembersExpiringSoon lists active members whose end date lies
// strictly between today and today plus the given number of days.
func (s *MembershipService) FindMembersExpiringSoon(ctx context.Context, days int) ([]*models.Member, error) {
	from := today()
	to := from.AddDate(0, 0, days)
	return s.memberRepo.FindExpiringBetween(ctx, from, to)
}

// CalculatePrice computes the price of a membership after its tier
// discount.
//
// TODO: confirm with the product owner — Discount() is an absolute
// currency amount (price × rate) but is applied here as if it were a
// rate, so annual and VIP tiers come out hugely negative. The observed
// behavior is preserved until the correct formula is confirmed.
func (s *MembershipService) CalculatePrice(membership *domain.Membership) float64 {
	basePrice := membership.Price
	discount := membership.Discount()
	return basePrice * (1 - discount)
}

// CreateMembership builds a membership of the given tier name
// (case-insensitive) at the given price.
func (s *MembershipService) CreateMembership(membershipType string, price float64) (*domain.Membership, error) {
	return domain.NewMembership(membershipType, price)
}

// GetTotalActiveMembers counts members active today
func (s *MembershipService) GetTotalActiveMembers(ctx context.Context) (int, error) {
	members, err := s.FindActiveMembers(ctx)
	if err != nil {
		return 0, err
	}
	return len(members), nil
}

// GetMembershipRevenueByType sums the discounted price of every member
// currently on the given tier.
func (s *MembershipService) GetMembershipRevenueByType(ctx context.Context, membershipType string) (float64, error) {
	members, err := s.memberRepo.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, m := range members {
		if strings.EqualFold(m.MembershipType, membershipType) {
			total += s.CalculatePrice(m.Membership())
		}
	}
	return total, nil
}
