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

// BillingService records payments and aggregates payment statistics
type BillingService struct {
	paymentRepo       repositories.PaymentRepository
	memberRepo        repositories.MemberRepository
	membershipService *MembershipService
	txManager         repositories.TxManager
}

// NewBillingService creates a new billing service
func NewBillingService(
	paymentRepo repositories.PaymentRepository,
	memberRepo repositories.MemberRepository,
	membershipService *MembershipService,
	txManager repositories.TxManager,
) *BillingService {
	return &BillingService{
		paymentRepo:       paymentRepo,
		memberRepo:        memberRepo,
		membershipService: membershipService,
		txManager:         txManager,
	}
}

// RecordMembershipPayment records a membership payment dated today
func (s *BillingService) RecordMembershipPayment(ctx context.Context, memberID uint, amount float64) (*models.Payment, error) {
	return s.recordPayment(ctx, memberID, amount, domain.PaymentMembership)
}

// RecordClassPayment records a class payment dated today
func (s *BillingService) RecordClassPayment(ctx context.Context, memberID uint, amount float64) (*models.Payment, error) {
	return s.recordPayment(ctx, memberID, amount, domain.PaymentClass)
}

// RecordOtherPayment records a miscellaneous payment dated today
func (s *BillingService) RecordOtherPayment(ctx context.Context, memberID uint, amount float64) (*models.Payment, error) {
	return s.recordPayment(ctx, memberID, amount, domain.PaymentOther)
}

func (s *BillingService) recordPayment(ctx context.Context, memberID uint, amount float64, paymentType domain.PaymentType) (*models.Payment, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	payment := &models.Payment{
		MemberID: memberID,
		Amount:   amount,
		Date:     today(),
		Type:     string(paymentType),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// CalculateMembershipFee computes the fee for a membership using the
// tier pricing formula.
func (s *BillingService) CalculateMembershipFee(membership *domain.Membership) float64 {
	return s.membershipService.CalculatePrice(membership)
}

// ProcessMembershipRenewal records the renewal fee and renews the
// membership in a single transaction: if the renewal cannot be
// applied, the payment is rolled back with it. The Result keeps the
// boolean-success surface; the cause is retained and logged.
func (s *BillingService) ProcessMembershipRenewal(ctx context.Context, memberID uint, newMembership *domain.Membership) domain.Result {
	fee := s.CalculateMembershipFee(newMembership)

	err := s.txManager.WithinTx(ctx, func(r *repositories.TxRepos) error {
		member, err := r.Members.GetByID(ctx, memberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMemberNotFound
			}
			return err
		}

		payment := &models.Payment{
			MemberID: memberID,
			Amount:   fee,
			Date:     today(),
			Type:     string(domain.PaymentMembership),
		}
		if err := r.Payments.Create(ctx, payment); err != nil {
			return err
		}

		start := today()
		end := start.AddDate(0, newMembership.DurationMonths, 0)
		member.MembershipType = string(newMembership.Type)
		member.StartDate = &start
		member.EndDate = &end
		return r.Members.Update(ctx, member)
	})
	if err != nil {
		log.Printf("membership renewal for member %d failed: %v", memberID, err)
		return domain.Fail(err)
	}
	return domain.Ok()
}

// FindPaymentByID gets a payment by ID
func (s *BillingService) FindPaymentByID(ctx context.Context, id uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

// UpdatePayment corrects a recorded payment. Failures are reported
// through the Result and logged.
func (s *BillingService) UpdatePayment(ctx context.Context, payment *models.Payment) domain.Result {
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		log.Printf("update payment %d failed: %v", payment.ID, err)
		return domain.Fail(err)
	}
	return domain.Ok()
}

// DeletePayment removes a payment. Failures and missing rows are
// reported through the Result and logged.
func (s *BillingService) DeletePayment(ctx context.Context, paymentID uint) domain.Result {
	removed, err := s.paymentRepo.Delete(ctx, paymentID)
	if err != nil {
		log.Printf("delete payment %d failed: %v", paymentID, err)
		return domain.Fail(err)
	}
	if !removed {
		return domain.Fail(domain.ErrPaymentNotFound)
	}
	return domain.Ok()
}

// GetAllPayments lists all payments
func (s *BillingService) GetAllPayments(ctx context.Context) ([]*models.Payment, error) {
	return s.paymentRepo.FindAll(ctx)
}

// ListPayments lists payments with pagination, newest first
func (s *BillingService) ListPayments(ctx context.Context, offset, limit int) ([]*models.Payment, int64, error) {
	return s.paymentRepo.List(ctx, offset, limit)
}

// GetPaymentsByMember lists a member's payments
func (s *BillingService) GetPaymentsByMember(ctx context.Context, memberID uint) ([]*models.Payment, error) {
	return s.paymentRepo.FindByMemberID(ctx, memberID)
}

// GetPaymentsByType lists payments of a type
func (s *BillingService) GetPaymentsByType(ctx context.Context, paymentType domain.PaymentType) ([]*models.Payment, error) {
	return s.paymentRepo.FindByType(ctx, string(paymentType))
}

// GetPaymentsByDateRange lists payments dated within [start, end]
func (s *BillingService) GetPaymentsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Payment, error) {
	return s.paymentRepo.FindByDateRange(ctx, start, end)
}

// GetPaymentsByMonth lists payments dated in the given month
func (s *BillingService) GetPaymentsByMonth(ctx context.Context, month, year int) ([]*models.Payment, error) {
	return s.paymentRepo.FindByMonth(ctx, month, year)
}

// GetRecentPayments lists payments dated within the last N days,
// newest first.
func (s *BillingService) GetRecentPayments(ctx context.Context, days int) ([]*models.Payment, error) {
	cutoff := today().AddDate(0, 0, -days)
	return s.paymentRepo.FindSince(ctx, cutoff)
}

// GetTotalPaymentsByMember sums all payments made by a member
func (s *BillingService) GetTotalPaymentsByMember(ctx context.Context, memberID uint) (float64, error) {
	payments, err := s.paymentRepo.FindByMemberID(ctx, memberID)
	if err != nil {
		return 0, err
	}
	return sumPayments(payments), nil
}

// GetTotalPaymentsByMemberAndType sums a member's payments of a type
func (s *BillingService) GetTotalPaymentsByMemberAndType(ctx context.Context, memberID uint, paymentType domain.PaymentType) (float64, error) {
	payments, err := s.paymentRepo.FindByMemberID(ctx, memberID)
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

// GetTotalRevenue sums all payments ever recorded
func (s *BillingService) GetTotalRevenue(ctx context.Context) (float64, error) {
	payments, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	return sumPayments(payments), nil
}

// GetRevenueByType sums payments of a type
func (s *BillingService) GetRevenueByType(ctx context.Context, paymentType domain.PaymentType) (float64, error) {
	payments, err := s.paymentRepo.FindByType(ctx, string(paymentType))
	if err != nil {
		return 0, err
	}
	return sumPayments(payments), nil
}

// GetRevenueByDateRange sums payments dated within [start, end]
func (s *BillingService) GetRevenueByDateRange(ctx context.Context, start, end time.Time) (float64, error) {
	payments, err := s.paymentRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return 0, err
	}
	return sumPayments(payments), nil
}

// GetMonthlyRevenue sums payments dated in the given month
func (s *BillingService) GetMonthlyRevenue(ctx context.Context, month, year int) (float64, error) {
	payments, err := s.paymentRepo.FindByMonth(ctx, month, year)
	if err != nil {
		return 0, err
	}
	return sumPayments(payments), nil
}

// GetAveragePaymentAmount returns the mean payment amount, or 0 when
// no payments exist.
func (s *BillingService) GetAveragePaymentAmount(ctx context.Context) (float64, error) {
	payments, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(payments) == 0 {
		return 0, nil
	}
	return sumPayments(payments) / float64(len(payments)), nil
}

// GetPaymentCount counts all payments
func (s *BillingService) GetPaymentCount(ctx context.Context) (int, error) {
	payments, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(payments), nil
}

func sumPayments(payments []*models.Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}
