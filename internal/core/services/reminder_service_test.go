package services

import (
	"errors"
	"testing"
	"time"

	"gymdesk/internal/adapters/persistence/models"

	"github.com/stretchr/testify/mock"
)

func newReminderServiceForTest() (*ReminderService, *MockMemberRepo, *MockBookingRepo, *MockRefreshTokenRepo) {
	memberRepo := new(MockMemberRepo)
	userRepo := new(MockUserRepo)
	bookingRepo := new(MockBookingRepo)
	tokenRepo := new(MockRefreshTokenRepo)
	tx := &fakeTxManager{users: userRepo, members: memberRepo, payments: new(MockPaymentRepo)}

	membershipService := NewMembershipService(memberRepo, userRepo, tx)
	bookingService := NewBookingService(bookingRepo, memberRepo)
	return NewReminderService(membershipService, bookingService, tokenRepo), memberRepo, bookingRepo, tokenRepo
}

func TestReminderService_DailyRun_PrunesExpiredTokens(t *testing.T) {
	svc, memberRepo, bookingRepo, tokenRepo := newReminderServiceForTest()

	end := today().AddDate(0, 0, 3)
	tokenRepo.On("DeleteExpired", mock.Anything).Return(nil)
	memberRepo.On("FindExpiringBetween", mock.Anything, today(), today().AddDate(0, 0, expiryReminderDays)).
		Return([]*models.Member{{ID: 1, MembershipType: "MONTHLY", EndDate: &end}}, nil)
	bookingRepo.On("FindBookedBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*models.Booking{{ID: 9, ClassName: "Yoga", ClassTime: time.Now().Add(-3 * time.Hour)}}, nil)

	svc.runDailyReminders()

	tokenRepo.AssertExpectations(t)
	memberRepo.AssertExpectations(t)
	bookingRepo.AssertExpectations(t)
}

func TestReminderService_DailyRun_TokenCleanupFailureDoesNotBlockReminders(t *testing.T) {
	svc, memberRepo, bookingRepo, tokenRepo := newReminderServiceForTest()

	tokenRepo.On("DeleteExpired", mock.Anything).Return(errors.New("db down"))
	memberRepo.On("FindExpiringBetween", mock.Anything, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]*models.Member{}, nil)
	bookingRepo.On("FindBookedBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*models.Booking{}, nil)

	svc.runDailyReminders()

	memberRepo.AssertNumberOfCalls(t, "FindExpiringBetween", 1)
	bookingRepo.AssertNumberOfCalls(t, "FindBookedBefore", 1)
}
