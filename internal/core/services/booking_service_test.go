package services

import (
	"context"
	"testing"
	"time"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newBookingServiceForTest() (*BookingService, *MockBookingRepo, *MockMemberRepo) {
	bookingRepo := new(MockBookingRepo)
	memberRepo := new(MockMemberRepo)
	return NewBookingService(bookingRepo, memberRepo), bookingRepo, memberRepo
}

func TestBookingService_BookClass(t *testing.T) {
	classTime := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name       string
		memberID   uint
		classTime  time.Time
		setupMocks func(*MockBookingRepo, *MockMemberRepo)
		wantErr    error
	}{
		{
			name:      "successful booking",
			memberID:  1,
			classTime: classTime,
			setupMocks: func(br *MockBookingRepo, mr *MockMemberRepo) {
				mr.On("GetByID", mock.Anything, uint(1)).Return(&models.Member{ID: 1}, nil)
				br.On("FindBookedInWindow", mock.Anything, uint(1),
					classTime.Add(-time.Hour), classTime.Add(time.Hour)).
					Return([]*models.Booking{}, nil)
				br.On("Create", mock.Anything, mock.AnythingOfType("*models.Booking")).Return(nil)
			},
		},
		{
			name:      "member not found",
			memberID:  99,
			classTime: classTime,
			setupMocks: func(br *MockBookingRepo, mr *MockMemberRepo) {
				mr.On("GetByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: domain.ErrMemberNotFound,
		},
		{
			name:      "class time in the past",
			memberID:  1,
			classTime: time.Now().Add(-time.Minute),
			setupMocks: func(br *MockBookingRepo, mr *MockMemberRepo) {
				mr.On("GetByID", mock.Anything, uint(1)).Return(&models.Member{ID: 1}, nil)
			},
			wantErr: domain.ErrPastClassTime,
		},
		{
			name:      "conflicting booking within the hour",
			memberID:  1,
			classTime: classTime,
			setupMocks: func(br *MockBookingRepo, mr *MockMemberRepo) {
				mr.On("GetByID", mock.Anything, uint(1)).Return(&models.Member{ID: 1}, nil)
				br.On("FindBookedInWindow", mock.Anything, uint(1),
					classTime.Add(-time.Hour), classTime.Add(time.Hour)).
					Return([]*models.Booking{{ID: 8, Status: "BOOKED"}}, nil)
			},
			wantErr: domain.ErrBookingConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, bookingRepo, memberRepo := newBookingServiceForTest()
			tt.setupMocks(bookingRepo, memberRepo)

			booking, err := svc.BookClass(context.Background(), tt.memberID, "Yoga", tt.classTime)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "Yoga", booking.ClassName)
			assert.Equal(t, string(domain.BookingBooked), booking.Status)
			assert.True(t, booking.ClassTime.Equal(tt.classTime))
			bookingRepo.AssertExpectations(t)
		})
	}
}

func TestBookingService_CancelBooking_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantErr error
	}{
		{"booked can be cancelled", "BOOKED", nil},
		{"cancelled stays cancelled", "CANCELLED", domain.ErrInvalidStatusTransition},
		{"completed cannot be cancelled", "COMPLETED", domain.ErrInvalidStatusTransition},
		{"no-show cannot be cancelled", "NO_SHOW", domain.ErrInvalidStatusTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, bookingRepo, _ := newBookingServiceForTest()
			booking := &models.Booking{ID: 4, Status: tt.status}
			bookingRepo.On("GetByID", mock.Anything, uint(4)).Return(booking, nil)
			if tt.wantErr == nil {
				bookingRepo.On("Update", mock.Anything, booking).Return(nil)
			}

			cancelled, err := svc.CancelBooking(context.Background(), 4)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				bookingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, string(domain.BookingCancelled), cancelled.Status)
		})
	}
}

func TestBookingService_CancelBooking_NotFound(t *testing.T) {
	svc, bookingRepo, _ := newBookingServiceForTest()
	bookingRepo.On("GetByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CancelBooking(context.Background(), 404)

	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestBookingService_MarkNoShow_Unguarded(t *testing.T) {
	// Unlike cancel, staff corrections apply regardless of the current
	// status.
	for _, status := range []string{"BOOKED", "CANCELLED", "COMPLETED"} {
		t.Run(status, func(t *testing.T) {
			svc, bookingRepo, _ := newBookingServiceForTest()
			booking := &models.Booking{ID: 2, Status: status}
			bookingRepo.On("GetByID", mock.Anything, uint(2)).Return(booking, nil)
			bookingRepo.On("Update", mock.Anything, booking).Return(nil)

			err := svc.MarkNoShow(context.Background(), 2)

			assert.NoError(t, err)
			assert.Equal(t, string(domain.BookingNoShow), booking.Status)
		})
	}
}

func TestBookingService_MarkCompleted(t *testing.T) {
	svc, bookingRepo, _ := newBookingServiceForTest()
	booking := &models.Booking{ID: 2, Status: "BOOKED"}
	bookingRepo.On("GetByID", mock.Anything, uint(2)).Return(booking, nil)
	bookingRepo.On("Update", mock.Anything, booking).Return(nil)

	err := svc.MarkCompleted(context.Background(), 2)

	assert.NoError(t, err)
	assert.Equal(t, string(domain.BookingCompleted), booking.Status)
}

func TestBookingService_GetUpcomingBookings_SortedSoonestFirst(t *testing.T) {
	svc, bookingRepo, _ := newBookingServiceForTest()

	now := time.Now()
	bookings := []*models.Booking{
		{ID: 1, Status: "BOOKED", ClassTime: now.Add(72 * time.Hour)},
		{ID: 2, Status: "BOOKED", ClassTime: now.Add(24 * time.Hour)},
		{ID: 3, Status: "CANCELLED", ClassTime: now.Add(48 * time.Hour)},
		{ID: 4, Status: "BOOKED", ClassTime: now.Add(-24 * time.Hour)},
	}
	bookingRepo.On("FindByMemberID", mock.Anything, uint(1)).Return(bookings, nil)

	upcoming, err := svc.GetUpcomingBookings(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, upcoming, 2, "cancelled and past bookings are excluded")
	assert.Equal(t, uint(2), upcoming[0].ID)
	assert.Equal(t, uint(1), upcoming[1].ID)
}

func TestBookingService_GetPastBookings_SortedMostRecentFirst(t *testing.T) {
	svc, bookingRepo, _ := newBookingServiceForTest()

	now := time.Now()
	bookings := []*models.Booking{
		{ID: 1, Status: "COMPLETED", ClassTime: now.Add(-72 * time.Hour)},
		{ID: 2, Status: "NO_SHOW", ClassTime: now.Add(-24 * time.Hour)},
		{ID: 3, Status: "BOOKED", ClassTime: now.Add(24 * time.Hour)},
	}
	bookingRepo.On("FindByMemberID", mock.Anything, uint(1)).Return(bookings, nil)

	past, err := svc.GetPastBookings(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, past, 2)
	assert.Equal(t, uint(2), past[0].ID)
	assert.Equal(t, uint(1), past[1].ID)
}

func TestBookingService_GetBookingsNeedingAttention(t *testing.T) {
	svc, bookingRepo, _ := newBookingServiceForTest()

	stale := []*models.Booking{{ID: 9, Status: "BOOKED"}}
	bookingRepo.On("FindBookedBefore", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		// Cutoff sits two hours in the past.
		return time.Since(cutoff) >= staleBookingAge && time.Since(cutoff) < staleBookingAge+time.Minute
	})).Return(stale, nil)

	got, err := svc.GetBookingsNeedingAttention(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, stale, got)
}

func TestBookingService_GetBookingCompletionRate(t *testing.T) {
	t.Run("no bookings", func(t *testing.T) {
		svc, bookingRepo, _ := newBookingServiceForTest()
		bookingRepo.On("Count", mock.Anything).Return(int64(0), nil)

		rate, err := svc.GetBookingCompletionRate(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 0.0, rate)
		bookingRepo.AssertNotCalled(t, "CountByStatus", mock.Anything, mock.Anything)
	})

	t.Run("one in four completed", func(t *testing.T) {
		svc, bookingRepo, _ := newBookingServiceForTest()
		bookingRepo.On("Count", mock.Anything).Return(int64(4), nil)
		bookingRepo.On("CountByStatus", mock.Anything, "COMPLETED").Return(int64(1), nil)

		rate, err := svc.GetBookingCompletionRate(context.Background())

		assert.NoError(t, err)
		assert.InDelta(t, 25, rate, 1e-6)
	})
}

func TestBookingService_GetActiveBookingCount(t *testing.T) {
	svc, bookingRepo, _ := newBookingServiceForTest()
	bookingRepo.On("CountByStatus", mock.Anything, "BOOKED").Return(int64(3), nil)

	count, err := svc.GetActiveBookingCount(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
