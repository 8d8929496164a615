package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/core/domain"

	"gorm.io/gorm"
)

// conflictWindow is the interval around a class time within which a
// member cannot hold two BOOKED bookings (inclusive on both ends).
const conflictWindow = time.Hour

// staleBookingAge is how far past its class time a BOOKED booking must
// be before it counts as needing attention (missed checkout).
const staleBookingAge = 2 * time.Hour

// BookingService handles class booking and status tracking
type BookingService struct {
	bookingRepo repositories.BookingRepository
	memberRepo  repositories.MemberRepository
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repositories.BookingRepository,
	memberRepo repositories.MemberRepository,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		memberRepo:  memberRepo,
	}
}

// BookClass books a class for a member. The class time must be
// strictly in the future and must not fall within one hour of another
// BOOKED booking held by the same member.
func (s *BookingService) BookClass(ctx context.Context, memberID uint, className string, classTime time.Time) (*models.Booking, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	now := time.Now()
	if !classTime.After(now) {
		return nil, domain.ErrPastClassTime
	}

	conflict, err := s.HasConflictingBooking(ctx, memberID, classTime)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, domain.ErrBookingConflict
	}

	booking := &models.Booking{
		MemberID:    memberID,
		ClassName:   className,
		BookingTime: now,
		ClassTime:   classTime,
		Status:      string(domain.BookingBooked),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// HasConflictingBooking reports whether the member already holds a
// BOOKED booking whose class time falls within the conflict window
// around the given time, boundaries included.
func (s *BookingService) HasConflictingBooking(ctx context.Context, memberID uint, classTime time.Time) (bool, error) {
	start := classTime.Add(-conflictWindow)
	end := classTime.Add(conflictWindow)

	conflicts, err := s.bookingRepo.FindBookedInWindow(ctx, memberID, start, end)
	if err != nil {
		return false, err
	}
	return len(conflicts) > 0, nil
}

// CancelBooking cancels a booking. Only the BOOKED → CANCELLED
// transition is legal; a cancelled, completed or no-show booking
// cannot be cancelled again.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	booking, err := s.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != string(domain.BookingBooked) {
		return nil, domain.ErrInvalidStatusTransition
	}

	booking.Status = string(domain.BookingCancelled)
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// MarkNoShow sets a booking to NO_SHOW regardless of its current
// status. Deliberately unguarded, unlike CancelBooking.
func (s *BookingService) MarkNoShow(ctx context.Context, bookingID uint) error {
	return s.setStatus(ctx, bookingID, domain.BookingNoShow)
}

// MarkCompleted sets a booking to COMPLETED regardless of its current
// status. Deliberately unguarded, unlike CancelBooking.
func (s *BookingService) MarkCompleted(ctx context.Context, bookingID uint) error {
	return s.setStatus(ctx, bookingID, domain.BookingCompleted)
}

func (s *BookingService) setStatus(ctx context.Context, bookingID uint, status domain.BookingStatus) error {
	booking, err := s.FindBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}

	booking.Status = string(status)
	return s.bookingRepo.Update(ctx, booking)
}

// FindBookingByID gets a booking by ID
func (s *BookingService) FindBookingByID(ctx context.Context, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// GetBookingsByMember lists a member's bookings
func (s *BookingService) GetBookingsByMember(ctx context.Context, memberID uint) ([]*models.Booking, error) {
	return s.bookingRepo.FindByMemberID(ctx, memberID)
}

// GetBookingsByClass lists bookings for a class
func (s *BookingService) GetBookingsByClass(ctx context.Context, className string) ([]*models.Booking, error) {
	return s.bookingRepo.FindByClassName(ctx, className)
}

// GetBookingsByStatus lists bookings in a given status
func (s *BookingService) GetBookingsByStatus(ctx context.Context, status domain.BookingStatus) ([]*models.Booking, error) {
	return s.bookingRepo.FindByStatus(ctx, string(status))
}

// GetBookingsByDateRange lists bookings with class time in [start, end]
func (s *BookingService) GetBookingsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error) {
	return s.bookingRepo.FindByDateRange(ctx, start, end)
}

// GetAllBookings lists all bookings
func (s *BookingService) GetAllBookings(ctx context.Context) ([]*models.Booking, error) {
	return s.bookingRepo.FindAll(ctx)
}

// GetUpcomingBookings lists a member's BOOKED bookings with class time
// in the future, soonest first.
func (s *BookingService) GetUpcomingBookings(ctx context.Context, memberID uint) ([]*models.Booking, error) {
	bookings, err := s.bookingRepo.FindByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	upcoming := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == string(domain.BookingBooked) && b.ClassTime.After(now) {
			upcoming = append(upcoming, b)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].ClassTime.Before(upcoming[j].ClassTime)
	})
	return upcoming, nil
}

// GetPastBookings lists a member's bookings with class time in the
// past, most recent first.
func (s *BookingService) GetPastBookings(ctx context.Context, memberID uint) ([]*models.Booking, error) {
	bookings, err := s.bookingRepo.FindByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	past := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ClassTime.Before(now) {
			past = append(past, b)
		}
	}
	sort.Slice(past, func(i, j int) bool {
		return past[i].ClassTime.After(past[j].ClassTime)
	})
	return past, nil
}

// GetBookingsNeedingAttention lists BOOKED bookings whose class time
// is more than two hours past: classes that happened but were never
// marked completed or no-show.
func (s *BookingService) GetBookingsNeedingAttention(ctx context.Context) ([]*models.Booking, error) {
	cutoff := time.Now().Add(-staleBookingAge)
	return s.bookingRepo.FindBookedBefore(ctx, cutoff)
}

// GetBookingCountByClass counts bookings for a class
func (s *BookingService) GetBookingCountByClass(ctx context.Context, className string) (int, error) {
	bookings, err := s.bookingRepo.FindByClassName(ctx, className)
	if err != nil {
		return 0, err
	}
	return len(bookings), nil
}

// GetActiveBookingCount counts BOOKED bookings
func (s *BookingService) GetActiveBookingCount(ctx context.Context) (int64, error) {
	return s.bookingRepo.CountByStatus(ctx, string(domain.BookingBooked))
}

// GetBookingCompletionRate returns COMPLETED bookings as a percentage
// of all bookings, or 0 when there are none.
func (s *BookingService) GetBookingCompletionRate(ctx context.Context) (float64, error) {
	total, err := s.bookingRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	completed, err := s.bookingRepo.CountByStatus(ctx, string(domain.BookingCompleted))
	if err != nil {
		return 0, err
	}
	return float64(completed) / float64(total) * 100, nil
}
