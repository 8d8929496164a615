package services

import (
	"context"
	"log"

	"gymdesk/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// expiryReminderDays is how far ahead the daily job looks for
// memberships about to lapse.
const expiryReminderDays = 7

// ReminderService runs the daily front-desk follow-up job. It surfaces
// memberships expiring soon and bookings stuck in BOOKED past class
// time so staff can chase them, and prunes expired refresh tokens.
type ReminderService struct {
	membershipService *MembershipService
	bookingService    *BookingService
	refreshTokenRepo  repositories.RefreshTokenRepository
	cron              *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(
	membershipService *MembershipService,
	bookingService *BookingService,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *ReminderService {
	return &ReminderService{
		membershipService: membershipService,
		bookingService:    bookingService,
		refreshTokenRepo:  refreshTokenRepo,
		cron:              cron.New(),
	}
}

// Start schedules the daily job. Runs every morning before the desk
// opens.
func (s *ReminderService) Start() error {
	_, err := s.cron.AddFunc("30 8 * * *", s.runDailyReminders)
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("🚀 ReminderService started (daily at 08:30)")
	return nil
}

// Stop halts the scheduler and waits for a running job to finish
func (s *ReminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 ReminderService stopped")
}

func (s *ReminderService) runDailyReminders() {
	ctx := context.Background()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Expired token cleanup error: %v", err)
	}

	expiring, err := s.membershipService.FindMembersExpiringSoon(ctx, expiryReminderDays)
	if err != nil {
		log.Printf("❌ Expiry reminder query error: %v", err)
	} else {
		for _, member := range expiring {
			log.Printf("📅 Membership expiring soon: member %d (%s) ends %s",
				member.ID, member.MembershipType, member.EndDate.Format("2006-01-02"))
		}
		if len(expiring) > 0 {
			log.Printf("📅 %d memberships expire within %d days", len(expiring), expiryReminderDays)
		}
	}

	stale, err := s.bookingService.GetBookingsNeedingAttention(ctx)
	if err != nil {
		log.Printf("❌ Stale booking query error: %v", err)
		return
	}
	for _, booking := range stale {
		log.Printf("⏰ Booking %d (%s at %s) still BOOKED past class time",
			booking.ID, booking.ClassName, booking.ClassTime.Format("2006-01-02 15:04"))
	}
	if len(stale) > 0 {
		log.Printf("⏰ %d bookings need completion or no-show marking", len(stale))
	}
}
