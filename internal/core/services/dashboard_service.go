package services

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DashboardService handles dashboard operations
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// Member Statistics
	TotalMembers   int64 `json:"total_members"`
	ActiveMembers  int64 `json:"active_members"`
	ExpiredMembers int64 `json:"expired_members"`

	// Financial Statistics
	TotalRevenue     float64 `json:"total_revenue"`
	TotalExpenses    float64 `json:"total_expenses"`
	RevenueThisMonth float64 `json:"revenue_this_month"`
	ExpenseThisMonth float64 `json:"expense_this_month"`

	// Booking Statistics
	TotalBookings     int64 `json:"total_bookings"`
	ActiveBookings    int64 `json:"active_bookings"`
	CompletedBookings int64 `json:"completed_bookings"`
	NoShowBookings    int64 `json:"no_show_bookings"`

	// Membership Tier Breakdown
	TierBreakdown []TierStats `json:"tier_breakdown"`

	// Recent Activity
	RecentPayments []PaymentSummary `json:"recent_payments"`
}

// TierStats represents per-tier member counts
type TierStats struct {
	MembershipType string `json:"membership_type"`
	MemberCount    int64  `json:"member_count"`
}

// PaymentSummary represents payment summary
type PaymentSummary struct {
	ID         uint      `json:"id"`
	MemberName string    `json:"member_name"`
	Amount     float64   `json:"amount"`
	Type       string    `json:"type"`
	Date       time.Time `json:"date"`
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}

	now := today()

	// Member counts
	s.db.WithContext(ctx).Table("members").Count(&data.TotalMembers)
	s.db.WithContext(ctx).Table("members").
		Where("end_date IS NOT NULL AND end_date > ?", now.Format("2006-01-02")).
		Count(&data.ActiveMembers)
	data.ExpiredMembers = data.TotalMembers - data.ActiveMembers

	// Financial totals
	s.db.WithContext(ctx).Table("payments").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.TotalRevenue)

	s.db.WithContext(ctx).Table("expenses").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.TotalExpenses)

	// This month statistics
	startOfMonth := now.AddDate(0, 0, -now.Day()+1)
	s.db.WithContext(ctx).Table("payments").
		Where("date >= ?", startOfMonth.Format("2006-01-02")).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.RevenueThisMonth)

	s.db.WithContext(ctx).Table("expenses").
		Where("date >= ?", startOfMonth.Format("2006-01-02")).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.ExpenseThisMonth)

	// Booking counts by status
	s.db.WithContext(ctx).Table("bookings").Count(&data.TotalBookings)
	s.db.WithContext(ctx).Table("bookings").Where("status = ?", "BOOKED").Count(&data.ActiveBookings)
	s.db.WithContext(ctx).Table("bookings").Where("status = ?", "COMPLETED").Count(&data.CompletedBookings)
	s.db.WithContext(ctx).Table("bookings").Where("status = ?", "NO_SHOW").Count(&data.NoShowBookings)

	// Tier breakdown
	var tiers []struct {
		MembershipType string
		MemberCount    int64
	}
	s.db.WithContext(ctx).Table("members").
		Select("membership_type, COUNT(*) as member_count").
		Group("membership_type").
		Order("member_count DESC").
		Scan(&tiers)

	data.TierBreakdown = make([]TierStats, len(tiers))
	for i, t := range tiers {
		data.TierBreakdown[i] = TierStats{
			MembershipType: t.MembershipType,
			MemberCount:    t.MemberCount,
		}
	}

	// Recent payments
	var recentPayments []struct {
		ID         uint
		MemberName string
		Amount     float64
		Type       string
		Date       time.Time
	}
	s.db.WithContext(ctx).Table("payments").
		Select("payments.id, users.name as member_name, payments.amount, payments.type, payments.date").
		Joins("LEFT JOIN members ON payments.member_id = members.id").
		Joins("LEFT JOIN users ON members.user_id = users.id").
		Order("payments.date DESC, payments.id DESC").
		Limit(10).
		Scan(&recentPayments)

	data.RecentPayments = make([]PaymentSummary, len(recentPayments))
	for i, p := range recentPayments {
		data.RecentPayments[i] = PaymentSummary{
			ID:         p.ID,
			MemberName: p.MemberName,
			Amount:     p.Amount,
			Type:       p.Type,
			Date:       p.Date,
		}
	}

	return data, nil
}

// ============================================================
// Receptionist Dashboard
// ============================================================

// ReceptionistDashboardData represents receptionist dashboard data
type ReceptionistDashboardData struct {
	// Today's Desk
	TodayClasses  []ClassBookingInfo `json:"today_classes"`
	TodayPayments float64            `json:"today_payments"`

	// Follow-ups
	ExpiringMemberships []ExpiringMemberInfo `json:"expiring_memberships"`
	BookingsToResolve   []ClassBookingInfo   `json:"bookings_to_resolve"`
}

// ClassBookingInfo represents one booking row for the desk views
type ClassBookingInfo struct {
	ID         uint      `json:"id"`
	MemberName string    `json:"member_name"`
	ClassName  string    `json:"class_name"`
	ClassTime  time.Time `json:"class_time"`
	Status     string    `json:"status"`
}

// ExpiringMemberInfo represents a membership approaching its end date
type ExpiringMemberInfo struct {
	MemberID       uint      `json:"member_id"`
	MemberName     string    `json:"member_name"`
	MembershipType string    `json:"membership_type"`
	EndDate        time.Time `json:"end_date"`
}

// GetReceptionistDashboard returns receptionist dashboard data
func (s *DashboardService) GetReceptionistDashboard(ctx context.Context) (*ReceptionistDashboardData, error) {
	data := &ReceptionistDashboardData{}

	dayStart := today()
	dayEnd := dayStart.AddDate(0, 0, 1)

	// Today's classes
	var todayClasses []struct {
		ID         uint
		MemberName string
		ClassName  string
		ClassTime  time.Time
		Status     string
	}
	s.db.WithContext(ctx).Table("bookings").
		Select("bookings.id, users.name as member_name, bookings.class_name, bookings.class_time, bookings.status").
		Joins("LEFT JOIN members ON bookings.member_id = members.id").
		Joins("LEFT JOIN users ON members.user_id = users.id").
		Where("bookings.class_time >= ? AND bookings.class_time < ?", dayStart, dayEnd).
		Order("bookings.class_time ASC").
		Scan(&todayClasses)

	data.TodayClasses = make([]ClassBookingInfo, len(todayClasses))
	for i, b := range todayClasses {
		data.TodayClasses[i] = ClassBookingInfo{
			ID:         b.ID,
			MemberName: b.MemberName,
			ClassName:  b.ClassName,
			ClassTime:  b.ClassTime,
			Status:     b.Status,
		}
	}

	// Today's payments
	s.db.WithContext(ctx).Table("payments").
		Where("date = ?", dayStart.Format("2006-01-02")).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.TodayPayments)

	// Memberships expiring within the next 7 days
	horizon := dayStart.AddDate(0, 0, 7)
	var expiring []struct {
		MemberID       uint
		MemberName     string
		MembershipType string
		EndDate        time.Time
	}
	s.db.WithContext(ctx).Table("members").
		Select("members.id as member_id, users.name as member_name, members.membership_type, members.end_date").
		Joins("LEFT JOIN users ON members.user_id = users.id").
		Where("members.end_date > ? AND members.end_date < ?",
			dayStart.Format("2006-01-02"), horizon.Format("2006-01-02")).
		Order("members.end_date ASC").
		Scan(&expiring)

	data.ExpiringMemberships = make([]ExpiringMemberInfo, len(expiring))
	for i, m := range expiring {
		data.ExpiringMemberships[i] = ExpiringMemberInfo{
			MemberID:       m.MemberID,
			MemberName:     m.MemberName,
			MembershipType: m.MembershipType,
			EndDate:        m.EndDate,
		}
	}

	// Bookings still BOOKED well past class time
	cutoff := time.Now().Add(-staleBookingAge)
	var toResolve []struct {
		ID         uint
		MemberName string
		ClassName  string
		ClassTime  time.Time
		Status     string
	}
	s.db.WithContext(ctx).Table("bookings").
		Select("bookings.id, users.name as member_name, bookings.class_name, bookings.class_time, bookings.status").
		Joins("LEFT JOIN members ON bookings.member_id = members.id").
		Joins("LEFT JOIN users ON members.user_id = users.id").
		Where("bookings.status = ? AND bookings.class_time < ?", "BOOKED", cutoff).
		Order("bookings.class_time ASC").
		Limit(20).
		Scan(&toResolve)

	data.BookingsToResolve = make([]ClassBookingInfo, len(toResolve))
	for i, b := range toResolve {
		data.BookingsToResolve[i] = ClassBookingInfo{
			ID:         b.ID,
			MemberName: b.MemberName,
			ClassName:  b.ClassName,
			ClassTime:  b.ClassTime,
			Status:     b.Status,
		}
	}

	return data, nil
}

// ============================================================
// Member Dashboard
// ============================================================

// MemberDashboardData represents member dashboard data
type MemberDashboardData struct {
	// My Membership
	MembershipType string     `json:"membership_type"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	Active         bool       `json:"active"`

	// My Bookings
	UpcomingBookings []ClassBookingInfo `json:"upcoming_bookings"`
	TotalBookings    int64              `json:"total_bookings"`

	// My Payments
	TotalPaid      float64          `json:"total_paid"`
	RecentPayments []PaymentSummary `json:"recent_payments"`
}

// GetMemberDashboard returns member dashboard data
func (s *DashboardService) GetMemberDashboard(ctx context.Context, memberID uint) (*MemberDashboardData, error) {
	data := &MemberDashboardData{}

	// My membership
	var membership struct {
		MembershipType string
		StartDate      *time.Time
		EndDate        *time.Time
		Name           string
	}
	err := s.db.WithContext(ctx).Table("members").
		Select("members.membership_type, members.start_date, members.end_date, users.name").
		Joins("LEFT JOIN users ON members.user_id = users.id").
		Where("members.id = ?", memberID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}

	data.MembershipType = membership.MembershipType
	data.StartDate = membership.StartDate
	data.EndDate = membership.EndDate
	if membership.EndDate != nil {
		data.Active = membership.EndDate.After(today())
	}

	// My upcoming bookings
	var upcoming []struct {
		ID        uint
		ClassName string
		ClassTime time.Time
		Status    string
	}
	s.db.WithContext(ctx).Table("bookings").
		Where("member_id = ? AND status = ? AND class_time > ?", memberID, "BOOKED", time.Now()).
		Order("class_time ASC").
		Limit(10).
		Scan(&upcoming)

	data.UpcomingBookings = make([]ClassBookingInfo, len(upcoming))
	for i, b := range upcoming {
		data.UpcomingBookings[i] = ClassBookingInfo{
			ID:         b.ID,
			MemberName: membership.Name,
			ClassName:  b.ClassName,
			ClassTime:  b.ClassTime,
			Status:     b.Status,
		}
	}

	s.db.WithContext(ctx).Table("bookings").
		Where("member_id = ?", memberID).
		Count(&data.TotalBookings)

	// My payments
	s.db.WithContext(ctx).Table("payments").
		Where("member_id = ?", memberID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.TotalPaid)

	var recent []struct {
		ID     uint
		Amount float64
		Type   string
		Date   time.Time
	}
	s.db.WithContext(ctx).Table("payments").
		Where("member_id = ?", memberID).
		Order("date DESC, id DESC").
		Limit(5).
		Scan(&recent)

	data.RecentPayments = make([]PaymentSummary, len(recent))
	for i, p := range recent {
		data.RecentPayments[i] = PaymentSummary{
			ID:         p.ID,
			MemberName: membership.Name,
			Amount:     p.Amount,
			Type:       p.Type,
			Date:       p.Date,
		}
	}

	return data, nil
}
