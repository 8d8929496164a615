package models

import (
	"time"

	"gymdesk/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Identity Tables
// ============================================================

// User represents users table
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Username string `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     string `gorm:"size:20;not null;default:'MEMBER'" json:"role"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Role:     u.Role,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Membership Tables
// ============================================================

// MembershipPlan represents the membership_plans master table.
// One row per tier; prices are adjustable without a deploy.
type MembershipPlan struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	Code           string  `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name           string  `gorm:"size:100;not null" json:"name"`
	Price          float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMonths int     `gorm:"not null" json:"duration_months"`
}

func (MembershipPlan) TableName() string {
	return "membership_plans"
}

// ToMembership rehydrates the domain membership value for this plan.
func (p *MembershipPlan) ToMembership() (*domain.Membership, error) {
	m, err := domain.NewMembership(p.Code, p.Price)
	if err != nil {
		return nil, err
	}
	m.ID = p.ID
	m.Name = p.Name
	return m, nil
}

// Member represents members table. One member row ties to exactly one
// user row; membership_type holds the tier code of the owned membership.
type Member struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	MembershipType string     `gorm:"size:20;not null" json:"membership_type"`
	StartDate      *time.Time `gorm:"type:date" json:"start_date"`
	EndDate        *time.Time `gorm:"type:date" json:"end_date"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
}

func (Member) TableName() string {
	return "members"
}

// Membership rehydrates the member's owned membership from the catalog
// defaults for its stored tier code.
func (m *Member) Membership() *domain.Membership {
	return domain.DefaultMembership(domain.MembershipType(m.MembershipType))
}

// MemberResponse DTO
type MemberResponse struct {
	ID             uint       `json:"id"`
	UserID         uint       `json:"user_id"`
	Name           string     `json:"name"`
	Username       string     `json:"username"`
	MembershipType string     `json:"membership_type"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	Active         bool       `json:"active"`
}

func (m *Member) ToResponse() *MemberResponse {
	resp := &MemberResponse{
		ID:             m.ID,
		UserID:         m.UserID,
		Name:           m.User.Name,
		Username:       m.User.Username,
		MembershipType: m.MembershipType,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
	}
	if m.EndDate != nil {
		// Local midnight, not Truncate: membership dates are
		// day-granular in local time.
		y, mo, d := time.Now().Date()
		today := time.Date(y, mo, d, 0, 0, 0, 0, time.Local)
		resp.Active = m.EndDate.After(today)
	}
	return resp
}

// ============================================================
// Booking Table
// ============================================================

// Booking represents bookings table
type Booking struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MemberID    uint      `gorm:"not null;index" json:"member_id"`
	ClassName   string    `gorm:"size:100;not null" json:"class_name"`
	BookingTime time.Time `gorm:"not null" json:"booking_time"`
	ClassTime   time.Time `gorm:"not null;index" json:"class_time"`
	Status      string    `gorm:"size:20;not null;default:'BOOKED'" json:"status"`

	Member *Member `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"member,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// ============================================================
// Financial Tables
// ============================================================

// Payment represents payments table. Immutable financial fact once
// recorded; the update path exists for corrections only.
type Payment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	MemberID uint      `gorm:"not null;index" json:"member_id"`
	Amount   float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date     time.Time `gorm:"type:date;not null;index" json:"date"`
	Type     string    `gorm:"size:20;not null" json:"type"`

	Member *Member `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"member,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// Expense represents expenses table. Manual entry, no derived state.
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	Category    string    `gorm:"size:20;not null" json:"category"`
}

func (Expense) TableName() string {
	return "expenses"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&MembershipPlan{},
		&Member{},
		&Booking{},
		&Payment{},
		&Expense{},
	)
}
