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

func mustMembership(t *testing.T, membershipType string, price float64) *domain.Membership {
	t.Helper()
	m, err := domain.NewMembership(membershipType, price)
	if err != nil {
		t.Fatalf("build membership: %v", err)
	}
	return m
}

func newMembershipServiceForTest() (*MembershipService, *MockMemberRepo, *MockUserRepo, *MockPaymentRepo) {
	memberRepo := new(MockMemberRepo)
	userRepo := new(MockUserRepo)
	paymentRepo := new(MockPaymentRepo)
	tx := &fakeTxManager{users: userRepo, members: memberRepo, payments: paymentRepo}
	return NewMembershipService(memberRepo, userRepo, tx), memberRepo, userRepo, paymentRepo
}

func TestMembershipService_RegisterMember_Defaults(t *testing.T) {
	svc, memberRepo, userRepo, _ := newMembershipServiceForTest()

	userRepo.On("ExistsByUsername", mock.Anything, "jane").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	memberRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Member")).Return(nil)

	member, err := svc.RegisterMember(context.Background(), &RegisterMemberInput{
		Name:     "Jane Doe",
		Username: "jane",
		Password: "secret-password",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.MembershipMonthly), member.MembershipType)

	start := today()
	end := start.AddDate(0, 1, 0)
	assert.True(t, member.StartDate.Equal(start), "start date defaults to today")
	assert.True(t, member.EndDate.Equal(end), "end date defaults to start plus one month")

	userRepo.AssertExpectations(t)
	memberRepo.AssertExpectations(t)
}

func TestMembershipService_RegisterMember_UsernameTaken(t *testing.T) {
	svc, memberRepo, userRepo, _ := newMembershipServiceForTest()

	userRepo.On("ExistsByUsername", mock.Anything, "jane").Return(true, nil)

	_, err := svc.RegisterMember(context.Background(), &RegisterMemberInput{
		Name:     "Jane Doe",
		Username: "jane",
		Password: "secret-password",
	})

	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	memberRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMembershipService_RegisterMember_MissingFields(t *testing.T) {
	svc, _, _, _ := newMembershipServiceForTest()

	tests := []struct {
		name  string
		input RegisterMemberInput
	}{
		{"no name", RegisterMemberInput{Username: "jane", Password: "secret-password"}},
		{"no username", RegisterMemberInput{Name: "Jane", Password: "secret-password"}},
		{"no password", RegisterMemberInput{Name: "Jane", Username: "jane"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterMember(context.Background(), &tt.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestMembershipService_RegisterMember_ExplicitTier(t *testing.T) {
	svc, memberRepo, userRepo, _ := newMembershipServiceForTest()

	userRepo.On("ExistsByUsername", mock.Anything, "vip-user").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	memberRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Member")).Return(nil)

	member, err := svc.RegisterMember(context.Background(), &RegisterMemberInput{
		Name:       "Victor",
		Username:   "vip-user",
		Password:   "secret-password",
		Membership: domain.DefaultMembership(domain.MembershipVIP),
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.MembershipVIP), member.MembershipType)
	assert.True(t, member.EndDate.Equal(today().AddDate(0, 12, 0)), "VIP runs twelve months")
}

func TestMembershipService_UpdateMembership(t *testing.T) {
	svc, memberRepo, _, _ := newMembershipServiceForTest()

	start := today().AddDate(0, -2, 0)
	end := start.AddDate(0, 1, 0)
	member := &models.Member{ID: 7, MembershipType: "MONTHLY", StartDate: &start, EndDate: &end}

	memberRepo.On("GetByID", mock.Anything, uint(7)).Return(member, nil)
	memberRepo.On("Update", mock.Anything, member).Return(nil)

	updated, err := svc.UpdateMembership(context.Background(), 7, domain.DefaultMembership(domain.MembershipAnnual))

	assert.NoError(t, err)
	assert.Equal(t, "ANNUAL", updated.MembershipType)
	assert.True(t, updated.StartDate.Equal(start), "start date is kept on upgrade")
	assert.True(t, updated.EndDate.Equal(today().AddDate(0, 12, 0)), "end date restarts from today")
}

func TestMembershipService_RenewMembership_RestartsPeriod(t *testing.T) {
	svc, memberRepo, _, _ := newMembershipServiceForTest()

	start := today().AddDate(0, -13, 0)
	end := today().AddDate(0, 0, -30)
	member := &models.Member{ID: 3, MembershipType: "ANNUAL", StartDate: &start, EndDate: &end}

	memberRepo.On("GetByID", mock.Anything, uint(3)).Return(member, nil)
	memberRepo.On("Update", mock.Anything, member).Return(nil)

	result := svc.RenewMembership(context.Background(), 3, domain.DefaultMembership(domain.MembershipAnnual))

	assert.True(t, result.OK)
	assert.True(t, member.StartDate.Equal(today()))
	assert.True(t, member.EndDate.Equal(today().AddDate(0, 12, 0)))
}

func TestMembershipService_RenewMembership_MemberMissing(t *testing.T) {
	svc, memberRepo, _, _ := newMembershipServiceForTest()

	memberRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	result := svc.RenewMembership(context.Background(), 99, domain.DefaultMembership(domain.MembershipMonthly))

	assert.False(t, result.OK)
	assert.ErrorIs(t, result.Err, domain.ErrMemberNotFound)
}

func TestMembershipService_CancelMembership(t *testing.T) {
	svc, memberRepo, _, _ := newMembershipServiceForTest()

	end := today().AddDate(0, 6, 0)
	member := &models.Member{ID: 5, MembershipType: "ANNUAL", EndDate: &end}

	memberRepo.On("GetByID", mock.Anything, uint(5)).Return(member, nil)
	memberRepo.On("Update", mock.Anything, member).Return(nil)

	result := svc.CancelMembership(context.Background(), 5)

	assert.True(t, result.OK)
	assert.True(t, member.EndDate.Equal(today().AddDate(0, 0, -1)), "cancel moves end date to yesterday")
	assert.False(t, svc.IsMemberActive(member), "cancelled member is inactive immediately")
}

func TestMembershipService_IsMemberActive_Boundary(t *testing.T) {
	svc, _, _, _ := newMembershipServiceForTest()

	tomorrow := today().AddDate(0, 0, 1)
	endsToday := today()
	yesterday := today().AddDate(0, 0, -1)

	tests := []struct {
		name   string
		end    *time.Time
		active bool
	}{
		{"ends tomorrow", &tomorrow, true},
		{"ends today", &endsToday, false},
		{"ended yesterday", &yesterday, false},
		{"no end date", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member := &models.Member{EndDate: tt.end}
			assert.Equal(t, tt.active, svc.IsMemberActive(member))
		})
	}
}

func TestMembershipService_FindMembersExpiringSoon_Window(t *testing.T) {
	svc, memberRepo, _, _ := newMembershipServiceForTest()

	from := today()
	to := from.AddDate(0, 0, 7)
	memberRepo.On("FindExpiringBetween", mock.Anything, from, to).Return([]*models.Member{}, nil)

	_, err := svc.FindMembersExpiringSoon(context.Background(), 7)

	assert.NoError(t, err)
	memberRepo.AssertExpectations(t)
}

func TestMembershipService_CalculatePrice(t *testing.T) {
	svc, _, _, _ := newMembershipServiceForTest()

	tests := []struct {
		name       string
		membership *domain.Membership
		want       float64
	}{
		// Monthly has no discount, so price passes through.
		{"monthly default", domain.DefaultMembership(domain.MembershipMonthly), 50},
		// Discount() is an absolute amount applied as if it were a
		// rate, so the discounted tiers go negative. See the TODO on
		// CalculatePrice.
		{"annual default", domain.DefaultMembership(domain.MembershipAnnual), 500 * (1 - 75.0)},
		{"annual at 1000", mustMembership(t, "annual", 1000), 1000 * (1 - 150.0)},
		{"vip default", domain.DefaultMembership(domain.MembershipVIP), 1000 * (1 - 250.0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, svc.CalculatePrice(tt.membership), 1e-6)
		})
	}
}

func TestMembershipService_CreateMembership(t *testing.T) {
	svc, _, _, _ := newMembershipServiceForTest()

	m, err := svc.CreateMembership("Annual", 450)
	assert.NoError(t, err)
	assert.Equal(t, domain.MembershipAnnual, m.Type)
	assert.Equal(t, 450.0, m.Price)
	assert.Equal(t, 12, m.DurationMonths)

	_, err = svc.CreateMembership("platinum", 900)
	assert.ErrorIs(t, err, domain.ErrInvalidMembershipType)
}

func TestMembershipService_GetMembershipRevenueByType(t *testing.T) {
	svc, memberRepo, _, _ := newMembershipServiceForTest()

	members := []*models.Member{
		{ID: 1, MembershipType: "MONTHLY"},
		{ID: 2, MembershipType: "monthly"},
		{ID: 3, MembershipType: "ANNUAL"},
	}
	memberRepo.On("FindAll", mock.Anything).Return(members, nil)

	total, err := svc.GetMembershipRevenueByType(context.Background(), "MONTHLY")

	assert.NoError(t, err)
	assert.InDelta(t, 100, total, 1e-6, "two monthly members at the default price, matched case-insensitively")
}

func TestMembershipService_GetTotalActiveMembers(t *testing.T) {
	svc, memberRepo, _, _ := newMembershipServiceForTest()

	memberRepo.On("FindActive", mock.Anything, today()).Return([]*models.Member{{ID: 1}, {ID: 2}}, nil)

	count, err := svc.GetTotalActiveMembers(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}
