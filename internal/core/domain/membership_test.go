package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMembership(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		price        float64
		wantType     MembershipType
		wantDuration int
		wantErr      bool
	}{
		{"monthly lowercase", "monthly", 50, MembershipMonthly, 1, false},
		{"annual mixed case", "Annual", 450, MembershipAnnual, 12, false},
		{"vip uppercase", "VIP", 1000, MembershipVIP, 12, false},
		{"unknown tier", "platinum", 900, "", 0, true},
		{"empty tier", "", 0, "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMembership(tt.input, tt.price)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMembershipType)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantType, m.Type)
			assert.Equal(t, tt.price, m.Price)
			assert.Equal(t, tt.wantDuration, m.DurationMonths)
		})
	}
}

func TestDefaultMembership(t *testing.T) {
	m := DefaultMembership(MembershipAnnual)
	assert.Equal(t, MembershipAnnual, m.Type)
	assert.Equal(t, 500.0, m.Price)
	assert.Equal(t, 12, m.DurationMonths)

	// Unknown tiers fall back to monthly.
	fallback := DefaultMembership(MembershipType("PLATINUM"))
	assert.Equal(t, MembershipMonthly, fallback.Type)
	assert.Equal(t, 50.0, fallback.Price)
}

func TestMembership_Discount_IsAbsoluteAmount(t *testing.T) {
	tests := []struct {
		name string
		tier MembershipType
		want float64
	}{
		{"monthly has no discount", MembershipMonthly, 0},
		{"annual is fifteen percent of price", MembershipAnnual, 75},
		{"vip is twenty-five percent of price", MembershipVIP, 250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultMembership(tt.tier)
			assert.InDelta(t, tt.want, m.Discount(), 1e-6)
		})
	}
}

func TestMembership_DiscountRate(t *testing.T) {
	assert.Equal(t, 0.0, DefaultMembership(MembershipMonthly).DiscountRate())
	assert.Equal(t, 0.15, DefaultMembership(MembershipAnnual).DiscountRate())
	assert.Equal(t, 0.25, DefaultMembership(MembershipVIP).DiscountRate())
}

func TestMembershipTypes_CatalogOrder(t *testing.T) {
	assert.Equal(t, []MembershipType{MembershipMonthly, MembershipAnnual, MembershipVIP}, MembershipTypes())
}

func TestFinancialReport_NetProfit(t *testing.T) {
	report := &FinancialReport{TotalRevenue: 500, TotalExpenses: 300}
	assert.InDelta(t, 200, report.NetProfit(), 1e-6)
}

func TestExpenseCategory_IsValid(t *testing.T) {
	for _, c := range []ExpenseCategory{ExpenseSalary, ExpenseEquipment, ExpenseMaintenance, ExpenseUtilities, ExpenseMarketing, ExpenseOther} {
		assert.True(t, c.IsValid(), "category %q", c)
	}
	assert.False(t, ExpenseCategory("NOT_A_CATEGORY").IsValid())
	assert.False(t, ExpenseCategory("salary").IsValid(), "category codes are uppercase")
	assert.False(t, ExpenseCategory("").IsValid())
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleMember.IsValid())
	assert.True(t, RoleReceptionist.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("SUPERUSER").IsValid())
}

func TestResult(t *testing.T) {
	ok := Ok()
	assert.True(t, ok.OK)
	assert.NoError(t, ok.Err)

	failed := Fail(ErrMemberNotFound)
	assert.False(t, failed.OK)
	assert.ErrorIs(t, failed.Err, ErrMemberNotFound)
}
