package domain

import "strings"

// MembershipType identifies one of the closed set of membership tiers.
type MembershipType string

const (
	MembershipMonthly MembershipType = "MONTHLY"
	MembershipAnnual  MembershipType = "ANNUAL"
	MembershipVIP     MembershipType = "VIP"
)

// tierSpec holds the per-tier constants: duration, discount rate,
// default price and benefits text.
type tierSpec struct {
	Name           string
	DurationMonths int
	DiscountRate   float64
	DefaultPrice   float64
	Benefits       string
}

var tierSpecs = map[MembershipType]tierSpec{
	MembershipMonthly: {
		Name:           "Monthly Membership",
		DurationMonths: 1,
		DiscountRate:   0.0,
		DefaultPrice:   50,
		Benefits:       "Basic gym access, locker room, standard equipment",
	},
	MembershipAnnual: {
		Name:           "Annual Membership",
		DurationMonths: 12,
		DiscountRate:   0.15,
		DefaultPrice:   500,
		Benefits:       "Full gym access, locker room, all equipment, 1 free personal training session per month",
	},
	MembershipVIP: {
		Name:           "VIP Membership",
		DurationMonths: 12,
		DiscountRate:   0.25,
		DefaultPrice:   1000,
		Benefits:       "All gym access, VIP locker room, premium equipment, unlimited personal training, spa access, nutrition consultation",
	},
}

// Membership is the value object a member currently holds. The member
// owns exactly one; renewals and upgrades replace it wholesale.
type Membership struct {
	ID             uint           `json:"id"`
	Type           MembershipType `json:"type"`
	Name           string         `json:"name"`
	Price          float64        `json:"price"`
	DurationMonths int            `json:"duration_months"`
}

// NewMembership builds a membership of the given tier. The type is
// matched case-insensitively ("monthly", "annual", "vip").
func NewMembership(membershipType string, price float64) (*Membership, error) {
	var t MembershipType
	switch strings.ToLower(membershipType) {
	case "monthly":
		t = MembershipMonthly
	case "annual":
		t = MembershipAnnual
	case "vip":
		t = MembershipVIP
	default:
		return nil, ErrInvalidMembershipType
	}

	spec := tierSpecs[t]
	return &Membership{
		Type:           t,
		Name:           spec.Name,
		Price:          price,
		DurationMonths: spec.DurationMonths,
	}, nil
}

// DefaultMembership returns the tier with its catalog default price.
func DefaultMembership(t MembershipType) *Membership {
	spec, ok := tierSpecs[t]
	if !ok {
		spec = tierSpecs[MembershipMonthly]
		t = MembershipMonthly
	}
	return &Membership{
		Type:           t,
		Name:           spec.Name,
		Price:          spec.DefaultPrice,
		DurationMonths: spec.DurationMonths,
	}
}

// Discount returns the tier discount as an absolute currency amount
// (price times the tier rate).
func (m *Membership) Discount() float64 {
	return m.Price * tierSpecs[m.Type].DiscountRate
}

// DiscountRate returns the tier's discount rate constant.
func (m *Membership) DiscountRate() float64 {
	return tierSpecs[m.Type].DiscountRate
}

// Benefits returns the benefits description for the tier.
func (m *Membership) Benefits() string {
	return tierSpecs[m.Type].Benefits
}

// MembershipTypes lists the known tiers in catalog order.
func MembershipTypes() []MembershipType {
	return []MembershipType{MembershipMonthly, MembershipAnnual, MembershipVIP}
}
