package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleMember       Role = "MEMBER"
	RoleReceptionist Role = "RECEPTIONIST"
	RoleAdmin        Role = "ADMIN"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleReceptionist, RoleAdmin:
		return true
	}
	return false
}

// BookingStatus represents the lifecycle state of a class booking
type BookingStatus string

const (
	BookingBooked    BookingStatus = "BOOKED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingNoShow    BookingStatus = "NO_SHOW"
)

// PaymentType represents what a payment was made for
type PaymentType string

const (
	PaymentMembership PaymentType = "MEMBERSHIP"
	PaymentClass      PaymentType = "CLASS"
	PaymentOther      PaymentType = "OTHER"
)

// ExpenseCategory represents the category of a recorded expense
type ExpenseCategory string

const (
	ExpenseSalary      ExpenseCategory = "SALARY"
	ExpenseEquipment   ExpenseCategory = "EQUIPMENT"
	ExpenseMaintenance ExpenseCategory = "MAINTENANCE"
	ExpenseUtilities   ExpenseCategory = "UTILITIES"
	ExpenseMarketing   ExpenseCategory = "MARKETING"
	ExpenseOther       ExpenseCategory = "OTHER"
)

// IsValid reports whether the category is one of the known categories.
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseSalary, ExpenseEquipment, ExpenseMaintenance,
		ExpenseUtilities, ExpenseMarketing, ExpenseOther:
		return true
	}
	return false
}

// FinancialReport aggregates payments and expenses over a period.
// It is always recomputed from source records, never stored.
type FinancialReport struct {
	PeriodStart   time.Time `json:"period_start"`
	PeriodEnd     time.Time `json:"period_end"`
	TotalRevenue  float64   `json:"total_revenue"`
	TotalExpenses float64   `json:"total_expenses"`
	PaymentCount  int       `json:"payment_count"`
	ExpenseCount  int       `json:"expense_count"`
}

// NetProfit returns total revenue minus total expenses.
func (r *FinancialReport) NetProfit() float64 {
	return r.TotalRevenue - r.TotalExpenses
}

// Result is the outcome of an operation that keeps a boolean-success
// surface but retains the underlying cause instead of discarding it.
type Result struct {
	OK  bool  `json:"ok"`
	Err error `json:"-"`
}

// Ok returns a successful result.
func Ok() Result {
	return Result{OK: true}
}

// Fail returns a failed result carrying its cause.
func Fail(err error) Result {
	return Result{OK: false, Err: err}
}
