package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
)

// Membership errors
var (
	ErrMemberNotFound         = errors.New("member not found")
	ErrUsernameTaken          = errors.New("username already exists")
	ErrInvalidMembershipType  = errors.New("invalid membership type")
	ErrMembershipPlanNotFound = errors.New("membership plan not found")
)

// Booking errors
var (
	ErrBookingNotFound         = errors.New("booking not found")
	ErrPastClassTime           = errors.New("cannot book classes in the past")
	ErrBookingConflict         = errors.New("member already has a booking at this time")
	ErrInvalidStatusTransition = errors.New("cannot cancel a booking that is not in BOOKED status")
)

// Billing and reporting errors
var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrExpenseNotFound = errors.New("expense not found")
	ErrNoRevenue       = errors.New("expense to revenue ratio undefined: revenue is zero")
)
