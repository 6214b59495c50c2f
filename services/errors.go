package services

import (
	"errors"

	"github.com/haiminh/hotpot-pos/statemachine"
)

// Errors surfaced by the session and reservation managers. Controllers map
// these onto HTTP statuses; anything else is a storage failure and passes
// through untouched.
var (
	ErrTableNotFound       = errors.New("table not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrItemNotFound        = errors.New("order item not found")
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrNoActiveOrder       = errors.New("no active order for this table")
	ErrTableOccupied       = errors.New("table already has an active order")
	ErrTableNotDirty       = errors.New("table is not dirty")
	ErrSameTable           = errors.New("source and destination table are the same")
	ErrReservationClosed   = errors.New("reservation is already in a terminal state")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrInvalidDiscount     = errors.New("invalid discount")
	ErrInvalidPayment      = errors.New("invalid payment method")
	ErrInvalidReservation  = errors.New("customer name, phone and guest count are required")
	ErrInvalidPIN          = errors.New("PIN must be at least 4 digits")
	ErrInvalidEmployee     = errors.New("employee name is required")
	ErrInvalidRole         = errors.New("invalid employee role")
	ErrMenuUnavailable     = errors.New("menu item is not available")
	ErrComboSelection      = errors.New("combo selections do not satisfy group requirements")
	ErrComboNeedsGroups    = errors.New("a combo item must have at least one option group")
)

// NotFound reports whether err is one of the missing-entity errors.
func NotFound(err error) bool {
	return errors.Is(err, ErrTableNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrMenuItemNotFound) ||
		errors.Is(err, ErrReservationNotFound) ||
		errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrNoActiveOrder)
}

// Conflict reports whether err is a state-conflict error.
func Conflict(err error) bool {
	return errors.Is(err, ErrTableOccupied) ||
		errors.Is(err, ErrTableNotDirty) ||
		errors.Is(err, ErrReservationClosed) ||
		errors.Is(err, statemachine.ErrInvalidTransition)
}

// InvalidInput reports whether err is a request-validation error.
func InvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidDiscount) ||
		errors.Is(err, ErrInvalidPayment) ||
		errors.Is(err, ErrInvalidReservation) ||
		errors.Is(err, ErrInvalidPIN) ||
		errors.Is(err, ErrInvalidEmployee) ||
		errors.Is(err, ErrInvalidRole) ||
		errors.Is(err, ErrSameTable) ||
		errors.Is(err, ErrMenuUnavailable) ||
		errors.Is(err, ErrComboSelection) ||
		errors.Is(err, ErrComboNeedsGroups)
}
