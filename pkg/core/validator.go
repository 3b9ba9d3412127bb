package core

import "fmt"

// OrderInput is the caller-supplied set of fields for Add, checked by
// Validate before an Order is ever constructed. It mirrors the six wire
// fields of spec.md section 3.
type OrderInput struct {
	OrderID    string
	SecurityID string
	Side       Side
	Quantity   uint32
	User       string
	Company    string
}

// Validate checks the fields of an OrderInput in the fixed order spec.md
// section 4.1 lists, returning the first failure found. A nil return means
// the input is well-formed and safe to decode and store.
func Validate(in OrderInput) *ValidationError {
	if in.OrderID == "" {
		return newValidationError(ErrEmptyOrderID, "order id must not be empty")
	}
	if !IsOrderIDFormat(in.OrderID) {
		return newValidationError(ErrInvalidOrderIDFormat,
			fmt.Sprintf("order id %q must match %s<digits>", in.OrderID, OrderIDPrefix))
	}
	if in.SecurityID == "" {
		return newValidationError(ErrEmptySecurityID, "security id must not be empty")
	}
	if in.User == "" {
		return newValidationError(ErrEmptyUser, "user must not be empty")
	}
	if in.Company == "" {
		return newValidationError(ErrEmptyCompany, "company must not be empty")
	}
	if !in.Side.IsValid() {
		return newValidationError(ErrInvalidSide, "side must be Buy or Sell")
	}
	if in.Quantity == 0 {
		return newValidationError(ErrZeroQuantity, "quantity must be greater than zero")
	}
	return nil
}

// ValidateCancelID checks that id is well-formed enough to decode into a
// slot before Cancel looks it up. Unlike Validate, an empty id is folded
// into the same id-format failure since spec.md section 7 only names one
// cancel-time error kind (InvalidOrderIdOnCancel).
func ValidateCancelID(id string) *ValidationError {
	if !IsOrderIDFormat(id) {
		return newValidationError(errInvalidOrderIDOnCancel,
			fmt.Sprintf("order id %q must match %s<digits>", id, OrderIDPrefix))
	}
	return nil
}
