package types

import "errors"

const (
	ErrInvalidInput  = "Invalid input"
	ErrDatabaseError = "Database error"
	ErrUnauthorized  = "Unauthorized access"
	ErrInternalError = "internal server error"
)

// Domain errors raised by the services layer. Handlers recover these at the
// API boundary and map them to client-facing failure responses; everything
// unrecognized surfaces as a 500.
var (
	// Conflicts: state already satisfies or precludes the request.
	ErrAlreadyExists     = errors.New("attendance record already exists for this date")
	ErrAlreadyCheckedOut = errors.New("already checked out for this date")
	ErrDuplicatePeriod   = errors.New("salary statement already exists for this pay month")

	// Referenced entity absent.
	ErrNotFound        = errors.New("record not found")
	ErrBalanceNotFound = errors.New("leave balance data not found")

	// Operation not legal in the current lifecycle state.
	ErrInvalidState = errors.New("only pending requests can be processed")

	// Business rules.
	ErrInvalidRange        = errors.New("start date must be before or equal to end date")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrNegativeAmount      = errors.New("payslip amounts cannot be negative")
	ErrMalformedPeriod     = errors.New("pay month must be in YYYY-MM format")
)

// MissingFieldError reports a payslip field that no page of the document
// yielded a match for.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "could not find " + e.Field + " in payslip"
}
