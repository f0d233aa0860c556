package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Slot errors
	ErrSlotNotFound        = errors.New("parking slot not found")
	ErrSlotUnavailable     = errors.New("parking slot is not available")
	ErrDuplicateSlotNumber = errors.New("slot number already exists")

	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotBookingOwner = errors.New("not authorized to access this booking")
	ErrInvalidStatus   = errors.New("invalid status")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrVehicleNotFound    = errors.New("vehicle not found")

	// Validation errors
	ErrInvalidUserID        = errors.New("invalid user id")
	ErrInvalidSlotID        = errors.New("invalid parking slot id")
	ErrInvalidVehicleNumber = errors.New("vehicle number is required")
	ErrInvalidSlotNumber    = errors.New("slot number is required")
	ErrInvalidBuilding      = errors.New("building is required")
	ErrInvalidSection       = errors.New("section is required")
	ErrInvalidSlotStatus    = errors.New("invalid slot status")
	ErrInvalidSlotType      = errors.New("invalid slot type")
)

// AlreadyFinalizedError is returned when a terminal transition is attempted
// on a booking that has already left the active state. It carries the
// current status so callers can surface it.
type AlreadyFinalizedError struct {
	Status BookingStatus
}

func (e *AlreadyFinalizedError) Error() string {
	return fmt.Sprintf("booking is already %s", e.Status)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrSlotNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrVehicleNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrInvalidSlotID) ||
		errors.Is(err, ErrInvalidVehicleNumber) ||
		errors.Is(err, ErrInvalidSlotNumber) ||
		errors.Is(err, ErrInvalidBuilding) ||
		errors.Is(err, ErrInvalidSection) ||
		errors.Is(err, ErrInvalidSlotStatus) ||
		errors.Is(err, ErrInvalidSlotType) ||
		errors.Is(err, ErrInvalidStatus)
}

// IsConflictError checks if the error is a state conflict error
func IsConflictError(err error) bool {
	var finalized *AlreadyFinalizedError
	return errors.Is(err, ErrSlotUnavailable) ||
		errors.Is(err, ErrDuplicateSlotNumber) ||
		errors.As(err, &finalized)
}
