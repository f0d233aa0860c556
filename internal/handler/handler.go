package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/prohmpiriya/smart-parking/internal/domain"
	"github.com/prohmpiriya/smart-parking/pkg/response"
)

// handleError maps domain errors to HTTP responses. Complete and cancel
// check domain.ErrNotBookingOwner themselves to phrase action-specific 403
// messages; the mapping here carries the generic read denial.
func handleError(c *gin.Context, err error) {
	var finalized *domain.AlreadyFinalizedError

	switch {
	case errors.Is(err, domain.ErrSlotNotFound):
		response.NotFound(c, "Parking slot not found")
	case errors.Is(err, domain.ErrBookingNotFound):
		response.NotFound(c, "Booking not found")
	case errors.Is(err, domain.ErrUserNotFound):
		response.NotFound(c, "User not found")
	case errors.Is(err, domain.ErrVehicleNotFound):
		response.NotFound(c, "Vehicle not found")
	case errors.Is(err, domain.ErrSlotUnavailable):
		response.BadRequest(c, "Parking slot is not available")
	case errors.Is(err, domain.ErrDuplicateSlotNumber):
		response.BadRequest(c, "Slot number already exists")
	case errors.Is(err, domain.ErrInvalidStatus):
		response.BadRequest(c, "Invalid status")
	case errors.As(err, &finalized):
		response.BadRequest(c, fmt.Sprintf("Booking is already %s", finalized.Status))
	case errors.Is(err, domain.ErrUserAlreadyExists):
		response.BadRequest(c, "User already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, domain.ErrNotBookingOwner):
		response.Forbidden(c, "Not authorized to access this booking")
	case domain.IsValidationError(err):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
