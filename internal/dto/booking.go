package dto

import (
	"time"

	"github.com/prohmpiriya/smart-parking/internal/domain"
)

// CreateBookingRequest is the payload for creating a booking
type CreateBookingRequest struct {
	ParkingSlotID string `json:"parkingSlotId" binding:"required"`
	VehicleNumber string `json:"vehicleNumber" binding:"required"`
}

// UpdateBookingStatusRequest is the payload for the admin status override
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BookingListQuery holds optional filters for booking lists
type BookingListQuery struct {
	Status string `form:"status"`
}

// SlotRef is the populated slot reference on booking reads
type SlotRef struct {
	ID         string `json:"id"`
	SlotNumber string `json:"slotNumber"`
	Floor      int    `json:"floor"`
	Section    string `json:"section"`
}

// UserRef is the populated user reference on booking reads
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BookingResponse is the API representation of a booking
type BookingResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	ParkingSlotID string     `json:"parkingSlotId"`
	VehicleNumber string     `json:"vehicleNumber"`
	StartTime     time.Time  `json:"startTime"`
	EndTime       *time.Time `json:"endTime"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"paymentStatus"`
	Amount        float64    `json:"amount"`
	Duration      int        `json:"duration"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	ParkingSlot   *SlotRef   `json:"parkingSlot,omitempty"`
	User          *UserRef   `json:"user,omitempty"`
}

// BookingFromDomain converts a domain booking to its API representation
func BookingFromDomain(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		ParkingSlotID: b.ParkingSlotID,
		VehicleNumber: b.VehicleNumber,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		Amount:        b.Amount,
		Duration:      b.Duration,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// BookingFromRecord converts a booking with populated references
func BookingFromRecord(r *domain.BookingRecord) *BookingResponse {
	resp := BookingFromDomain(&r.Booking)
	if r.Slot != nil {
		resp.ParkingSlot = &SlotRef{
			ID:         r.Slot.ID,
			SlotNumber: r.Slot.SlotNumber,
			Floor:      r.Slot.Floor,
			Section:    r.Slot.Section,
		}
	}
	if r.User != nil {
		resp.User = &UserRef{
			ID:    r.User.ID,
			Name:  r.User.Name,
			Email: r.User.Email,
		}
	}
	return resp
}

// BookingsFromRecords converts a list of booking records
func BookingsFromRecords(records []*domain.BookingRecord) []*BookingResponse {
	responses := make([]*BookingResponse, len(records))
	for i, r := range records {
		responses[i] = BookingFromRecord(r)
	}
	return responses
}
