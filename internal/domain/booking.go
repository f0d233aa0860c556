package domain

import (
	"math"
	"time"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsValid checks if the booking status is a known value
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusActive, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for statuses a booking cannot leave on its own
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFree    PaymentStatus = "free"
)

// Booking represents a parking slot reservation
type Booking struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	ParkingSlotID string        `json:"parkingSlotId"`
	VehicleNumber string        `json:"vehicleNumber"`
	StartTime     time.Time     `json:"startTime"`
	EndTime       *time.Time    `json:"endTime"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Amount        float64       `json:"amount"`
	// Duration is the parked time in minutes, set when the booking completes
	Duration  int       `json:"duration"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BelongsToUser checks if the booking belongs to the given user
func (b *Booking) BelongsToUser(userID string) bool {
	return b.UserID == userID
}

// IsActive returns true if the booking is still active
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusActive
}

// Finalize transitions the booking to a terminal status, stamping the end
// time. Duration is computed only on completion: whole minutes, rounded up.
func (b *Booking) Finalize(status BookingStatus, at time.Time) {
	b.Status = status
	b.EndTime = &at
	if status == BookingStatusCompleted {
		b.Duration = DurationMinutes(b.StartTime, at)
	}
	b.UpdatedAt = at
}

// DurationMinutes returns the parked time in whole minutes, rounded up
func DurationMinutes(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	return int(math.Ceil(end.Sub(start).Minutes()))
}

// Validate checks required fields for a new booking
func (b *Booking) Validate() error {
	if b.UserID == "" {
		return ErrInvalidUserID
	}
	if b.ParkingSlotID == "" {
		return ErrInvalidSlotID
	}
	if b.VehicleNumber == "" {
		return ErrInvalidVehicleNumber
	}
	return nil
}
