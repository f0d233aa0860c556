package domain

import "time"

// BookingEventType identifies a booking lifecycle event
type BookingEventType string

const (
	BookingEventCreated   BookingEventType = "booking.created"
	BookingEventCompleted BookingEventType = "booking.completed"
	BookingEventCancelled BookingEventType = "booking.cancelled"
)

// BookingEvent is the payload published to Kafka on lifecycle transitions
type BookingEvent struct {
	EventID       string           `json:"event_id"`
	EventType     BookingEventType `json:"event_type"`
	BookingID     string           `json:"booking_id"`
	UserID        string           `json:"user_id"`
	ParkingSlotID string           `json:"parking_slot_id"`
	VehicleNumber string           `json:"vehicle_number"`
	Status        BookingStatus    `json:"status"`
	Duration      int              `json:"duration,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}

// NewBookingEvent builds an event from a booking snapshot
func NewBookingEvent(eventType BookingEventType, booking *Booking, eventID string) *BookingEvent {
	return &BookingEvent{
		EventID:       eventID,
		EventType:     eventType,
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		ParkingSlotID: booking.ParkingSlotID,
		VehicleNumber: booking.VehicleNumber,
		Status:        booking.Status,
		Duration:      booking.Duration,
		Timestamp:     time.Now(),
	}
}

// Key returns the Kafka partition key: events for one booking stay ordered
func (e *BookingEvent) Key() string {
	return e.BookingID
}
