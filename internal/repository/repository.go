package repository

import (
	"context"
	"time"

	"github.com/prohmpiriya/smart-parking/internal/domain"
)

// SlotFilter narrows slot listings. Zero values mean "no filter".
type SlotFilter struct {
	Status   string
	Floor    *int
	Section  string
	Type     string
	Building string
}

// ParkingSlotRepository defines storage operations for parking slots
type ParkingSlotRepository interface {
	// Create persists a new slot. Returns domain.ErrDuplicateSlotNumber
	// when the slot number is already taken.
	Create(ctx context.Context, slot *domain.ParkingSlot) error

	// GetByID retrieves a slot by ID. Returns (nil, nil) when missing.
	GetByID(ctx context.Context, id string) (*domain.ParkingSlot, error)

	// List retrieves slots matching the filter, ordered by floor,
	// section, slot number.
	List(ctx context.Context, filter *SlotFilter) ([]*domain.ParkingSlot, error)

	// Update overwrites a slot's mutable fields
	Update(ctx context.Context, slot *domain.ParkingSlot) error

	// Delete removes a slot
	Delete(ctx context.Context, id string) error

	// TryReserve atomically transitions empty -> booked. Returns false
	// when the slot exists but is not empty, or does not exist.
	TryReserve(ctx context.Context, id string) (bool, error)

	// ReleaseIfPresent transitions a slot back to empty. Missing slots
	// are a silent no-op.
	ReleaseIfPresent(ctx context.Context, id string) error
}

// BookingFilter narrows booking listings. Zero values mean "no filter".
type BookingFilter struct {
	UserID string
	Status string
}

// BookingRepository defines storage operations for bookings
type BookingRepository interface {
	// Create persists a new booking
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID. Returns (nil, nil) when missing.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// GetRecordByID retrieves a booking with slot and user references
	// populated. Returns (nil, nil) when missing.
	GetRecordByID(ctx context.Context, id string) (*domain.BookingRecord, error)

	// List retrieves bookings matching the filter, newest first, with
	// slot and user references populated.
	List(ctx context.Context, filter *BookingFilter) ([]*domain.BookingRecord, error)

	// Finalize atomically transitions an active booking to the given
	// terminal status, stamping the end time and, on completion, the
	// duration. Returns domain.ErrBookingNotFound when the booking does
	// not exist and *domain.AlreadyFinalizedError when it has already
	// left the active state.
	Finalize(ctx context.Context, id string, status domain.BookingStatus, at time.Time) (*domain.Booking, error)

	// Update overwrites a booking's mutable fields
	Update(ctx context.Context, booking *domain.Booking) error
}

// UserRepository defines storage operations for users and their vehicles
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID. Returns (nil, nil) when missing.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email. Returns (nil, nil) when missing.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List retrieves all users, newest first
	List(ctx context.Context) ([]*domain.User, error)

	Update(ctx context.Context, user *domain.User) error

	Delete(ctx context.Context, id string) error

	AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error

	ListVehicles(ctx context.Context, userID string) ([]*domain.Vehicle, error)

	// DeleteVehicle removes a vehicle owned by the given user
	DeleteVehicle(ctx context.Context, userID, vehicleID string) error
}
