package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		end      time.Time
		expected int
	}{
		{"exactly one hour", start.Add(60 * time.Minute), 60},
		{"partial minute rounds up", start.Add(30*time.Minute + time.Second), 31},
		{"one second rounds up to one minute", start.Add(time.Second), 1},
		{"zero duration", start, 0},
		{"end before start", start.Add(-time.Minute), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DurationMinutes(start, tt.end))
		})
	}
}

func TestBooking_Finalize(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(90*time.Minute + 10*time.Second)

	t.Run("complete computes duration", func(t *testing.T) {
		b := &Booking{Status: BookingStatusActive, StartTime: start}
		b.Finalize(BookingStatusCompleted, end)

		assert.Equal(t, BookingStatusCompleted, b.Status)
		if assert.NotNil(t, b.EndTime) {
			assert.Equal(t, end, *b.EndTime)
		}
		assert.Equal(t, 91, b.Duration)
	})

	t.Run("cancel stamps end time but not duration", func(t *testing.T) {
		b := &Booking{Status: BookingStatusActive, StartTime: start}
		b.Finalize(BookingStatusCancelled, end)

		assert.Equal(t, BookingStatusCancelled, b.Status)
		assert.NotNil(t, b.EndTime)
		assert.Equal(t, 0, b.Duration)
	})
}

func TestBooking_BelongsToUser(t *testing.T) {
	b := &Booking{UserID: "user-1"}

	assert.True(t, b.BelongsToUser("user-1"))
	assert.False(t, b.BelongsToUser("user-2"))
}

func TestBookingStatus_IsValid(t *testing.T) {
	assert.True(t, BookingStatusActive.IsValid())
	assert.True(t, BookingStatusCompleted.IsValid())
	assert.True(t, BookingStatusCancelled.IsValid())
	assert.False(t, BookingStatus("expired").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestParkingSlot_Normalize(t *testing.T) {
	s := &ParkingSlot{
		SlotNumber: "  A-1-N-001 ",
		Building:   "A",
		Floor:      1,
		Section:    "N",
	}
	s.Normalize()

	assert.Equal(t, "A-1-N-001", s.SlotNumber)
	assert.Equal(t, SlotStatusEmpty, s.Status)
	assert.Equal(t, SlotTypeStandard, s.Type)
	assert.Equal(t, 1.0, s.Dimensions.Width)
	assert.Equal(t, 1.0, s.Dimensions.Height)
}

func TestParkingSlot_Validate(t *testing.T) {
	valid := func() *ParkingSlot {
		return &ParkingSlot{
			SlotNumber: "A-1-N-001",
			Building:   "A",
			Floor:      1,
			Section:    "N",
			Status:     SlotStatusEmpty,
			Type:       SlotTypeStandard,
		}
	}

	tests := []struct {
		name     string
		mutate   func(*ParkingSlot)
		expected error
	}{
		{"valid", func(s *ParkingSlot) {}, nil},
		{"missing slot number", func(s *ParkingSlot) { s.SlotNumber = "" }, ErrInvalidSlotNumber},
		{"missing building", func(s *ParkingSlot) { s.Building = "" }, ErrInvalidBuilding},
		{"missing section", func(s *ParkingSlot) { s.Section = "" }, ErrInvalidSection},
		{"bad status", func(s *ParkingSlot) { s.Status = "full" }, ErrInvalidSlotStatus},
		{"bad type", func(s *ParkingSlot) { s.Type = "motorbike" }, ErrInvalidSlotType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			assert.ErrorIs(t, s.Validate(), tt.expected)
		})
	}
}
