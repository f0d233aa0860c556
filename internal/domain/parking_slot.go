package domain

import (
	"strings"
	"time"
)

// SlotStatus represents the occupancy state of a parking slot
type SlotStatus string

const (
	SlotStatusEmpty    SlotStatus = "empty"
	SlotStatusBooked   SlotStatus = "booked"
	SlotStatusOccupied SlotStatus = "occupied"
)

// IsValid checks if the slot status is a known value
func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusEmpty, SlotStatusBooked, SlotStatusOccupied:
		return true
	}
	return false
}

// SlotType represents the kind of parking slot
type SlotType string

const (
	SlotTypeStandard    SlotType = "standard"
	SlotTypeHandicapped SlotType = "handicapped"
	SlotTypeElectric    SlotType = "electric"
	SlotTypeCompact     SlotType = "compact"
	SlotTypeVIP         SlotType = "vip"
)

// IsValid checks if the slot type is a known value
func (t SlotType) IsValid() bool {
	switch t {
	case SlotTypeStandard, SlotTypeHandicapped, SlotTypeElectric, SlotTypeCompact, SlotTypeVIP:
		return true
	}
	return false
}

// Coordinates locates a slot on the floor map
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dimensions holds the slot footprint in map units
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ParkingSlot represents a single parking space
type ParkingSlot struct {
	ID          string      `json:"id"`
	SlotNumber  string      `json:"slotNumber"`
	Building    string      `json:"building"`
	Floor       int         `json:"floor"`
	Section     string      `json:"section"`
	Status      SlotStatus  `json:"status"`
	Type        SlotType    `json:"type"`
	Coordinates Coordinates `json:"coordinates"`
	Dimensions  Dimensions  `json:"dimensions"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// IsAvailable returns true if the slot can accept a new booking
func (s *ParkingSlot) IsAvailable() bool {
	return s.Status == SlotStatusEmpty
}

// Normalize trims identifying fields and fills defaults
func (s *ParkingSlot) Normalize() {
	s.SlotNumber = strings.TrimSpace(s.SlotNumber)
	s.Building = strings.TrimSpace(s.Building)
	s.Section = strings.TrimSpace(s.Section)
	if s.Status == "" {
		s.Status = SlotStatusEmpty
	}
	if s.Type == "" {
		s.Type = SlotTypeStandard
	}
	if s.Dimensions.Width == 0 {
		s.Dimensions.Width = 1
	}
	if s.Dimensions.Height == 0 {
		s.Dimensions.Height = 1
	}
}

// Validate checks required fields
func (s *ParkingSlot) Validate() error {
	if s.SlotNumber == "" {
		return ErrInvalidSlotNumber
	}
	if s.Building == "" {
		return ErrInvalidBuilding
	}
	if s.Section == "" {
		return ErrInvalidSection
	}
	if !s.Status.IsValid() {
		return ErrInvalidSlotStatus
	}
	if !s.Type.IsValid() {
		return ErrInvalidSlotType
	}
	return nil
}
