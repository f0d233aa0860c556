package dto

import (
	"time"

	"github.com/prohmpiriya/smart-parking/internal/domain"
)

// CoordinatesPayload locates a slot on the floor map
type CoordinatesPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DimensionsPayload holds the slot footprint
type DimensionsPayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CreateSlotRequest is the payload for registering a parking slot
type CreateSlotRequest struct {
	SlotNumber  string             `json:"slotNumber" binding:"required"`
	Building    string             `json:"building" binding:"required"`
	Floor       int                `json:"floor" binding:"required"`
	Section     string             `json:"section" binding:"required"`
	Type        string             `json:"type"`
	Coordinates CoordinatesPayload `json:"coordinates" binding:"required"`
	Dimensions  *DimensionsPayload `json:"dimensions"`
}

// ToDomain builds a new slot from the request. Status is always empty for
// freshly registered slots regardless of input.
func (r *CreateSlotRequest) ToDomain() *domain.ParkingSlot {
	slot := &domain.ParkingSlot{
		SlotNumber:  r.SlotNumber,
		Building:    r.Building,
		Floor:       r.Floor,
		Section:     r.Section,
		Status:      domain.SlotStatusEmpty,
		Type:        domain.SlotType(r.Type),
		Coordinates: domain.Coordinates{X: r.Coordinates.X, Y: r.Coordinates.Y},
	}
	if r.Dimensions != nil {
		slot.Dimensions = domain.Dimensions{Width: r.Dimensions.Width, Height: r.Dimensions.Height}
	}
	slot.Normalize()
	return slot
}

// UpdateSlotRequest is the payload for a partial slot update.
// Only fields present in the request are changed.
type UpdateSlotRequest struct {
	SlotNumber  *string             `json:"slotNumber"`
	Building    *string             `json:"building"`
	Floor       *int                `json:"floor"`
	Section     *string             `json:"section"`
	Status      *string             `json:"status"`
	Type        *string             `json:"type"`
	Coordinates *CoordinatesPayload `json:"coordinates"`
	Dimensions  *DimensionsPayload `json:"dimensions"`
}

// Validate checks enum fields when present
func (r *UpdateSlotRequest) Validate() error {
	if r.Status != nil && !domain.SlotStatus(*r.Status).IsValid() {
		return domain.ErrInvalidSlotStatus
	}
	if r.Type != nil && !domain.SlotType(*r.Type).IsValid() {
		return domain.ErrInvalidSlotType
	}
	return nil
}

// Apply copies the provided fields onto the slot
func (r *UpdateSlotRequest) Apply(slot *domain.ParkingSlot) {
	if r.SlotNumber != nil {
		slot.SlotNumber = *r.SlotNumber
	}
	if r.Building != nil {
		slot.Building = *r.Building
	}
	if r.Floor != nil {
		slot.Floor = *r.Floor
	}
	if r.Section != nil {
		slot.Section = *r.Section
	}
	if r.Status != nil {
		slot.Status = domain.SlotStatus(*r.Status)
	}
	if r.Type != nil {
		slot.Type = domain.SlotType(*r.Type)
	}
	if r.Coordinates != nil {
		slot.Coordinates = domain.Coordinates{X: r.Coordinates.X, Y: r.Coordinates.Y}
	}
	if r.Dimensions != nil {
		slot.Dimensions = domain.Dimensions{Width: r.Dimensions.Width, Height: r.Dimensions.Height}
	}
}

// SlotListQuery holds optional filters for slot lists
type SlotListQuery struct {
	Status   string `form:"status"`
	Floor    *int   `form:"floor"`
	Section  string `form:"section"`
	Type     string `form:"type"`
	Building string `form:"building"`
}

// FloorSlotsQuery holds optional filters for the per-floor view
type FloorSlotsQuery struct {
	Section string `form:"section"`
	Status  string `form:"status"`
}

// SlotResponse is the API representation of a parking slot
type SlotResponse struct {
	ID          string             `json:"id"`
	SlotNumber  string             `json:"slotNumber"`
	Building    string             `json:"building"`
	Floor       int                `json:"floor"`
	Section     string             `json:"section"`
	Status      string             `json:"status"`
	Type        string             `json:"type"`
	Coordinates CoordinatesPayload `json:"coordinates"`
	Dimensions  DimensionsPayload  `json:"dimensions"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// SlotFromDomain converts a domain slot to its API representation
func SlotFromDomain(s *domain.ParkingSlot) *SlotResponse {
	return &SlotResponse{
		ID:          s.ID,
		SlotNumber:  s.SlotNumber,
		Building:    s.Building,
		Floor:       s.Floor,
		Section:     s.Section,
		Status:      string(s.Status),
		Type:        string(s.Type),
		Coordinates: CoordinatesPayload{X: s.Coordinates.X, Y: s.Coordinates.Y},
		Dimensions:  DimensionsPayload{Width: s.Dimensions.Width, Height: s.Dimensions.Height},
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// SlotsFromDomain converts a list of slots
func SlotsFromDomain(slots []*domain.ParkingSlot) []*SlotResponse {
	responses := make([]*SlotResponse, len(slots))
	for i, s := range slots {
		responses[i] = SlotFromDomain(s)
	}
	return responses
}
