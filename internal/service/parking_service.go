package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/prohmpiriya/smart-parking/internal/domain"
	"github.com/prohmpiriya/smart-parking/internal/dto"
	"github.com/prohmpiriya/smart-parking/internal/repository"
	"github.com/prohmpiriya/smart-parking/pkg/telemetry"
)

// ParkingService defines the interface for parking slot business logic
type ParkingService interface {
	// CreateSlot registers a new parking slot. New slots always start empty.
	CreateSlot(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error)

	// GetSlot retrieves a slot by ID
	GetSlot(ctx context.Context, slotID string) (*dto.SlotResponse, error)

	// ListSlots retrieves slots matching the query, ordered by floor,
	// section, slot number
	ListSlots(ctx context.Context, query *dto.SlotListQuery) ([]*dto.SlotResponse, error)

	// ListSlotsByFloor retrieves slots on the given floor
	ListSlotsByFloor(ctx context.Context, floor int, query *dto.FloorSlotsQuery) ([]*dto.SlotResponse, error)

	// UpdateSlot applies a partial update to a slot
	UpdateSlot(ctx context.Context, slotID string, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error)

	// DeleteSlot removes a slot. Deletion is unconditional: existing
	// bookings keep their slot reference and their lifecycle still works.
	DeleteSlot(ctx context.Context, slotID string) error
}

// parkingService implements ParkingService
type parkingService struct {
	slotRepo repository.ParkingSlotRepository
}

// NewParkingService creates a new parking service
func NewParkingService(slotRepo repository.ParkingSlotRepository) ParkingService {
	return &parkingService{slotRepo: slotRepo}
}

// CreateSlot registers a new parking slot
func (s *parkingService) CreateSlot(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.parking.create_slot")
	defer span.End()

	slot := req.ToDomain()
	slot.ID = uuid.New().String()
	now := time.Now()
	slot.CreatedAt = now
	slot.UpdatedAt = now

	if err := slot.Validate(); err != nil {
		span.SetStatus(codes.Error, "invalid slot")
		return nil, err
	}

	span.SetAttributes(
		attribute.String("slot_number", slot.SlotNumber),
		attribute.String("building", slot.Building),
		attribute.Int("floor", slot.Floor),
	)

	if err := s.slotRepo.Create(ctx, slot); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return dto.SlotFromDomain(slot), nil
}

// GetSlot retrieves a slot by ID
func (s *parkingService) GetSlot(ctx context.Context, slotID string) (*dto.SlotResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.parking.get_slot")
	defer span.End()

	span.SetAttributes(attribute.String("slot_id", slotID))

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if slot == nil {
		span.SetStatus(codes.Error, "slot not found")
		return nil, domain.ErrSlotNotFound
	}
	return dto.SlotFromDomain(slot), nil
}

// ListSlots retrieves slots matching the query
func (s *parkingService) ListSlots(ctx context.Context, query *dto.SlotListQuery) ([]*dto.SlotResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.parking.list_slots")
	defer span.End()

	slots, err := s.slotRepo.List(ctx, filterFromQuery(query))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return dto.SlotsFromDomain(slots), nil
}

// ListSlotsByFloor retrieves slots on the given floor
func (s *parkingService) ListSlotsByFloor(ctx context.Context, floor int, query *dto.FloorSlotsQuery) ([]*dto.SlotResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.parking.list_by_floor")
	defer span.End()

	span.SetAttributes(attribute.Int("floor", floor))

	filter := &repository.SlotFilter{Floor: &floor}
	if query != nil {
		filter.Section = query.Section
		filter.Status = query.Status
	}

	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return dto.SlotsFromDomain(slots), nil
}

// UpdateSlot applies a partial update to a slot
func (s *parkingService) UpdateSlot(ctx context.Context, slotID string, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.parking.update_slot")
	defer span.End()

	span.SetAttributes(attribute.String("slot_id", slotID))

	if err := req.Validate(); err != nil {
		span.SetStatus(codes.Error, "invalid update")
		return nil, err
	}

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if slot == nil {
		span.SetStatus(codes.Error, "slot not found")
		return nil, domain.ErrSlotNotFound
	}

	req.Apply(slot)
	if err := slot.Validate(); err != nil {
		return nil, err
	}

	if err := s.slotRepo.Update(ctx, slot); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return dto.SlotFromDomain(slot), nil
}

// DeleteSlot removes a slot
func (s *parkingService) DeleteSlot(ctx context.Context, slotID string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.parking.delete_slot")
	defer span.End()

	span.SetAttributes(attribute.String("slot_id", slotID))

	if err := s.slotRepo.Delete(ctx, slotID); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func filterFromQuery(query *dto.SlotListQuery) *repository.SlotFilter {
	filter := &repository.SlotFilter{}
	if query == nil {
		return filter
	}
	return &repository.SlotFilter{
		Status:   query.Status,
		Floor:    query.Floor,
		Section:  query.Section,
		Type:     query.Type,
		Building: query.Building,
	}
}
