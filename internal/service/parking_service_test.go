package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prohmpiriya/smart-parking/internal/domain"
	"github.com/prohmpiriya/smart-parking/internal/dto"
	"github.com/prohmpiriya/smart-parking/internal/repository"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestParkingService_CreateSlot(t *testing.T) {
	tests := []struct {
		name       string
		req        *dto.CreateSlotRequest
		setupMocks func(sr *MockSlotRepository)
		wantErr    error
	}{
		{
			name: "successful create",
			req: &dto.CreateSlotRequest{
				SlotNumber:  "A1N01",
				Building:    "A",
				Floor:       1,
				Section:     "North",
				Coordinates: dto.CoordinatesPayload{X: 100, Y: 100},
			},
		},
		{
			name: "duplicate slot number",
			req: &dto.CreateSlotRequest{
				SlotNumber:  "A1N01",
				Building:    "A",
				Floor:       1,
				Section:     "North",
				Coordinates: dto.CoordinatesPayload{X: 100, Y: 100},
			},
			setupMocks: func(sr *MockSlotRepository) {
				sr.CreateFunc = func(ctx context.Context, slot *domain.ParkingSlot) error {
					return domain.ErrDuplicateSlotNumber
				}
			},
			wantErr: domain.ErrDuplicateSlotNumber,
		},
		{
			name: "unknown type rejected",
			req: &dto.CreateSlotRequest{
				SlotNumber:  "A1N01",
				Building:    "A",
				Floor:       1,
				Section:     "North",
				Type:        "rooftop",
				Coordinates: dto.CoordinatesPayload{X: 100, Y: 100},
			},
			wantErr: domain.ErrInvalidSlotType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slotRepo := &MockSlotRepository{}
			if tt.setupMocks != nil {
				tt.setupMocks(slotRepo)
			}

			svc := NewParkingService(slotRepo)
			slot, err := svc.CreateSlot(context.Background(), tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("CreateSlot() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("CreateSlot() unexpected error = %v", err)
			}
			if slot.ID == "" {
				t.Error("CreateSlot() expected generated ID")
			}
			if slot.Status != string(domain.SlotStatusEmpty) {
				t.Errorf("CreateSlot() status = %s, new slots must start empty", slot.Status)
			}
			if slot.Type != string(domain.SlotTypeStandard) {
				t.Errorf("CreateSlot() type = %s, want standard default", slot.Type)
			}
		})
	}
}

func TestParkingService_GetSlot(t *testing.T) {
	slotRepo := &MockSlotRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.ParkingSlot, error) {
			return nil, nil
		},
	}

	svc := NewParkingService(slotRepo)
	_, err := svc.GetSlot(context.Background(), "missing")
	if !errors.Is(err, domain.ErrSlotNotFound) {
		t.Errorf("GetSlot() error = %v, want ErrSlotNotFound", err)
	}
}

func TestParkingService_UpdateSlot(t *testing.T) {
	existing := func(id string) *domain.ParkingSlot {
		return &domain.ParkingSlot{
			ID:         id,
			SlotNumber: "A1N01",
			Building:   "A",
			Floor:      1,
			Section:    "North",
			Status:     domain.SlotStatusEmpty,
			Type:       domain.SlotTypeStandard,
		}
	}

	tests := []struct {
		name       string
		req        *dto.UpdateSlotRequest
		setupMocks func(sr *MockSlotRepository)
		wantErr    error
		check      func(t *testing.T, slot *dto.SlotResponse)
	}{
		{
			name: "partial update only touches provided fields",
			req:  &dto.UpdateSlotRequest{Status: strPtr("occupied")},
			setupMocks: func(sr *MockSlotRepository) {
				sr.GetByIDFunc = func(ctx context.Context, id string) (*domain.ParkingSlot, error) {
					return existing(id), nil
				}
			},
			check: func(t *testing.T, slot *dto.SlotResponse) {
				if slot.Status != "occupied" {
					t.Errorf("UpdateSlot() status = %s, want occupied", slot.Status)
				}
				if slot.SlotNumber != "A1N01" || slot.Floor != 1 {
					t.Error("UpdateSlot() must not modify fields absent from the request")
				}
			},
		},
		{
			name: "relocating a slot",
			req:  &dto.UpdateSlotRequest{Floor: intPtr(2), Section: strPtr("South")},
			setupMocks: func(sr *MockSlotRepository) {
				sr.GetByIDFunc = func(ctx context.Context, id string) (*domain.ParkingSlot, error) {
					return existing(id), nil
				}
			},
			check: func(t *testing.T, slot *dto.SlotResponse) {
				if slot.Floor != 2 || slot.Section != "South" {
					t.Errorf("UpdateSlot() floor/section = %d/%s, want 2/South", slot.Floor, slot.Section)
				}
			},
		},
		{
			name:    "unknown status rejected before the read",
			req:     &dto.UpdateSlotRequest{Status: strPtr("reserved")},
			wantErr: domain.ErrInvalidSlotStatus,
		},
		{
			name: "slot not found",
			req:  &dto.UpdateSlotRequest{Status: strPtr("empty")},
			setupMocks: func(sr *MockSlotRepository) {
				sr.GetByIDFunc = func(ctx context.Context, id string) (*domain.ParkingSlot, error) {
					return nil, nil
				}
			},
			wantErr: domain.ErrSlotNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slotRepo := &MockSlotRepository{}
			if tt.setupMocks != nil {
				tt.setupMocks(slotRepo)
			}

			svc := NewParkingService(slotRepo)
			slot, err := svc.UpdateSlot(context.Background(), "slot-001", tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("UpdateSlot() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("UpdateSlot() unexpected error = %v", err)
			}
			if tt.check != nil {
				tt.check(t, slot)
			}
		})
	}
}

func TestParkingService_DeleteSlot(t *testing.T) {
	// Deletion has no status precondition: a booked slot goes too
	deleted := ""
	slotRepo := &MockSlotRepository{
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}

	svc := NewParkingService(slotRepo)
	if err := svc.DeleteSlot(context.Background(), "slot-001"); err != nil {
		t.Fatalf("DeleteSlot() unexpected error = %v", err)
	}
	if deleted != "slot-001" {
		t.Errorf("DeleteSlot() deleted %q, want slot-001", deleted)
	}

	slotRepo.DeleteFunc = func(ctx context.Context, id string) error {
		return domain.ErrSlotNotFound
	}
	if err := svc.DeleteSlot(context.Background(), "missing"); !errors.Is(err, domain.ErrSlotNotFound) {
		t.Errorf("DeleteSlot() error = %v, want ErrSlotNotFound", err)
	}
}

func TestParkingService_ListSlots(t *testing.T) {
	var gotFilter *repository.SlotFilter
	slotRepo := &MockSlotRepository{
		ListFunc: func(ctx context.Context, filter *repository.SlotFilter) ([]*domain.ParkingSlot, error) {
			gotFilter = filter
			return []*domain.ParkingSlot{
				{ID: "slot-001", SlotNumber: "A1N01", Status: domain.SlotStatusEmpty},
			}, nil
		},
	}

	svc := NewParkingService(slotRepo)
	slots, err := svc.ListSlots(context.Background(), &dto.SlotListQuery{Status: "empty", Building: "A"})
	if err != nil {
		t.Fatalf("ListSlots() unexpected error = %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("ListSlots() returned %d slots, want 1", len(slots))
	}
	if gotFilter.Status != "empty" || gotFilter.Building != "A" {
		t.Errorf("ListSlots() filter = %+v, want empty/A", gotFilter)
	}
}

func TestParkingService_ListSlotsByFloor(t *testing.T) {
	var gotFilter *repository.SlotFilter
	slotRepo := &MockSlotRepository{
		ListFunc: func(ctx context.Context, filter *repository.SlotFilter) ([]*domain.ParkingSlot, error) {
			gotFilter = filter
			return []*domain.ParkingSlot{}, nil
		},
	}

	svc := NewParkingService(slotRepo)
	_, err := svc.ListSlotsByFloor(context.Background(), 2, &dto.FloorSlotsQuery{Section: "North"})
	if err != nil {
		t.Fatalf("ListSlotsByFloor() unexpected error = %v", err)
	}
	if gotFilter.Floor == nil || *gotFilter.Floor != 2 {
		t.Error("ListSlotsByFloor() expected floor filter to be set")
	}
	if gotFilter.Section != "North" {
		t.Errorf("ListSlotsByFloor() section = %s, want North", gotFilter.Section)
	}
}
