package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/prohmpiriya/smart-parking/internal/domain"
	"github.com/prohmpiriya/smart-parking/internal/dto"
)

// MockParkingService is a mock implementation of ParkingService
type MockParkingService struct {
	CreateSlotFunc       func(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error)
	GetSlotFunc          func(ctx context.Context, slotID string) (*dto.SlotResponse, error)
	ListSlotsFunc        func(ctx context.Context, query *dto.SlotListQuery) ([]*dto.SlotResponse, error)
	ListSlotsByFloorFunc func(ctx context.Context, floor int, query *dto.FloorSlotsQuery) ([]*dto.SlotResponse, error)
	UpdateSlotFunc       func(ctx context.Context, slotID string, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error)
	DeleteSlotFunc       func(ctx context.Context, slotID string) error
}

func (m *MockParkingService) CreateSlot(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	if m.CreateSlotFunc != nil {
		return m.CreateSlotFunc(ctx, req)
	}
	return &dto.SlotResponse{}, nil
}

func (m *MockParkingService) GetSlot(ctx context.Context, slotID string) (*dto.SlotResponse, error) {
	if m.GetSlotFunc != nil {
		return m.GetSlotFunc(ctx, slotID)
	}
	return &dto.SlotResponse{}, nil
}

func (m *MockParkingService) ListSlots(ctx context.Context, query *dto.SlotListQuery) ([]*dto.SlotResponse, error) {
	if m.ListSlotsFunc != nil {
		return m.ListSlotsFunc(ctx, query)
	}
	return []*dto.SlotResponse{}, nil
}

func (m *MockParkingService) ListSlotsByFloor(ctx context.Context, floor int, query *dto.FloorSlotsQuery) ([]*dto.SlotResponse, error) {
	if m.ListSlotsByFloorFunc != nil {
		return m.ListSlotsByFloorFunc(ctx, floor, query)
	}
	return []*dto.SlotResponse{}, nil
}

func (m *MockParkingService) UpdateSlot(ctx context.Context, slotID string, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error) {
	if m.UpdateSlotFunc != nil {
		return m.UpdateSlotFunc(ctx, slotID, req)
	}
	return &dto.SlotResponse{}, nil
}

func (m *MockParkingService) DeleteSlot(ctx context.Context, slotID string) error {
	if m.DeleteSlotFunc != nil {
		return m.DeleteSlotFunc(ctx, slotID)
	}
	return nil
}

func setupParkingRouter(svc *MockParkingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewParkingHandler(svc)

	router := gin.New()
	group := router.Group("/api/parking")
	group.GET("", h.ListSlots)
	group.GET("/floor/:floor", h.ListSlotsByFloor)
	group.GET("/:id", h.GetSlot)
	group.POST("", h.CreateSlot)
	group.PUT("/:id", h.UpdateSlot)
	group.DELETE("/:id", h.DeleteSlot)
	return router
}

func TestParkingHandler_CreateSlot(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		setupMocks  func(svc *MockParkingService)
		wantStatus  int
		wantMessage string
	}{
		{
			name: "created",
			body: `{"slotNumber":"A1N01","building":"A","floor":1,"section":"North","coordinates":{"x":100,"y":100}}`,
			setupMocks: func(svc *MockParkingService) {
				svc.CreateSlotFunc = func(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
					return &dto.SlotResponse{ID: "slot-001", SlotNumber: req.SlotNumber, Status: "empty"}, nil
				}
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing slot number",
			body:       `{"building":"A","floor":1,"section":"North","coordinates":{"x":100,"y":100}}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate slot number",
			body: `{"slotNumber":"A1N01","building":"A","floor":1,"section":"North","coordinates":{"x":100,"y":100}}`,
			setupMocks: func(svc *MockParkingService) {
				svc.CreateSlotFunc = func(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
					return nil, domain.ErrDuplicateSlotNumber
				}
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Slot number already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockParkingService{}
			if tt.setupMocks != nil {
				tt.setupMocks(svc)
			}
			router := setupParkingRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/parking", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			envelope := decodeEnvelope(t, w)
			if tt.wantMessage != "" && envelope.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", envelope.Message, tt.wantMessage)
			}
		})
	}
}

func TestParkingHandler_GetSlot_NotFound(t *testing.T) {
	svc := &MockParkingService{
		GetSlotFunc: func(ctx context.Context, slotID string) (*dto.SlotResponse, error) {
			return nil, domain.ErrSlotNotFound
		},
	}
	router := setupParkingRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/parking/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	envelope := decodeEnvelope(t, w)
	if envelope.Message != "Parking slot not found" {
		t.Errorf("message = %q, want %q", envelope.Message, "Parking slot not found")
	}
}

func TestParkingHandler_ListSlots(t *testing.T) {
	var gotQuery *dto.SlotListQuery
	svc := &MockParkingService{
		ListSlotsFunc: func(ctx context.Context, query *dto.SlotListQuery) ([]*dto.SlotResponse, error) {
			gotQuery = query
			return []*dto.SlotResponse{
				{ID: "slot-001", SlotNumber: "A1N01"},
				{ID: "slot-002", SlotNumber: "A1N02"},
				{ID: "slot-003", SlotNumber: "A1N03"},
			}, nil
		},
	}
	router := setupParkingRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/parking?status=empty&building=A", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotQuery.Status != "empty" || gotQuery.Building != "A" {
		t.Errorf("query = %+v, want empty/A", gotQuery)
	}
	envelope := decodeEnvelope(t, w)
	if envelope.Count == nil || *envelope.Count != 3 {
		t.Errorf("count = %v, want 3", envelope.Count)
	}
}

func TestParkingHandler_ListSlotsByFloor(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantFloor  int
	}{
		{name: "numeric floor", path: "/api/parking/floor/2?section=North", wantStatus: http.StatusOK, wantFloor: 2},
		{name: "non-numeric floor", path: "/api/parking/floor/mezzanine", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotFloor int
			svc := &MockParkingService{
				ListSlotsByFloorFunc: func(ctx context.Context, floor int, query *dto.FloorSlotsQuery) ([]*dto.SlotResponse, error) {
					gotFloor = floor
					return []*dto.SlotResponse{}, nil
				},
			}
			router := setupParkingRouter(svc)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus == http.StatusOK && gotFloor != tt.wantFloor {
				t.Errorf("floor = %d, want %d", gotFloor, tt.wantFloor)
			}
			if tt.wantStatus == http.StatusBadRequest {
				envelope := decodeEnvelope(t, w)
				if envelope.Message != "Invalid floor number" {
					t.Errorf("message = %q, want %q", envelope.Message, "Invalid floor number")
				}
			}
		})
	}
}

func TestParkingHandler_UpdateSlot(t *testing.T) {
	svc := &MockParkingService{
		UpdateSlotFunc: func(ctx context.Context, slotID string, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error) {
			if req.Status == nil || *req.Status != "occupied" {
				t.Error("UpdateSlot() expected status patch to reach the service")
			}
			return &dto.SlotResponse{ID: slotID, Status: *req.Status}, nil
		},
	}
	router := setupParkingRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/parking/slot-001", bytes.NewBufferString(`{"status":"occupied"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var envelope struct {
		Success bool             `json:"success"`
		Data    dto.SlotResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if envelope.Data.Status != "occupied" {
		t.Errorf("data.status = %q, want occupied", envelope.Data.Status)
	}
}

func TestParkingHandler_DeleteSlot(t *testing.T) {
	deleted := ""
	svc := &MockParkingService{
		DeleteSlotFunc: func(ctx context.Context, slotID string) error {
			deleted = slotID
			return nil
		},
	}
	router := setupParkingRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/parking/slot-001", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if deleted != "slot-001" {
		t.Errorf("deleted %q, want slot-001", deleted)
	}
	envelope := decodeEnvelope(t, w)
	if envelope.Message != "Parking slot deleted successfully" {
		t.Errorf("message = %q, want %q", envelope.Message, "Parking slot deleted successfully")
	}
}
