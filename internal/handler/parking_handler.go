package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/prohmpiriya/smart-parking/internal/dto"
	"github.com/prohmpiriya/smart-parking/internal/service"
	"github.com/prohmpiriya/smart-parking/pkg/response"
	"github.com/prohmpiriya/smart-parking/pkg/telemetry"
)

// ParkingHandler handles parking slot HTTP requests
type ParkingHandler struct {
	parkingService service.ParkingService
}

// NewParkingHandler creates a new parking handler
func NewParkingHandler(parkingService service.ParkingService) *ParkingHandler {
	return &ParkingHandler{parkingService: parkingService}
}

// CreateSlot handles POST /parking (admin)
func (h *ParkingHandler) CreateSlot(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.parking.create_slot")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var req dto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		response.BadRequest(c, err.Error())
		return
	}

	span.SetAttributes(attribute.String("slot_number", req.SlotNumber))

	slot, err := h.parkingService.CreateSlot(ctx, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Created(c, slot)
}

// GetSlot handles GET /parking/:id
func (h *ParkingHandler) GetSlot(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.parking.get_slot")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	slotID := c.Param("id")
	span.SetAttributes(attribute.String("slot_id", slotID))

	slot, err := h.parkingService.GetSlot(ctx, slotID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.OK(c, slot)
}

// ListSlots handles GET /parking
func (h *ParkingHandler) ListSlots(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.parking.list_slots")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var query dto.SlotListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		span.SetStatus(codes.Error, "invalid query")
		response.BadRequest(c, err.Error())
		return
	}

	slots, err := h.parkingService.ListSlots(ctx, &query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.List(c, len(slots), slots)
}

// ListSlotsByFloor handles GET /parking/floor/:floor
func (h *ParkingHandler) ListSlotsByFloor(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.parking.list_by_floor")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	floor, err := strconv.Atoi(c.Param("floor"))
	if err != nil {
		span.SetStatus(codes.Error, "invalid floor")
		response.BadRequest(c, "Invalid floor number")
		return
	}
	span.SetAttributes(attribute.Int("floor", floor))

	var query dto.FloorSlotsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		span.SetStatus(codes.Error, "invalid query")
		response.BadRequest(c, err.Error())
		return
	}

	slots, err := h.parkingService.ListSlotsByFloor(ctx, floor, &query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.List(c, len(slots), slots)
}

// UpdateSlot handles PUT /parking/:id (admin)
func (h *ParkingHandler) UpdateSlot(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.parking.update_slot")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	slotID := c.Param("id")
	span.SetAttributes(attribute.String("slot_id", slotID))

	var req dto.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		response.BadRequest(c, err.Error())
		return
	}

	slot, err := h.parkingService.UpdateSlot(ctx, slotID, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.OK(c, slot)
}

// DeleteSlot handles DELETE /parking/:id (admin)
func (h *ParkingHandler) DeleteSlot(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.parking.delete_slot")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	slotID := c.Param("id")
	span.SetAttributes(attribute.String("slot_id", slotID))

	if err := h.parkingService.DeleteSlot(ctx, slotID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Message(c, "Parking slot deleted successfully")
}
