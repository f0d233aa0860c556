package handler

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/prohmpiriya/smart-parking/internal/dto"
	"github.com/prohmpiriya/smart-parking/internal/middleware"
	"github.com/prohmpiriya/smart-parking/internal/service"
	"github.com/prohmpiriya/smart-parking/pkg/response"
	"github.com/prohmpiriya/smart-parking/pkg/telemetry"
)

// UserHandler handles profile and account HTTP requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile handles GET /users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.user.get_profile")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	profile, err := h.userService.GetProfile(ctx, c.GetString(middleware.ContextUserID))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.OK(c, profile)
}

// UpdateProfile handles PUT /users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.user.update_profile")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(ctx, c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.OK(c, user)
}

// AddVehicle handles POST /users/vehicles
func (h *UserHandler) AddVehicle(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.user.add_vehicle")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var req dto.AddVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		response.BadRequest(c, err.Error())
		return
	}

	vehicle, err := h.userService.AddVehicle(ctx, c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Created(c, vehicle)
}

// RemoveVehicle handles DELETE /users/vehicles/:id
func (h *UserHandler) RemoveVehicle(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.user.remove_vehicle")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	vehicleID := c.Param("id")
	span.SetAttributes(attribute.String("vehicle_id", vehicleID))

	if err := h.userService.RemoveVehicle(ctx, c.GetString(middleware.ContextUserID), vehicleID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Message(c, "Vehicle removed successfully")
}

// ListUsers handles GET /users (admin)
func (h *UserHandler) ListUsers(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.user.list")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	users, err := h.userService.ListUsers(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.List(c, len(users), users)
}

// DeleteUser handles DELETE /users/:id (admin)
func (h *UserHandler) DeleteUser(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.user.delete")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID := c.Param("id")
	span.SetAttributes(attribute.String("user_id", userID))

	if err := h.userService.DeleteUser(ctx, userID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Message(c, "User deleted successfully")
}
