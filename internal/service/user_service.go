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

// UserService defines the interface for profile and account management
type UserService interface {
	// GetProfile retrieves a user with their registered vehicles
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)

	// UpdateProfile applies a partial update to the caller's profile
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)

	// AddVehicle registers a license plate to the caller
	AddVehicle(ctx context.Context, userID string, req *dto.AddVehicleRequest) (*dto.VehicleResponse, error)

	// RemoveVehicle removes a vehicle owned by the caller
	RemoveVehicle(ctx context.Context, userID, vehicleID string) error

	// ListUsers retrieves all users, newest first. Admin only.
	ListUsers(ctx context.Context) ([]*dto.UserResponse, error)

	// DeleteUser removes a user account. Admin only.
	DeleteUser(ctx context.Context, userID string) error
}

// userService implements UserService
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetProfile retrieves a user with their registered vehicles
func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.get_profile")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", userID))

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if user == nil {
		span.SetStatus(codes.Error, "user not found")
		return nil, domain.ErrUserNotFound
	}

	vehicles, err := s.userRepo.ListVehicles(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	profile := &dto.ProfileResponse{
		UserResponse: *dto.UserFromDomain(user),
		Vehicles:     make([]*dto.VehicleResponse, len(vehicles)),
	}
	for i, v := range vehicles {
		profile.Vehicles[i] = dto.VehicleFromDomain(v)
	}
	return profile, nil
}

// UpdateProfile applies a partial update to the caller's profile
func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.update_profile")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", userID))

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if user == nil {
		span.SetStatus(codes.Error, "user not found")
		return nil, domain.ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if exists {
			span.SetStatus(codes.Error, "email taken")
			return nil, domain.ErrUserAlreadyExists
		}
		user.Email = *req.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return dto.UserFromDomain(user), nil
}

// AddVehicle registers a license plate to the caller
func (s *userService) AddVehicle(ctx context.Context, userID string, req *dto.AddVehicleRequest) (*dto.VehicleResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.add_vehicle")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", userID))

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if user == nil {
		span.SetStatus(codes.Error, "user not found")
		return nil, domain.ErrUserNotFound
	}

	vehicle := &domain.Vehicle{
		ID:          uuid.New().String(),
		UserID:      userID,
		PlateNumber: req.PlateNumber,
		CreatedAt:   time.Now(),
	}
	if err := s.userRepo.AddVehicle(ctx, vehicle); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return dto.VehicleFromDomain(vehicle), nil
}

// RemoveVehicle removes a vehicle owned by the caller
func (s *userService) RemoveVehicle(ctx context.Context, userID, vehicleID string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.user.remove_vehicle")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("vehicle_id", vehicleID),
	)

	if err := s.userRepo.DeleteVehicle(ctx, userID, vehicleID); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// ListUsers retrieves all users, newest first
func (s *userService) ListUsers(ctx context.Context) ([]*dto.UserResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.list")
	defer span.End()

	users, err := s.userRepo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return dto.UsersFromDomain(users), nil
}

// DeleteUser removes a user account
func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.user.delete")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", userID))

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
