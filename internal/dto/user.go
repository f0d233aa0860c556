package dto

import (
	"time"

	"github.com/prohmpiriya/smart-parking/internal/domain"
)

// RegisterRequest is the payload for account registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the payload for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the payload for a partial profile update
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// AddVehicleRequest registers a license plate to the caller
type AddVehicleRequest struct {
	PlateNumber string `json:"plateNumber" binding:"required"`
}

// UserResponse is the API representation of a user
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// VehicleResponse is the API representation of a registered vehicle
type VehicleResponse struct {
	ID          string    `json:"id"`
	PlateNumber string    `json:"plateNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProfileResponse is a user plus their registered vehicles
type ProfileResponse struct {
	UserResponse
	Vehicles []*VehicleResponse `json:"vehicles"`
}

// AuthResponse is returned from register and login
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// UserFromDomain converts a domain user to its API representation
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// UsersFromDomain converts a list of users
func UsersFromDomain(users []*domain.User) []*UserResponse {
	responses := make([]*UserResponse, len(users))
	for i, u := range users {
		responses[i] = UserFromDomain(u)
	}
	return responses
}

// VehicleFromDomain converts a domain vehicle to its API representation
func VehicleFromDomain(v *domain.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		ID:          v.ID,
		PlateNumber: v.PlateNumber,
		CreatedAt:   v.CreatedAt,
	}
}
