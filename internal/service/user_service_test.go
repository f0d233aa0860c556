package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prohmpiriya/smart-parking/internal/domain"
	"github.com/prohmpiriya/smart-parking/internal/dto"
)

func testAccount() *domain.User {
	return &domain.User{
		ID:        "user-001",
		Name:      "Test User",
		Email:     "user@example.com",
		Role:      domain.RoleUser,
		CreatedAt: time.Now(),
	}
}

func TestUserService_GetProfile(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(ur *MockUserRepository)
		wantErr    error
	}{
		{
			name: "profile with vehicles",
			setupMocks: func(ur *MockUserRepository) {
				ur.GetByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
					return testAccount(), nil
				}
				ur.ListVehiclesFunc = func(ctx context.Context, userID string) ([]*domain.Vehicle, error) {
					return []*domain.Vehicle{
						{ID: "vehicle-001", UserID: userID, PlateNumber: "ABC123"},
						{ID: "vehicle-002", UserID: userID, PlateNumber: "XYZ789"},
					}, nil
				}
			},
		},
		{
			name:    "user not found",
			wantErr: domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &MockUserRepository{}
			if tt.setupMocks != nil {
				tt.setupMocks(userRepo)
			}

			svc := NewUserService(userRepo)
			profile, err := svc.GetProfile(context.Background(), "user-001")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetProfile() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("GetProfile() unexpected error = %v", err)
			}
			if profile.Email != "user@example.com" {
				t.Errorf("GetProfile() email = %s, want user@example.com", profile.Email)
			}
			if len(profile.Vehicles) != 2 {
				t.Errorf("GetProfile() returned %d vehicles, want 2", len(profile.Vehicles))
			}
		})
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	tests := []struct {
		name       string
		req        *dto.UpdateProfileRequest
		setupMocks func(ur *MockUserRepository)
		wantErr    error
		wantName   string
		wantEmail  string
	}{
		{
			name: "rename only",
			req:  &dto.UpdateProfileRequest{Name: strPtr("Renamed")},
			setupMocks: func(ur *MockUserRepository) {
				ur.GetByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
					return testAccount(), nil
				}
			},
			wantName:  "Renamed",
			wantEmail: "user@example.com",
		},
		{
			name: "email change to a free address",
			req:  &dto.UpdateProfileRequest{Email: strPtr("new@example.com")},
			setupMocks: func(ur *MockUserRepository) {
				ur.GetByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
					return testAccount(), nil
				}
			},
			wantName:  "Test User",
			wantEmail: "new@example.com",
		},
		{
			name: "email change to a taken address",
			req:  &dto.UpdateProfileRequest{Email: strPtr("taken@example.com")},
			setupMocks: func(ur *MockUserRepository) {
				ur.GetByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
					return testAccount(), nil
				}
				ur.ExistsByEmailFunc = func(ctx context.Context, email string) (bool, error) {
					return true, nil
				}
			},
			wantErr: domain.ErrUserAlreadyExists,
		},
		{
			// Re-submitting the current email skips the uniqueness check
			name: "unchanged email",
			req:  &dto.UpdateProfileRequest{Email: strPtr("user@example.com")},
			setupMocks: func(ur *MockUserRepository) {
				ur.GetByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
					return testAccount(), nil
				}
				ur.ExistsByEmailFunc = func(ctx context.Context, email string) (bool, error) {
					t.Error("UpdateProfile() must not check uniqueness for an unchanged email")
					return true, nil
				}
			},
			wantName:  "Test User",
			wantEmail: "user@example.com",
		},
		{
			name:    "user not found",
			req:     &dto.UpdateProfileRequest{Name: strPtr("Renamed")},
			wantErr: domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &MockUserRepository{}
			if tt.setupMocks != nil {
				tt.setupMocks(userRepo)
			}

			svc := NewUserService(userRepo)
			user, err := svc.UpdateProfile(context.Background(), "user-001", tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("UpdateProfile() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("UpdateProfile() unexpected error = %v", err)
			}
			if user.Name != tt.wantName {
				t.Errorf("UpdateProfile() name = %s, want %s", user.Name, tt.wantName)
			}
			if user.Email != tt.wantEmail {
				t.Errorf("UpdateProfile() email = %s, want %s", user.Email, tt.wantEmail)
			}
		})
	}
}

func TestUserService_AddVehicle(t *testing.T) {
	userRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return testAccount(), nil
		},
	}

	svc := NewUserService(userRepo)
	vehicle, err := svc.AddVehicle(context.Background(), "user-001", &dto.AddVehicleRequest{PlateNumber: "DEF456"})
	if err != nil {
		t.Fatalf("AddVehicle() unexpected error = %v", err)
	}
	if vehicle.ID == "" {
		t.Error("AddVehicle() expected generated ID")
	}
	if vehicle.PlateNumber != "DEF456" {
		t.Errorf("AddVehicle() plate = %s, want DEF456", vehicle.PlateNumber)
	}

	userRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
		return nil, nil
	}
	if _, err := svc.AddVehicle(context.Background(), "missing", &dto.AddVehicleRequest{PlateNumber: "DEF456"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("AddVehicle() error = %v, want ErrUserNotFound", err)
	}
}

func TestUserService_RemoveVehicle(t *testing.T) {
	// The repository scopes deletion to the owner: someone else's vehicle
	// ID looks like a missing vehicle
	userRepo := &MockUserRepository{
		DeleteVehicleFunc: func(ctx context.Context, userID, vehicleID string) error {
			if userID != "user-001" {
				return domain.ErrVehicleNotFound
			}
			return nil
		},
	}

	svc := NewUserService(userRepo)
	if err := svc.RemoveVehicle(context.Background(), "user-001", "vehicle-001"); err != nil {
		t.Fatalf("RemoveVehicle() unexpected error = %v", err)
	}
	if err := svc.RemoveVehicle(context.Background(), "user-002", "vehicle-001"); !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Errorf("RemoveVehicle() error = %v, want ErrVehicleNotFound", err)
	}
}
