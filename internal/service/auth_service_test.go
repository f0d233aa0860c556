package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/prohmpiriya/smart-parking/internal/domain"
	"github.com/prohmpiriya/smart-parking/internal/dto"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc        func(ctx context.Context, user *domain.User) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
	ListFunc          func(ctx context.Context) ([]*domain.User, error)
	UpdateFunc        func(ctx context.Context, user *domain.User) error
	DeleteFunc        func(ctx context.Context, id string) error
	AddVehicleFunc    func(ctx context.Context, vehicle *domain.Vehicle) error
	ListVehiclesFunc  func(ctx context.Context, userID string) ([]*domain.Vehicle, error)
	DeleteVehicleFunc func(ctx context.Context, userID, vehicleID string) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*domain.User{}, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	if m.AddVehicleFunc != nil {
		return m.AddVehicleFunc(ctx, vehicle)
	}
	return nil
}

func (m *MockUserRepository) ListVehicles(ctx context.Context, userID string) ([]*domain.Vehicle, error) {
	if m.ListVehiclesFunc != nil {
		return m.ListVehiclesFunc(ctx, userID)
	}
	return []*domain.Vehicle{}, nil
}

func (m *MockUserRepository) DeleteVehicle(ctx context.Context, userID, vehicleID string) error {
	if m.DeleteVehicleFunc != nil {
		return m.DeleteVehicleFunc(ctx, userID, vehicleID)
	}
	return nil
}

const testSecret = "test-secret"

func newTestAuthService(userRepo *MockUserRepository) AuthService {
	return NewAuthService(userRepo, &AuthConfig{Secret: testSecret, Issuer: "smart-parking"})
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		req        *dto.RegisterRequest
		setupMocks func(ur *MockUserRepository)
		wantErr    error
	}{
		{
			name: "successful registration",
			req:  &dto.RegisterRequest{Name: "Test User", Email: "user@example.com", Password: "password123"},
		},
		{
			name: "email already taken",
			req:  &dto.RegisterRequest{Name: "Test User", Email: "user@example.com", Password: "password123"},
			setupMocks: func(ur *MockUserRepository) {
				ur.ExistsByEmailFunc = func(ctx context.Context, email string) (bool, error) {
					return true, nil
				}
			},
			wantErr: domain.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &MockUserRepository{}

			var created *domain.User
			userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
				created = user
				return nil
			}

			if tt.setupMocks != nil {
				tt.setupMocks(userRepo)
			}

			svc := newTestAuthService(userRepo)
			resp, err := svc.Register(context.Background(), tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Register() unexpected error = %v", err)
			}
			if resp.Token == "" {
				t.Error("Register() expected signed token")
			}
			if resp.User.Role != string(domain.RoleUser) {
				t.Errorf("Register() role = %s, new accounts must be plain users", resp.User.Role)
			}
			if created == nil {
				t.Fatal("Register() expected user to be persisted")
			}
			if created.PasswordHash == tt.req.Password {
				t.Error("Register() stored the plaintext password")
			}
			if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte(tt.req.Password)); err != nil {
				t.Errorf("Register() stored hash does not match password: %v", err)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	account := &domain.User{
		ID:           "user-001",
		Name:         "Test User",
		Email:        "user@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}

	tests := []struct {
		name       string
		req        *dto.LoginRequest
		setupMocks func(ur *MockUserRepository)
		wantErr    error
	}{
		{
			name: "successful login",
			req:  &dto.LoginRequest{Email: "user@example.com", Password: "password123"},
			setupMocks: func(ur *MockUserRepository) {
				ur.GetByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return account, nil
				}
			},
		},
		{
			name:    "unknown email",
			req:     &dto.LoginRequest{Email: "nobody@example.com", Password: "password123"},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			req:  &dto.LoginRequest{Email: "user@example.com", Password: "wrong"},
			setupMocks: func(ur *MockUserRepository) {
				ur.GetByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return account, nil
				}
			},
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &MockUserRepository{}
			if tt.setupMocks != nil {
				tt.setupMocks(userRepo)
			}

			svc := newTestAuthService(userRepo)
			resp, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Login() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Login() unexpected error = %v", err)
			}

			token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
				return []byte(testSecret), nil
			})
			if err != nil || !token.Valid {
				t.Fatalf("Login() token failed to parse: %v", err)
			}
			claims := token.Claims.(jwt.MapClaims)
			if claims["user_id"] != "user-001" {
				t.Errorf("Login() token user_id = %v, want user-001", claims["user_id"])
			}
			if claims["role"] != string(domain.RoleAdmin) {
				t.Errorf("Login() token role = %v, want admin", claims["role"])
			}
		})
	}
}
