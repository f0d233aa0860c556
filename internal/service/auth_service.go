package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"

	"github.com/prohmpiriya/smart-parking/internal/domain"
	"github.com/prohmpiriya/smart-parking/internal/dto"
	"github.com/prohmpiriya/smart-parking/internal/repository"
	"github.com/prohmpiriya/smart-parking/pkg/telemetry"
)

// AuthService defines the interface for registration and login
type AuthService interface {
	// Register creates a new account and returns a signed token
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)

	// Login verifies credentials and returns a signed token
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

// AuthConfig holds token signing settings
type AuthConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
	Issuer         string
}

// authService implements AuthService
type authService struct {
	userRepo repository.UserRepository
	cfg      *AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, cfg *AuthConfig) AuthService {
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = 24 * time.Hour
	}
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Register creates a new account
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.register")
	defer span.End()

	span.SetAttributes(attribute.String("email", req.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if exists {
		span.SetStatus(codes.Error, "email taken")
		return nil, domain.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		span.RecordError(err)
		return nil, err
	}

	token, err := s.signToken(user)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &dto.AuthResponse{
		Token: token,
		User:  dto.UserFromDomain(user),
	}, nil
}

// Login verifies credentials
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.login")
	defer span.End()

	span.SetAttributes(attribute.String("email", req.Email))

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if user == nil {
		span.SetStatus(codes.Error, "unknown email")
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		span.SetStatus(codes.Error, "bad password")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &dto.AuthResponse{
		Token: token,
		User:  dto.UserFromDomain(user),
	}, nil
}

func (s *authService) signToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     user.ID,
		"user_id": user.ID,
		"role":    string(user.Role),
		"iss":     s.cfg.Issuer,
		"iat":     now.Unix(),
		"exp":     now.Add(s.cfg.AccessTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
