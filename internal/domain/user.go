package domain

import "time"

// Role represents a user's authorization level
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an account that can book parking slots
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Vehicle is a license plate registered to a user
type Vehicle struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	PlateNumber string    `json:"plateNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}
