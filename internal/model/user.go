package model

import (
	"time"

	"github.com/IsaacLanzoni/projeto-belezza/pkg/auth"
)

// User is an authenticated account: a client booking services or a
// professional managing a schedule.
type User struct {
	Base
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         auth.Role  `db:"role" json:"role"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
}

type RegisterRequest struct {
	Name  string `json:"name" binding:"required,max=120"`
	Email string `json:"email" binding:"required,email"`
	// Length is enforced by security.MinPasswordLen at registration.
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=client professional"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
