package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Papéis possíveis de um usuário do marketplace
const (
	RoleConsumer = "consumer"
	RoleFarmer   = "farmer"
	RoleAdmin    = "admin"
)

type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password,omitempty"`
	Role         string     `json:"role"`
	Active       bool       `json:"active"`
	AvatarURL    *string    `json:"avatar_url"`
	Deleted      bool       `json:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// UpdateProfileRequest contém os campos opcionais de atualização do próprio perfil
type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
	Password  *string `json:"password"`
}

type Claims struct {
	UserID    int
	UserName  string
	UserEmail string
	UserRole  string
	jwt.RegisteredClaims
}
