package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account record stored in PostgreSQL. Username and email are
// persisted lowercased; the unique indexes are the source of truth for
// account uniqueness, also under concurrent sign-ups.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Lastname  string    `json:"lastname"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:30"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:254"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SignUpRequest defines the request body for account creation
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=50"`
	Lastname string `json:"lastname" validate:"required,min=1,max=50"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignInRequest defines the request body for credential sign-in
type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Profile is a user together with both sides of their follow graph
type Profile struct {
	User
	Followers []User `json:"followers"`
	Following []User `json:"following"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims.
// The token carries only the principal id and expiry; it is verified by
// signature alone and never persisted.
type JwtCustomClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}
