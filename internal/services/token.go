package services

import (
	"errors"
	"time"

	"github.com/adrisdev/fotogram/backend/internal/apperrors"
	"github.com/adrisdev/fotogram/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
)

// TokenService signs and verifies stateless HS256 access tokens carrying a
// principal id and expiry. Tokens are never persisted or revoked; they are
// verifiable by signature alone and expire passively.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a new TokenService
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Sign issues a token for the given principal id
func (s *TokenService) Sign(userID uint) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the principal id. Expired
// tokens and bad signatures are reported as distinct auth errors.
func (s *TokenService) Verify(tokenString string) (uint, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, apperrors.Auth("token expired")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, apperrors.Auth("invalid token signature")
		default:
			return 0, apperrors.Auth("invalid token")
		}
	}
	if !token.Valid {
		return 0, apperrors.Auth("invalid token")
	}
	return claims.UserID, nil
}
