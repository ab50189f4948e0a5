package services

import (
	"context"
	"errors"
	"strings"

	"github.com/adrisdev/fotogram/backend/internal/apperrors"
	"github.com/adrisdev/fotogram/backend/internal/models"
	"github.com/adrisdev/fotogram/backend/internal/repositories"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// invalidCredentialsMsg is returned for unknown username and wrong password
// alike, so sign-in responses carry no user-enumeration signal.
const invalidCredentialsMsg = "invalid username or password"

// IdentityService orchestrates sign-up, sign-in and principal resolution.
type IdentityService struct {
	users  repositories.UserRepository
	hasher PasswordHasher
	tokens *TokenService
	log    *logrus.Logger
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(users repositories.UserRepository, hasher PasswordHasher, tokens *TokenService, log *logrus.Logger) *IdentityService {
	return &IdentityService{users: users, hasher: hasher, tokens: tokens, log: log}
}

// normalizeIdentifier lowercases and trims usernames and emails so uniqueness
// is case-insensitive.
func normalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SignUp creates an account and returns an access token for it. The unique
// indexes on username and email enforce uniqueness against concurrent
// sign-ups; the preliminary lookups only exist to attribute the conflict to
// the right field. If token signing fails after the insert the account stays
// created and the caller is expected to retry sign-in.
func (s *IdentityService) SignUp(ctx context.Context, req models.SignUpRequest) (string, error) {
	username := normalizeIdentifier(req.Username)
	email := normalizeIdentifier(req.Email)

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return "", apperrors.Conflict("email in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperrors.Internal("failed to look up email", err)
	}

	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return "", apperrors.Conflict("username in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperrors.Internal("failed to look up username", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return "", apperrors.Internal("failed to hash password", err)
	}

	user := &models.User{
		Name:     req.Name,
		Lastname: req.Lastname,
		Username: username,
		Email:    email,
		Password: hash,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a race with a concurrent sign-up; attribute the
			// conflict the same way the pre-checks would have
			if _, probeErr := s.users.GetUserByEmail(ctx, email); probeErr == nil {
				return "", apperrors.Conflict("email in use")
			}
			return "", apperrors.Conflict("username in use")
		}
		return "", apperrors.Internal("failed to create user", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": username}).Info("user signed up")

	token, err := s.tokens.Sign(user.ID)
	if err != nil {
		// the account exists at this point; report the failure without
		// compensating so the caller can sign in instead
		return "", apperrors.Internal("failed to generate access token", err)
	}
	return token, nil
}

// SignIn verifies credentials and returns an access token.
func (s *IdentityService) SignIn(ctx context.Context, req models.SignInRequest) (string, error) {
	username := normalizeIdentifier(req.Username)

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.Auth(invalidCredentialsMsg)
		}
		return "", apperrors.Internal("failed to look up username", err)
	}

	if !s.hasher.Compare(user.Password, req.Password) {
		return "", apperrors.Auth(invalidCredentialsMsg)
	}

	token, err := s.tokens.Sign(user.ID)
	if err != nil {
		return "", apperrors.Internal("failed to generate access token", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": username}).Info("user signed in")
	return token, nil
}

// ValidateUser resolves a principal id from a verified token to its account.
func (s *IdentityService) ValidateUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("failed to look up user", err)
	}
	return user, nil
}
