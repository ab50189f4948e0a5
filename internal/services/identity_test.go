package services

import (
	"context"
	"testing"
	"time"

	"github.com/adrisdev/fotogram/backend/internal/apperrors"
	"github.com/adrisdev/fotogram/backend/internal/models"
	"github.com/adrisdev/fotogram/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityService(t *testing.T) *IdentityService {
	t.Helper()
	users := repositories.NewPostgresUserRepository(newTestDB(t))
	tokens := NewTokenService("test-secret", time.Hour)
	return NewIdentityService(users, NewPasswordHasher(), tokens, newTestLogger())
}

func signUpReq(username, email string) models.SignUpRequest {
	return models.SignUpRequest{
		Name:     "Ana",
		Lastname: "García",
		Username: username,
		Email:    email,
		Password: "secret123",
	}
}

func TestSignUpIssuesVerifiableToken(t *testing.T) {
	svc := newIdentityService(t)
	ctx := context.Background()

	token, err := svc.SignUp(ctx, signUpReq("ana", "ana@x.com"))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.tokens.Verify(token)
	require.NoError(t, err)

	user, err := svc.ValidateUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)
	assert.Equal(t, "ana@x.com", user.Email)
}

func TestSignUpUsernameConflict(t *testing.T) {
	svc := newIdentityService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, signUpReq("ana", "ana@x.com"))
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, signUpReq("ana", "other@x.com"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.EqualError(t, err, "username in use")
}

func TestSignUpEmailConflict(t *testing.T) {
	svc := newIdentityService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, signUpReq("ana", "ana@x.com"))
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, signUpReq("other", "ana@x.com"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.EqualError(t, err, "email in use")
}

func TestSignUpUniquenessIsCaseInsensitive(t *testing.T) {
	svc := newIdentityService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, signUpReq("ana", "ana@x.com"))
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, signUpReq("Ana", "other@x.com"))
	require.Error(t, err)
	assert.EqualError(t, err, "username in use")

	_, err = svc.SignUp(ctx, signUpReq("other", "ANA@X.COM"))
	require.Error(t, err)
	assert.EqualError(t, err, "email in use")
}

func TestSignInSuccess(t *testing.T) {
	svc := newIdentityService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, signUpReq("ana", "ana@x.com"))
	require.NoError(t, err)

	token, err := svc.SignIn(ctx, models.SignInRequest{Username: "ana", Password: "secret123"})
	require.NoError(t, err)

	userID, err := svc.tokens.Verify(token)
	require.NoError(t, err)
	user, err := svc.ValidateUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)
}

func TestSignInNoEnumerationSignal(t *testing.T) {
	svc := newIdentityService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, signUpReq("ana", "ana@x.com"))
	require.NoError(t, err)

	_, unknownErr := svc.SignIn(ctx, models.SignInRequest{Username: "nonexistent", Password: "x"})
	_, wrongPassErr := svc.SignIn(ctx, models.SignInRequest{Username: "ana", Password: "wrongpass"})

	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)
	assert.Equal(t, apperrors.KindOf(unknownErr), apperrors.KindOf(wrongPassErr))
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
	assert.EqualError(t, unknownErr, "invalid username or password")
}

func TestValidateUserNotFound(t *testing.T) {
	svc := newIdentityService(t)

	_, err := svc.ValidateUser(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestNormalizeIdentifier(t *testing.T) {
	assert.Equal(t, "ana", normalizeIdentifier("  Ana "))
	assert.Equal(t, "ana@x.com", normalizeIdentifier("ANA@X.COM"))
}
