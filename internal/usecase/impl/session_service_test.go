package impl

import (
	"context"
	"testing"
	"time"

	"croptrade/config"
	"croptrade/internal/domain/entity"
	domainerrors "croptrade/internal/domain/errors"
	"croptrade/internal/domain/repository"
	"croptrade/internal/domain/service"
	"croptrade/internal/mocks"
	"croptrade/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	svc       usecase.SessionUsecase
	txManager *mocks.TransactionManager
	hasher    *mocks.PasswordHasher
	tokens    *mocks.TokenService
}

func newSessionFixture(maxActiveSessions int) *sessionFixture {
	txManager := mocks.NewTransactionManager()
	hasher := new(mocks.PasswordHasher)
	tokens := new(mocks.TokenService)

	svc := NewSessionService(SessionServiceParams{
		TxManager:        txManager,
		UserRepo:         txManager.Factory.UserRepository,
		AuthRepo:         txManager.Factory.AuthRepository,
		RefreshTokenRepo: txManager.Factory.RefreshTokenRepository,
		RoleRepo:         txManager.Factory.RoleRepository,
		Hasher:           hasher,
		TokenService:     tokens,
		Config:           &config.Config{Auth: &config.AuthConfig{MaxActiveSessions: maxActiveSessions}},
		Logger:           newTestLogger(),
	})

	return &sessionFixture{svc: svc, txManager: txManager, hasher: hasher, tokens: tokens}
}

func TestSessionService_SignUp_Success(t *testing.T) {
	fx := newSessionFixture(0)
	ctx := context.Background()

	fx.hasher.On("ValidatePasswordStrength", "Str0ng!pass").Return(nil)
	fx.hasher.On("Hash", "Str0ng!pass").Return("hashed", nil)
	fx.txManager.Factory.AuthRepository.
		On("FindAuthentication", ctx, entity.ProviderTypeEmail, "ravi@example.com").
		Return(nil, repository.ErrAuthNotFound)
	fx.txManager.Factory.UserRepository.
		On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Email == "ravi@example.com"
		})).Return(nil)
	fx.txManager.Factory.AuthRepository.
		On("CreateAuthentication", ctx, mock.MatchedBy(func(a *entity.Authentication) bool {
			return a.Provider == entity.ProviderTypeEmail && a.PasswordHash == "hashed"
		})).Return(nil)

	out, err := fx.svc.SignUp(ctx, &usecase.SignUpInput{Email: "ravi@example.com", Password: "Str0ng!pass"})

	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", out.User.Email)
}

func TestSessionService_SignUp_DuplicateEmail(t *testing.T) {
	fx := newSessionFixture(0)
	ctx := context.Background()

	fx.hasher.On("ValidatePasswordStrength", mock.Anything).Return(nil)
	fx.hasher.On("Hash", mock.Anything).Return("hashed", nil)
	fx.txManager.Factory.AuthRepository.
		On("FindAuthentication", ctx, entity.ProviderTypeEmail, "taken@example.com").
		Return(&entity.Authentication{UserID: uuid.New()}, nil)

	out, err := fx.svc.SignUp(ctx, &usecase.SignUpInput{Email: "taken@example.com", Password: "Str0ng!pass"})

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	assert.Nil(t, out)
}

func TestSessionService_SignUp_WeakPassword(t *testing.T) {
	fx := newSessionFixture(0)
	ctx := context.Background()

	fx.hasher.On("ValidatePasswordStrength", "weak").Return(assert.AnError)

	out, err := fx.svc.SignUp(ctx, &usecase.SignUpInput{Email: "ravi@example.com", Password: "weak"})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Nil(t, out)
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestSessionService_SignIn_Success(t *testing.T) {
	fx := newSessionFixture(0)
	ctx := context.Background()
	userID := uuid.New()

	fx.txManager.Factory.AuthRepository.
		On("FindAuthentication", ctx, entity.ProviderTypeEmail, "ravi@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "hashed"}, nil)
	fx.hasher.On("Check", "Str0ng!pass", "hashed").Return(true)
	fx.txManager.Factory.UserRepository.
		On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Email: "ravi@example.com"}, nil)
	fx.txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.UserRole{UserID: userID, Role: entity.RoleFarmer}, nil)
	fx.tokens.On("GenerateTokens", userID, []string{"farmer"}).Return("access", "refresh", nil)
	fx.tokens.On("HashToken", "refresh").Return("refreshhash")
	fx.tokens.On("GetRefreshTokenDuration").Return(7 * 24 * time.Hour)
	fx.txManager.Factory.RefreshTokenRepository.
		On("CreateRefreshToken", ctx, mock.MatchedBy(func(rt *entity.RefreshToken) bool {
			return rt.UserID == userID && rt.TokenHash == "refreshhash"
		})).Return(nil)

	out, err := fx.svc.SignIn(ctx, &usecase.SignInInput{Email: "ravi@example.com", Password: "Str0ng!pass"})

	require.NoError(t, err)
	assert.Equal(t, "access", out.AccessToken)
	assert.Equal(t, "refresh", out.RefreshToken)
	assert.Equal(t, userID, out.User.ID)
}

func TestSessionService_SignIn_NoRoleYet(t *testing.T) {
	fx := newSessionFixture(0)
	ctx := context.Background()
	userID := uuid.New()

	fx.txManager.Factory.AuthRepository.
		On("FindAuthentication", ctx, entity.ProviderTypeEmail, "new@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "hashed"}, nil)
	fx.hasher.On("Check", mock.Anything, "hashed").Return(true)
	fx.txManager.Factory.UserRepository.
		On("FindByID", ctx, userID).Return(&entity.User{ID: userID}, nil)
	fx.txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).Return(nil, repository.ErrRoleNotFound)
	fx.tokens.On("GenerateTokens", userID, []string(nil)).Return("access", "refresh", nil)
	fx.tokens.On("HashToken", "refresh").Return("refreshhash")
	fx.tokens.On("GetRefreshTokenDuration").Return(7 * 24 * time.Hour)
	fx.txManager.Factory.RefreshTokenRepository.
		On("CreateRefreshToken", ctx, mock.AnythingOfType("*entity.RefreshToken")).Return(nil)

	out, err := fx.svc.SignIn(ctx, &usecase.SignInInput{Email: "new@example.com", Password: "Str0ng!pass"})

	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
}

func TestSessionService_SignIn_WrongPassword(t *testing.T) {
	fx := newSessionFixture(0)
	ctx := context.Background()
	userID := uuid.New()

	fx.txManager.Factory.AuthRepository.
		On("FindAuthentication", ctx, entity.ProviderTypeEmail, "ravi@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "hashed"}, nil)
	fx.hasher.On("Check", "wrong", "hashed").Return(false)

	out, err := fx.svc.SignIn(ctx, &usecase.SignInInput{Email: "ravi@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Nil(t, out)
}

func TestSessionService_SignIn_UnknownEmail(t *testing.T) {
	fx := newSessionFixture(0)
	ctx := context.Background()

	fx.txManager.Factory.AuthRepository.
		On("FindAuthentication", ctx, entity.ProviderTypeEmail, "ghost@example.com").
		Return(nil, repository.ErrAuthNotFound)

	out, err := fx.svc.SignIn(ctx, &usecase.SignInInput{Email: "ghost@example.com", Password: "whatever"})

	// Unknown email and wrong password are indistinguishable to the caller.
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Nil(t, out)
}

func TestSessionService_SignIn_SessionLimitExceeded(t *testing.T) {
	fx := newSessionFixture(2)
	ctx := context.Background()
	userID := uuid.New()

	fx.txManager.Factory.AuthRepository.
		On("FindAuthentication", ctx, entity.ProviderTypeEmail, "busy@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "hashed"}, nil)
	fx.hasher.On("Check", mock.Anything, "hashed").Return(true)
	fx.txManager.Factory.UserRepository.
		On("FindByID", ctx, userID).Return(&entity.User{ID: userID}, nil)
	fx.txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.UserRole{UserID: userID, Role: entity.RoleBuyer}, nil)
	fx.tokens.On("GenerateTokens", userID, []string{"buyer"}).Return("access", "refresh", nil)
	fx.txManager.Factory.UserRepository.
		On("AcquireSessionMutex", ctx, userID).Return(nil)
	fx.txManager.Factory.RefreshTokenRepository.
		On("CountActiveSessionsByUserID", ctx, userID).Return(2, nil)

	out, err := fx.svc.SignIn(ctx, &usecase.SignInInput{Email: "busy@example.com", Password: "Str0ng!pass"})

	assert.ErrorIs(t, err, domainerrors.ErrSessionLimitExceeded)
	assert.Nil(t, out)
	fx.txManager.Factory.RefreshTokenRepository.AssertNotCalled(t, "CreateRefreshToken", ctx, mock.Anything)
}

func TestSessionService_RefreshToken_Success(t *testing.T) {
	fx := newSessionFixture(0)
	ctx := context.Background()
	userID := uuid.New()

	fx.tokens.On("ValidateRefreshToken", "refresh").
		Return(&service.Claims{UserID: userID, Type: "refresh"}, nil)
	fx.tokens.On("HashToken", "refresh").Return("refreshhash")
	fx.txManager.Factory.RefreshTokenRepository.
		On("FindRefreshTokenByHash", ctx, "refreshhash").
		Return(&entity.RefreshToken{UserID: userID, TokenHash: "refreshhash"}, nil)
	fx.txManager.Factory.UserRepository.
		On("FindByID", ctx, userID).Return(&entity.User{ID: userID}, nil)
	fx.txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.UserRole{UserID: userID, Role: entity.RoleFarmer}, nil)
	fx.tokens.On("GenerateTokens", userID, []string{"farmer"}).Return("newaccess", "ignored", nil)

	out, err := fx.svc.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "refresh"})

	require.NoError(t, err)
	assert.Equal(t, "newaccess", out.AccessToken)
}

func TestSessionService_RefreshToken_UnknownSession(t *testing.T) {
	fx := newSessionFixture(0)
	ctx := context.Background()
	userID := uuid.New()

	fx.tokens.On("ValidateRefreshToken", "refresh").
		Return(&service.Claims{UserID: userID, Type: "refresh"}, nil)
	fx.tokens.On("HashToken", "refresh").Return("refreshhash")
	fx.txManager.Factory.RefreshTokenRepository.
		On("FindRefreshTokenByHash", ctx, "refreshhash").
		Return(nil, repository.ErrRefreshTokenNotFound)

	out, err := fx.svc.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "refresh"})

	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestSessionService_RefreshToken_InvalidToken(t *testing.T) {
	fx := newSessionFixture(0)
	ctx := context.Background()

	fx.tokens.On("ValidateRefreshToken", "garbage").Return(nil, assert.AnError)

	out, err := fx.svc.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "garbage"})

	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestSessionService_SignOut_DeletesSession(t *testing.T) {
	fx := newSessionFixture(0)
	ctx := context.Background()

	fx.tokens.On("ValidateRefreshToken", "refresh").
		Return(&service.Claims{UserID: uuid.New(), Type: "refresh"}, nil)
	fx.tokens.On("HashToken", "refresh").Return("refreshhash")
	fx.txManager.Factory.RefreshTokenRepository.
		On("DeleteRefreshTokenByHash", ctx, "refreshhash").Return(nil)

	err := fx.svc.SignOut(ctx, &usecase.SignOutInput{RefreshToken: "refresh"})

	require.NoError(t, err)
}

func TestSessionService_SignOut_InvalidTokenStillDeletes(t *testing.T) {
	fx := newSessionFixture(0)
	ctx := context.Background()

	fx.tokens.On("ValidateRefreshToken", "expired").Return(nil, assert.AnError)
	fx.tokens.On("HashToken", "expired").Return("expiredhash")
	fx.txManager.Factory.RefreshTokenRepository.
		On("DeleteRefreshTokenByHash", ctx, "expiredhash").Return(nil)

	err := fx.svc.SignOut(ctx, &usecase.SignOutInput{RefreshToken: "expired"})

	require.NoError(t, err)
}

func TestSessionService_RequestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	fx := newSessionFixture(0)
	ctx := context.Background()

	fx.txManager.Factory.AuthRepository.
		On("FindAuthentication", ctx, entity.ProviderTypeEmail, "ghost@example.com").
		Return(nil, repository.ErrAuthNotFound)

	err := fx.svc.RequestPasswordReset(ctx, &usecase.RequestPasswordResetInput{Email: "ghost@example.com"})

	require.NoError(t, err)
	fx.tokens.AssertNotCalled(t, "GeneratePasswordResetToken", mock.Anything)
}

func TestSessionService_RequestPasswordReset_IssuesToken(t *testing.T) {
	fx := newSessionFixture(0)
	ctx := context.Background()
	userID := uuid.New()

	fx.txManager.Factory.AuthRepository.
		On("FindAuthentication", ctx, entity.ProviderTypeEmail, "ravi@example.com").
		Return(&entity.Authentication{UserID: userID}, nil)
	fx.tokens.On("GeneratePasswordResetToken", userID).Return("resettoken", nil)

	err := fx.svc.RequestPasswordReset(ctx, &usecase.RequestPasswordResetInput{Email: "ravi@example.com"})

	require.NoError(t, err)
}

func TestSessionService_ResetPassword_RevokesAllSessions(t *testing.T) {
	fx := newSessionFixture(0)
	ctx := context.Background()
	userID := uuid.New()

	fx.tokens.On("ValidatePasswordResetToken", "resettoken").
		Return(&service.Claims{UserID: userID, Type: "password_reset"}, nil)
	fx.hasher.On("ValidatePasswordStrength", "N3w!password").Return(nil)
	fx.hasher.On("Hash", "N3w!password").Return("newhash", nil)
	fx.txManager.Factory.UserRepository.
		On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Email: "ravi@example.com"}, nil)
	fx.txManager.Factory.AuthRepository.
		On("FindAuthentication", ctx, entity.ProviderTypeEmail, "ravi@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "oldhash"}, nil)
	fx.txManager.Factory.AuthRepository.
		On("UpdateAuthentication", ctx, mock.MatchedBy(func(a *entity.Authentication) bool {
			return a.PasswordHash == "newhash"
		})).Return(nil)
	fx.txManager.Factory.RefreshTokenRepository.
		On("DeleteRefreshTokensByUserID", ctx, userID).Return(nil)

	err := fx.svc.ResetPassword(ctx, &usecase.ResetPasswordInput{Token: "resettoken", NewPassword: "N3w!password"})

	require.NoError(t, err)
}

func TestSessionService_ResetPassword_InvalidToken(t *testing.T) {
	fx := newSessionFixture(0)
	ctx := context.Background()

	fx.tokens.On("ValidatePasswordResetToken", "bogus").Return(nil, assert.AnError)

	err := fx.svc.ResetPassword(ctx, &usecase.ResetPasswordInput{Token: "bogus", NewPassword: "N3w!password"})

	assert.Error(t, err)
}
