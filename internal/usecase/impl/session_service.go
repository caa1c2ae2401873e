// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"croptrade/config"
	deliverycontext "croptrade/internal/delivery/context"
	"croptrade/internal/domain/entity"
	domainerrors "croptrade/internal/domain/errors"
	"croptrade/internal/domain/repository"
	"croptrade/internal/domain/service"
	"croptrade/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	authRepo          repository.AuthRepository
	refreshTokenRepo  repository.RefreshTokenRepository
	roleRepo          repository.RoleRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	maxActiveSessions int
	logger            *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	AuthRepo         repository.AuthRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	RoleRepo         repository.RoleRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Config           *config.Config
	Logger           *slog.Logger
}

// NewSessionService is the constructor for sessionService. It receives all dependencies as interfaces.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	maxActiveSessions := 0
	if params.Config != nil && params.Config.Auth != nil {
		maxActiveSessions = params.Config.Auth.MaxActiveSessions
	}

	return &sessionService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		authRepo:          params.AuthRepo,
		refreshTokenRepo:  params.RefreshTokenRepo,
		roleRepo:          params.RoleRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		maxActiveSessions: maxActiveSessions,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignUp creates a new account with an email credential. The account starts
// with no role; the onboarding flow assigns one afterwards.
func (srv *sessionService) SignUp(ctx context.Context, input *usecase.SignUpInput) (*usecase.SignUpOutput, error) {
	srv.log(ctx).Info("Starting sign-up", slog.String("email", input.Email))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during sign-up", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "password does not meet security requirements")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during sign-up", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during sign-up")
	}

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		_, findAuthErr := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
		if findAuthErr == nil {
			return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email already registered")
		}
		if !errors.Is(findAuthErr, repository.ErrAuthNotFound) {
			return errors.Wrap(findAuthErr, "failed to find authentication")
		}

		newUser := &entity.User{Email: input.Email}
		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			return errors.Wrap(createErr, "failed to create user during sign-up")
		}

		newAuth := &entity.Authentication{
			UserID:         newUser.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: input.Email,
			PasswordHash:   hashedPassword,
		}
		if createErr := authRepo.CreateAuthentication(ctx, newAuth); createErr != nil {
			return errors.Wrap(createErr, "failed to create authentication during sign-up")
		}

		registeredUser = newUser

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to execute sign-up transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute sign-up transaction")
	}

	srv.log(ctx).Debug("Sign-up completed", slog.Any("userID", registeredUser.ID))

	return &usecase.SignUpOutput{User: registeredUser}, nil
}

// SignIn verifies the email credential and issues a token pair.
func (srv *sessionService) SignIn(ctx context.Context, input *usecase.SignInInput) (*usecase.SignInOutput, error) {
	srv.log(ctx).Info("Attempting sign-in", slog.String("email", input.Email))

	authRecord, err := srv.loadSignInAuth(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if !srv.hasher.Check(input.Password, authRecord.PasswordHash) {
		srv.log(ctx).Warn("Password mismatch during sign-in", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	signedInUser, err := srv.loadSignInUser(ctx, authRecord.UserID)
	if err != nil {
		return nil, err
	}

	roles, err := srv.loadUserRoles(ctx, signedInUser.ID)
	if err != nil {
		return nil, err
	}

	accessToken, refreshTokenString, err := srv.tokenService.GenerateTokens(signedInUser.ID, roles)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens during sign-in")
	}

	if err := srv.persistSignInRefreshToken(ctx, signedInUser.ID, refreshTokenString); err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Sign-in completed", slog.Any("userID", signedInUser.ID))

	return &usecase.SignInOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         signedInUser,
	}, nil
}

func (srv *sessionService) loadSignInAuth(ctx context.Context, email string) (*entity.Authentication, error) {
	var authRecord *entity.Authentication

	// Load authentication from primary in a short transaction to avoid stale reads on replicas.
	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.AuthRepo()

		var findAuthErr error
		authRecord, findAuthErr = authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, email)
		if findAuthErr != nil {
			if errors.Is(findAuthErr, repository.ErrAuthNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
			}

			return errors.Wrap(findAuthErr, "failed to find authentication")
		}

		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "failed to execute sign-in auth transaction")
	}

	return authRecord, nil
}

func (srv *sessionService) loadSignInUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	var signedInUser *entity.User

	// Load user data from primary in a short transaction to avoid stale reads on replicas.
	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		var findUserErr error
		signedInUser, findUserErr = userRepo.FindByID(ctx, userID)
		if findUserErr != nil {
			return errors.Wrap(findUserErr, "failed to find user by id")
		}

		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "failed to execute sign-in user transaction")
	}

	return signedInUser, nil
}

// loadUserRoles reads the user's role assignment. A user fresh out of sign-up
// has none yet, which is a normal state during onboarding.
func (srv *sessionService) loadUserRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	userRole, err := srv.roleRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to load user role")
	}

	return []string{string(userRole.Role)}, nil
}

func (srv *sessionService) persistSignInRefreshToken(ctx context.Context, userID uuid.UUID, refreshTokenString string) error {
	if srv.maxActiveSessions > 0 {
		// When session limit is enabled, keep lock/count/insert in one short transaction.
		if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			return srv.storeRefreshToken(ctx, repoFactory, userID, refreshTokenString)
		}); err != nil {
			return errors.Wrap(err, "failed to execute sign-in session transaction")
		}

		return nil
	}

	// No session limit: direct insert avoids unnecessary transaction overhead.
	if err := srv.storeRefreshTokenWithRepo(ctx, srv.refreshTokenRepo, userID, refreshTokenString); err != nil {
		return errors.Wrap(err, "failed to create refresh token during sign-in")
	}

	return nil
}

func (srv *sessionService) storeRefreshToken(ctx context.Context, repoFactory repository.RepositoryFactory, userID uuid.UUID, refreshTokenString string) error {
	refreshRepo := repoFactory.RefreshTokenRepo()
	userRepo := repoFactory.UserRepo()

	if srv.maxActiveSessions > 0 {
		if err := userRepo.AcquireSessionMutex(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to lock user row for session limit check")
		}

		activeSessions, err := refreshRepo.CountActiveSessionsByUserID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to count active sessions")
		}
		if activeSessions >= srv.maxActiveSessions {
			return errors.Wrap(
				domainerrors.ErrSessionLimitExceeded,
				"active session limit exceeded",
			)
		}
	}

	return srv.storeRefreshTokenWithRepo(ctx, refreshRepo, userID, refreshTokenString)
}

func (srv *sessionService) storeRefreshTokenWithRepo(ctx context.Context, refreshRepo repository.RefreshTokenRepository, userID uuid.UUID, refreshTokenString string) error {
	refreshTokenHash := srv.tokenService.HashToken(refreshTokenString)

	newRefreshToken := &entity.RefreshToken{
		UserID:    userID,
		TokenHash: refreshTokenHash,
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}

	if err := refreshRepo.CreateRefreshToken(ctx, newRefreshToken); err != nil {
		return errors.Wrap(err, "failed to store refresh token")
	}

	return nil
}

// RefreshToken issues a new access token from a valid refresh token.
// The refresh token itself remains unchanged.
func (srv *sessionService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	srv.log(ctx).Info("Attempting to refresh access token")

	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "invalid refresh token")
	}

	var newAccessToken string

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		refreshRepo := repoFactory.RefreshTokenRepo()
		roleRepo := repoFactory.RoleRepo()

		// 1. Verify the refresh token exists in the database.
		tokenHash := srv.tokenService.HashToken(input.RefreshToken)

		if _, findErr := refreshRepo.FindRefreshTokenByHash(ctx, tokenHash); findErr != nil {
			return errors.Wrap(findErr, "refresh token not found or expired")
		}

		// 2. Fetch user and role.
		user, findErr := userRepo.FindByID(ctx, claims.UserID)
		if findErr != nil {
			return errors.Wrap(findErr, "failed to find user")
		}

		var roles []string
		userRole, roleErr := roleRepo.FindByUserID(ctx, user.ID)
		if roleErr != nil && !errors.Is(roleErr, repository.ErrRoleNotFound) {
			return errors.Wrap(roleErr, "failed to load user role")
		}
		if roleErr == nil {
			roles = append(roles, string(userRole.Role))
		}

		// 3. Generate only a new access token; the refresh token stays valid
		// and unchanged, which avoids rotation races across devices.
		var genErr error
		newAccessToken, _, genErr = srv.tokenService.GenerateTokens(user.ID, roles)
		if genErr != nil {
			return errors.Wrap(genErr, "failed to generate new access token")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to execute refresh token transaction", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute refresh token transaction")
	}

	return &usecase.RefreshTokenOutput{
		AccessToken: newAccessToken,
	}, nil
}

// SignOut invalidates a session by deleting its refresh token.
func (srv *sessionService) SignOut(ctx context.Context, input *usecase.SignOutInput) error {
	srv.log(ctx).Info("Attempting to sign out")

	if _, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken); err != nil {
		// Even if the token is invalid, we can proceed to delete it from the database.
		srv.log(ctx).Warn("Sign-out with invalid token", slog.Any("error", err))
	}

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	// Single operation - use direct repository instance
	if err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
		srv.log(ctx).Error("Failed to delete refresh token", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete refresh token")
	}
	srv.log(ctx).Info("Successfully signed out")

	return nil
}

// RequestPasswordReset issues a short-lived reset token for the account.
// The outcome is identical whether or not the email exists, so the endpoint
// cannot be used to probe for registered addresses.
func (srv *sessionService) RequestPasswordReset(ctx context.Context, input *usecase.RequestPasswordResetInput) error {
	srv.log(ctx).Info("Password reset requested", slog.String("email", input.Email))

	authRecord, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			srv.log(ctx).Warn("Password reset requested for unknown email", slog.String("email", input.Email))

			return nil
		}

		return errors.Wrap(err, "failed to find authentication for password reset")
	}

	resetToken, err := srv.tokenService.GeneratePasswordResetToken(authRecord.UserID)
	if err != nil {
		return errors.Wrap(err, "failed to generate password reset token")
	}

	// TODO: deliver the token through a mail provider once one is wired up.
	// Until then it only surfaces in debug logs for local testing.
	srv.log(ctx).Debug("Password reset token issued", slog.Any("userID", authRecord.UserID), slog.String("token", resetToken))

	return nil
}

// ResetPassword replaces the account password using a valid reset token and
// revokes every active session for the account.
func (srv *sessionService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	srv.log(ctx).Info("Attempting password reset")

	claims, err := srv.tokenService.ValidatePasswordResetToken(input.Token)
	if err != nil {
		return errors.Wrap(err, "invalid password reset token")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, "password does not meet security requirements")
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()
		refreshRepo := repoFactory.RefreshTokenRepo()

		user, findErr := userRepo.FindByID(ctx, claims.UserID)
		if findErr != nil {
			return errors.Wrap(findErr, "failed to find user for password reset")
		}

		authRecord, findErr := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, user.Email)
		if findErr != nil {
			return errors.Wrap(findErr, "failed to find authentication for password reset")
		}

		authRecord.PasswordHash = hashedPassword
		if updateErr := authRepo.UpdateAuthentication(ctx, authRecord); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update password hash")
		}

		// Existing sessions are revoked so a stolen refresh token dies with
		// the old password.
		if deleteErr := refreshRepo.DeleteRefreshTokensByUserID(ctx, user.ID); deleteErr != nil {
			return errors.Wrap(deleteErr, "failed to revoke sessions after password reset")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to execute password reset transaction", slog.Any("error", err))

		return errors.Wrap(err, "failed to execute password reset transaction")
	}

	srv.log(ctx).Info("Password reset completed", slog.Any("userID", claims.UserID))

	return nil
}
