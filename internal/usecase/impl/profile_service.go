package impl

import (
	"context"
	"log/slog"
	"path"
	"strings"

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

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager   repository.TransactionManager
	profileRepo repository.ProfileRepository
	roleRepo    repository.RoleRepository
	storage     service.FileStorage
	qrcode      service.QRCodeService
	logger      *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProfileRepo repository.ProfileRepository
	RoleRepo    repository.RoleRepository
	Storage     service.FileStorage
	QRCode      service.QRCodeService
	Logger      *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager:   params.TxManager,
		profileRepo: params.ProfileRepo,
		roleRepo:    params.RoleRepo,
		storage:     params.Storage,
		qrcode:      params.QRCode,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile fetches the user's profile. A missing row is created on the
// spot so every signed-in user always has one to edit.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := srv.profileRepo.FindByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, errors.Wrap(err, "failed to find profile")
	}

	srv.log(ctx).Info("Creating profile on first access", slog.Any("userID", userID))

	created := &entity.Profile{UserID: userID, UserType: srv.currentRoleLabel(ctx, userID)}
	if createErr := srv.profileRepo.Create(ctx, created); createErr != nil {
		return nil, errors.Wrap(createErr, "failed to create profile")
	}

	return created, nil
}

// currentRoleLabel mirrors the chosen role into the profile, best effort.
func (srv *profileService) currentRoleLabel(ctx context.Context, userID uuid.UUID) string {
	userRole, err := srv.roleRepo.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrRoleNotFound) {
			srv.log(ctx).Warn("Failed to mirror role into profile", slog.Any("userID", userID), slog.Any("error", err))
		}

		return ""
	}

	return userRole.Role.String()
}

// UpdateProfile applies the given field changes inside one transaction so a
// concurrent update cannot interleave between read and write.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.Profile, error) {
	srv.log(ctx).Info("Updating profile", slog.Any("userID", userID))

	var updated *entity.Profile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.ProfileRepo()

		profile, findErr := profileRepo.FindByUserID(ctx, userID)
		if findErr != nil {
			if !errors.Is(findErr, repository.ErrProfileNotFound) {
				return errors.Wrap(findErr, "failed to find profile")
			}

			profile = &entity.Profile{UserID: userID}
			if createErr := profileRepo.Create(ctx, profile); createErr != nil {
				return errors.Wrap(createErr, "failed to create profile")
			}
		}

		applyProfileChanges(profile, input)
		if updateErr := profileRepo.Update(ctx, profile); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update profile")
		}

		updated = profile

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute profile update transaction", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	return updated, nil
}

func applyProfileChanges(profile *entity.Profile, input *usecase.UpdateProfileInput) {
	if input.FullName != nil {
		profile.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Phone != nil {
		profile.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Location != nil {
		profile.Location = strings.TrimSpace(*input.Location)
	}
	if input.UPIPaymentID != nil {
		profile.UPIPaymentID = strings.TrimSpace(*input.UPIPaymentID)
	}
}

// UploadAvatar stores the avatar image and records its public URL. The key
// is derived from the user id, so re-uploading replaces the old avatar.
func (srv *profileService) UploadAvatar(ctx context.Context, userID uuid.UUID, input *usecase.UploadAvatarInput) (*entity.Profile, error) {
	if input.Size > usecase.MaxAvatarSize {
		srv.log(ctx).Warn("Rejected oversized avatar", slog.Any("userID", userID), slog.Int64("size", input.Size))

		return nil, errors.Wrap(domainerrors.ErrAvatarTooLarge, "avatar exceeds 5 MB")
	}

	key := avatarKey(userID, input.Filename)
	url, err := srv.storage.Upload(ctx, key, input.ContentType, input.Body)
	if err != nil {
		srv.log(ctx).Error("Failed to upload avatar", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to upload avatar")
	}

	var updated *entity.Profile
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.ProfileRepo()

		profile, findErr := profileRepo.FindByUserID(ctx, userID)
		if findErr != nil {
			if !errors.Is(findErr, repository.ErrProfileNotFound) {
				return errors.Wrap(findErr, "failed to find profile")
			}

			profile = &entity.Profile{UserID: userID}
			if createErr := profileRepo.Create(ctx, profile); createErr != nil {
				return errors.Wrap(createErr, "failed to create profile")
			}
		}

		profile.AvatarURL = url
		if updateErr := profileRepo.Update(ctx, profile); updateErr != nil {
			return errors.Wrap(updateErr, "failed to record avatar url")
		}

		updated = profile

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute avatar transaction", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute avatar transaction")
	}

	srv.log(ctx).Info("Avatar uploaded", slog.Any("userID", userID), slog.String("key", key))

	return updated, nil
}

// avatarKey keeps one object per user; the original extension is preserved
// so the blob store serves the right content type.
func avatarKey(userID uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))

	return "avatars/" + userID.String() + ext
}

// PaymentQR renders the user's UPI payment id as a PNG QR code.
func (srv *profileService) PaymentQR(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	profile, err := srv.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProfileNotFound, "no profile for payment qr")
		}

		return nil, errors.Wrap(err, "failed to find profile for payment qr")
	}

	if profile.UPIPaymentID == "" {
		return nil, errors.Wrap(domainerrors.ErrPaymentIDMissing, "no upi payment id on profile")
	}

	png, err := srv.qrcode.GeneratePaymentQR(profile.UPIPaymentID, profile.FullName)
	if err != nil {
		srv.log(ctx).Error("Failed to render payment qr", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to render payment qr")
	}

	return png, nil
}
