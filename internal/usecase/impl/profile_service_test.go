package impl

import (
	"context"
	"strings"
	"testing"

	"croptrade/internal/domain/entity"
	domainerrors "croptrade/internal/domain/errors"
	"croptrade/internal/domain/repository"
	"croptrade/internal/mocks"
	"croptrade/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type profileFixture struct {
	svc       usecase.ProfileUsecase
	txManager *mocks.TransactionManager
	storage   *mocks.FileStorage
	qrcode    *mocks.QRCodeService
}

func newProfileFixture() *profileFixture {
	txManager := mocks.NewTransactionManager()
	storage := new(mocks.FileStorage)
	qrcode := new(mocks.QRCodeService)

	svc := NewProfileService(ProfileServiceParams{
		TxManager:   txManager,
		ProfileRepo: txManager.Factory.ProfileRepository,
		RoleRepo:    txManager.Factory.RoleRepository,
		Storage:     storage,
		QRCode:      qrcode,
		Logger:      newTestLogger(),
	})

	return &profileFixture{svc: svc, txManager: txManager, storage: storage, qrcode: qrcode}
}

func TestProfileService_GetProfile_Existing(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()
	userID := uuid.New()
	existing := &entity.Profile{UserID: userID, FullName: "Ravi Kumar"}

	f.txManager.Factory.ProfileRepository.
		On("FindByUserID", ctx, userID).Return(existing, nil)

	profile, err := f.svc.GetProfile(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", profile.FullName)
}

func TestProfileService_GetProfile_CreatesLazily(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()
	userID := uuid.New()

	f.txManager.Factory.ProfileRepository.
		On("FindByUserID", ctx, userID).Return(nil, repository.ErrProfileNotFound)
	f.txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.UserRole{UserID: userID, Role: entity.RoleFarmer}, nil)
	f.txManager.Factory.ProfileRepository.
		On("Create", ctx, mock.MatchedBy(func(p *entity.Profile) bool {
			return p.UserID == userID && p.UserType == "farmer"
		})).Return(nil)

	profile, err := f.svc.GetProfile(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, profile.UserID)
	assert.Equal(t, "farmer", profile.UserType)
}

func TestProfileService_UpdateProfile_PartialFields(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()
	userID := uuid.New()
	existing := &entity.Profile{UserID: userID, FullName: "Ravi Kumar", Phone: "9876500000"}

	f.txManager.Factory.ProfileRepository.
		On("FindByUserID", ctx, userID).Return(existing, nil)
	f.txManager.Factory.ProfileRepository.
		On("Update", ctx, mock.MatchedBy(func(p *entity.Profile) bool {
			return p.FullName == "Ravi Kumar" && p.Location == "Hassan, Karnataka"
		})).Return(nil)

	location := "  Hassan, Karnataka  "
	updated, err := f.svc.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{Location: &location})

	require.NoError(t, err)
	// Untouched fields keep their values; the new one is trimmed.
	assert.Equal(t, "9876500000", updated.Phone)
	assert.Equal(t, "Hassan, Karnataka", updated.Location)
}

func TestProfileService_UploadAvatar_TooLarge(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()
	userID := uuid.New()

	_, err := f.svc.UploadAvatar(ctx, userID, &usecase.UploadAvatarInput{
		Filename:    "me.png",
		ContentType: "image/png",
		Size:        usecase.MaxAvatarSize + 1,
		Body:        strings.NewReader("x"),
	})

	assert.ErrorIs(t, err, domainerrors.ErrAvatarTooLarge)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileService_UploadAvatar_Success(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()
	userID := uuid.New()
	body := strings.NewReader("png bytes")
	key := "avatars/" + userID.String() + ".png"

	f.storage.On("Upload", ctx, key, "image/png", body).
		Return("https://cdn.example.com/"+key, nil)
	f.txManager.Factory.ProfileRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.Profile{UserID: userID}, nil)
	f.txManager.Factory.ProfileRepository.
		On("Update", ctx, mock.MatchedBy(func(p *entity.Profile) bool {
			return p.AvatarURL == "https://cdn.example.com/"+key
		})).Return(nil)

	profile, err := f.svc.UploadAvatar(ctx, userID, &usecase.UploadAvatarInput{
		Filename:    "Photo.PNG",
		ContentType: "image/png",
		Size:        1024,
		Body:        body,
	})

	require.NoError(t, err)
	assert.Contains(t, profile.AvatarURL, key)
}

func TestProfileService_PaymentQR_MissingUPI(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()
	userID := uuid.New()

	f.txManager.Factory.ProfileRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.Profile{UserID: userID}, nil)

	png, err := f.svc.PaymentQR(ctx, userID)

	assert.ErrorIs(t, err, domainerrors.ErrPaymentIDMissing)
	assert.Nil(t, png)
}

func TestProfileService_PaymentQR_Success(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()
	userID := uuid.New()

	f.txManager.Factory.ProfileRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.Profile{UserID: userID, FullName: "Ravi Kumar", UPIPaymentID: "ravi@upi"}, nil)
	f.qrcode.On("GeneratePaymentQR", "ravi@upi", "Ravi Kumar").
		Return([]byte{0x89, 0x50, 0x4e, 0x47}, nil)

	png, err := f.svc.PaymentQR(ctx, userID)

	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
