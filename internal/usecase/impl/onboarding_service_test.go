package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"croptrade/internal/domain/entity"
	domainerrors "croptrade/internal/domain/errors"
	"croptrade/internal/domain/repository"
	"croptrade/internal/mocks"
	"croptrade/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newOnboardingFixture() (usecase.OnboardingUsecase, *mocks.TransactionManager) {
	txManager := mocks.NewTransactionManager()

	svc := NewOnboardingService(OnboardingServiceParams{
		TxManager:       txManager,
		RoleRepo:        txManager.Factory.RoleRepository,
		TransporterRepo: txManager.Factory.TransporterRepository,
		ProfileRepo:     txManager.Factory.ProfileRepository,
		Logger:          newTestLogger(),
	})

	return svc, txManager
}

func TestOnboardingService_Status_NewUserNeedsRole(t *testing.T) {
	svc, txManager := newOnboardingFixture()
	ctx := context.Background()
	userID := uuid.New()

	txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).Return(nil, repository.ErrRoleNotFound)

	out, err := svc.Status(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, entity.OnboardingNeedsRole, out.State)
	assert.Equal(t, entity.RoleNone, out.Role)
}

func TestOnboardingService_Status_FarmerIsReady(t *testing.T) {
	svc, txManager := newOnboardingFixture()
	ctx := context.Background()
	userID := uuid.New()

	txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.UserRole{UserID: userID, Role: entity.RoleFarmer}, nil)

	out, err := svc.Status(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, entity.OnboardingReady, out.State)
	assert.Equal(t, entity.RoleFarmer, out.Role)
	// A farmer never needs vehicle details, so the transporter check is skipped.
	txManager.Factory.TransporterRepository.AssertNotCalled(t, "ExistsByUserID", ctx, userID)
}

func TestOnboardingService_Status_TransporterWithoutVehicle(t *testing.T) {
	svc, txManager := newOnboardingFixture()
	ctx := context.Background()
	userID := uuid.New()

	txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.UserRole{UserID: userID, Role: entity.RoleTransporter}, nil)
	txManager.Factory.TransporterRepository.
		On("ExistsByUserID", ctx, userID).Return(false, nil)

	out, err := svc.Status(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, entity.OnboardingNeedsTransporterSetup, out.State)
	assert.Equal(t, entity.RoleTransporter, out.Role)
}

func TestOnboardingService_Status_TransporterWithVehicleIsReady(t *testing.T) {
	svc, txManager := newOnboardingFixture()
	ctx := context.Background()
	userID := uuid.New()

	txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.UserRole{UserID: userID, Role: entity.RoleTransporter}, nil)
	txManager.Factory.TransporterRepository.
		On("ExistsByUserID", ctx, userID).Return(true, nil)

	out, err := svc.Status(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, entity.OnboardingReady, out.State)
}

func TestOnboardingService_Status_ResolveError(t *testing.T) {
	svc, txManager := newOnboardingFixture()
	ctx := context.Background()
	userID := uuid.New()

	txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).Return(nil, assert.AnError)

	out, err := svc.Status(ctx, userID)

	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestOnboardingService_Status_ReadyLatchesAcrossFailedRefresh(t *testing.T) {
	svc, txManager := newOnboardingFixture()
	ctx := context.Background()
	userID := uuid.New()

	txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.UserRole{UserID: userID, Role: entity.RoleBuyer}, nil).Once()

	out, err := svc.Status(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, entity.OnboardingReady, out.State)

	// A later refresh that blows up must not bounce the user out of ready.
	txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).Return(nil, assert.AnError).Once()

	_, err = svc.Status(ctx, userID)
	assert.Error(t, err)

	txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.UserRole{UserID: userID, Role: entity.RoleBuyer}, nil)

	out, err = svc.Status(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, entity.OnboardingReady, out.State)
}

func TestOnboardingService_SelectRole_Farmer(t *testing.T) {
	svc, txManager := newOnboardingFixture()
	ctx := context.Background()
	userID := uuid.New()

	txManager.Factory.RoleRepository.
		On("Assign", ctx, mock.MatchedBy(func(ur *entity.UserRole) bool {
			return ur.UserID == userID && ur.Role == entity.RoleFarmer
		})).Return(nil)
	txManager.Factory.ProfileRepository.
		On("FindByUserID", ctx, userID).Return(nil, repository.ErrProfileNotFound)
	txManager.Factory.ProfileRepository.
		On("Create", ctx, mock.MatchedBy(func(p *entity.Profile) bool {
			return p.UserID == userID && p.UserType == "farmer"
		})).Return(nil)

	out, err := svc.SelectRole(ctx, userID, &usecase.SelectRoleInput{Role: "farmer"})

	require.NoError(t, err)
	assert.Equal(t, entity.OnboardingReady, out.State)
	assert.Equal(t, entity.RoleFarmer, out.Role)
	txManager.Factory.ProfileRepository.AssertExpectations(t)
}

func TestOnboardingService_SelectRole_TransporterNeedsSetup(t *testing.T) {
	svc, txManager := newOnboardingFixture()
	ctx := context.Background()
	userID := uuid.New()

	txManager.Factory.RoleRepository.
		On("Assign", ctx, mock.AnythingOfType("*entity.UserRole")).Return(nil)
	txManager.Factory.ProfileRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.Profile{UserID: userID, FullName: "R. Gowda"}, nil)
	txManager.Factory.ProfileRepository.
		On("Update", ctx, mock.MatchedBy(func(p *entity.Profile) bool {
			return p.UserType == "transporter" && p.FullName == "R. Gowda"
		})).Return(nil)

	out, err := svc.SelectRole(ctx, userID, &usecase.SelectRoleInput{Role: "transporter"})

	require.NoError(t, err)
	assert.Equal(t, entity.OnboardingNeedsTransporterSetup, out.State)
	assert.Equal(t, entity.RoleTransporter, out.Role)
}

func TestOnboardingService_SelectRole_InvalidRole(t *testing.T) {
	svc, txManager := newOnboardingFixture()
	ctx := context.Background()
	userID := uuid.New()

	out, err := svc.SelectRole(ctx, userID, &usecase.SelectRoleInput{Role: "admin"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
	assert.Nil(t, out)
	txManager.Factory.RoleRepository.AssertNotCalled(t, "Assign", ctx, mock.Anything)
}

func TestOnboardingService_SelectRole_FirstWriteWins(t *testing.T) {
	svc, txManager := newOnboardingFixture()
	ctx := context.Background()
	userID := uuid.New()

	txManager.Factory.RoleRepository.
		On("Assign", ctx, mock.AnythingOfType("*entity.UserRole")).
		Return(nil).Once()
	txManager.Factory.RoleRepository.
		On("Assign", ctx, mock.AnythingOfType("*entity.UserRole")).
		Return(repository.ErrRoleAlreadyAssigned)
	txManager.Factory.ProfileRepository.
		On("FindByUserID", ctx, userID).Return(nil, repository.ErrProfileNotFound)
	txManager.Factory.ProfileRepository.
		On("Create", ctx, mock.AnythingOfType("*entity.Profile")).Return(nil)

	_, err := svc.SelectRole(ctx, userID, &usecase.SelectRoleInput{Role: "farmer"})
	require.NoError(t, err)

	// The losing device gets a conflict instead of silently overwriting.
	out, err := svc.SelectRole(ctx, userID, &usecase.SelectRoleInput{Role: "buyer"})
	assert.ErrorIs(t, err, domainerrors.ErrRoleAlreadyAssigned)
	assert.Nil(t, out)
}

func TestOnboardingService_RegisterVehicle_Success(t *testing.T) {
	svc, txManager := newOnboardingFixture()
	ctx := context.Background()
	userID := uuid.New()

	txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.UserRole{UserID: userID, Role: entity.RoleTransporter}, nil)
	txManager.Factory.TransporterRepository.
		On("Create", ctx, mock.MatchedBy(func(tr *entity.Transporter) bool {
			return tr.UserID == userID &&
				tr.VehicleNumber == "KA01AB1234" &&
				tr.IsAvailable
		})).Return(nil)

	out, err := svc.RegisterVehicle(ctx, userID, &usecase.RegisterVehicleInput{
		VehicleType:   "Truck",
		VehicleNumber: "ka01ab1234",
		Capacity:      "1 - 3 tons",
		ServiceArea:   "Hassan district",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OnboardingReady, out.State)
}

func TestOnboardingService_RegisterVehicle_RequiresTransporterRole(t *testing.T) {
	svc, txManager := newOnboardingFixture()
	ctx := context.Background()
	userID := uuid.New()

	txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.UserRole{UserID: userID, Role: entity.RoleFarmer}, nil)

	out, err := svc.RegisterVehicle(ctx, userID, &usecase.RegisterVehicleInput{
		VehicleType:   "Van",
		VehicleNumber: "KA05XY99",
		Capacity:      "Up to 500 kg",
		ServiceArea:   "Mysuru",
	})

	assert.ErrorIs(t, err, domainerrors.ErrNotTransporter)
	assert.Nil(t, out)
}

func TestOnboardingService_RegisterVehicle_RequiresRole(t *testing.T) {
	svc, txManager := newOnboardingFixture()
	ctx := context.Background()
	userID := uuid.New()

	txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).Return(nil, repository.ErrRoleNotFound)

	_, err := svc.RegisterVehicle(ctx, userID, &usecase.RegisterVehicleInput{
		VehicleType:   "Van",
		VehicleNumber: "KA05XY99",
		Capacity:      "Up to 500 kg",
		ServiceArea:   "Mysuru",
	})

	assert.ErrorIs(t, err, domainerrors.ErrRoleRequired)
}

func TestOnboardingService_RegisterVehicle_Duplicate(t *testing.T) {
	svc, txManager := newOnboardingFixture()
	ctx := context.Background()
	userID := uuid.New()

	txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.UserRole{UserID: userID, Role: entity.RoleTransporter}, nil)
	txManager.Factory.TransporterRepository.
		On("Create", ctx, mock.AnythingOfType("*entity.Transporter")).
		Return(repository.ErrDuplicateTransporter)

	_, err := svc.RegisterVehicle(ctx, userID, &usecase.RegisterVehicleInput{
		VehicleType:   "Pickup",
		VehicleNumber: "KA09ZZ1111",
		Capacity:      "500 kg - 1 ton",
		ServiceArea:   "Tumakuru",
	})

	assert.ErrorIs(t, err, domainerrors.ErrVehicleAlreadyRegistered)
}

func TestOnboardingService_RegisterVehicle_Validation(t *testing.T) {
	svc, _ := newOnboardingFixture()
	ctx := context.Background()
	userID := uuid.New()

	cases := []struct {
		name  string
		input usecase.RegisterVehicleInput
	}{
		{"unknown vehicle type", usecase.RegisterVehicleInput{VehicleType: "Bicycle", VehicleNumber: "KA01A1", Capacity: "5+ tons", ServiceArea: "Hubli"}},
		{"unknown capacity", usecase.RegisterVehicleInput{VehicleType: "Truck", VehicleNumber: "KA01A1", Capacity: "10 tons", ServiceArea: "Hubli"}},
		{"empty vehicle number", usecase.RegisterVehicleInput{VehicleType: "Truck", VehicleNumber: "   ", Capacity: "5+ tons", ServiceArea: "Hubli"}},
		{"vehicle number too long", usecase.RegisterVehicleInput{VehicleType: "Truck", VehicleNumber: "KA01AB12345678901234X", Capacity: "5+ tons", ServiceArea: "Hubli"}},
		{"empty service area", usecase.RegisterVehicleInput{VehicleType: "Truck", VehicleNumber: "KA01A1", Capacity: "5+ tons", ServiceArea: ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RegisterVehicle(ctx, userID, &tc.input)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}

func TestOnboardingService_Release_DropsMachine(t *testing.T) {
	svc, txManager := newOnboardingFixture()
	ctx := context.Background()
	userID := uuid.New()

	txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).
		Return(&entity.UserRole{UserID: userID, Role: entity.RoleFarmer}, nil).Once()

	out, err := svc.Status(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, entity.OnboardingReady, out.State)

	svc.Release(userID)

	// After release the identity starts over; a failing resolve leaves it
	// unresolved instead of latched ready.
	txManager.Factory.RoleRepository.
		On("FindByUserID", ctx, userID).
		Return(nil, errors.New("db down"))

	_, err = svc.Status(ctx, userID)
	assert.Error(t, err)
}
