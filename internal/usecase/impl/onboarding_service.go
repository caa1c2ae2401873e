package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	deliverycontext "croptrade/internal/delivery/context"
	"croptrade/internal/domain/entity"
	domainerrors "croptrade/internal/domain/errors"
	"croptrade/internal/domain/repository"
	"croptrade/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	maxVehicleNumberLength = 20
	maxServiceAreaLength   = 100
)

// onboardingService implements the OnboardingUsecase interface.
// It keeps one state machine per signed-in identity so that overlapping
// resolutions and background refreshes cannot flicker the gating state.
type onboardingService struct {
	txManager       repository.TransactionManager
	roleRepo        repository.RoleRepository
	transporterRepo repository.TransporterRepository
	profileRepo     repository.ProfileRepository
	logger          *slog.Logger

	mu       sync.Mutex
	machines map[uuid.UUID]*entity.OnboardingMachine
}

// OnboardingServiceParams holds dependencies for OnboardingService, injected by Fx.
type OnboardingServiceParams struct {
	fx.In

	TxManager       repository.TransactionManager
	RoleRepo        repository.RoleRepository
	TransporterRepo repository.TransporterRepository
	ProfileRepo     repository.ProfileRepository
	Logger          *slog.Logger
}

// NewOnboardingService is the constructor for onboardingService.
func NewOnboardingService(params OnboardingServiceParams) usecase.OnboardingUsecase {
	return &onboardingService{
		txManager:       params.TxManager,
		roleRepo:        params.RoleRepo,
		transporterRepo: params.TransporterRepo,
		profileRepo:     params.ProfileRepo,
		logger:          params.Logger,
		machines:        make(map[uuid.UUID]*entity.OnboardingMachine),
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *onboardingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// machine returns the state machine for the identity, creating it on first use.
func (srv *onboardingService) machine(userID uuid.UUID) *entity.OnboardingMachine {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	m, ok := srv.machines[userID]
	if !ok {
		m = entity.NewOnboardingMachine(userID)
		srv.machines[userID] = m
	}

	return m
}

// Status resolves the user's role and setup progress against the database and
// reports the resulting onboarding state. Concurrent calls are safe: each
// resolution round is tagged, and a round finishing after a newer one started
// is discarded rather than applied out of order.
func (srv *onboardingService) Status(ctx context.Context, userID uuid.UUID) (*usecase.OnboardingStatusOutput, error) {
	m := srv.machine(userID)
	generation := m.BeginResolve()

	role, hasDetails, err := srv.resolve(ctx, userID)
	if err != nil {
		m.ResolveFailed(generation)
		srv.log(ctx).Error("Failed to resolve onboarding status", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to resolve onboarding status")
	}

	if !m.ApplyResolution(generation, role, hasDetails) {
		srv.log(ctx).Debug("Discarded stale onboarding resolution", slog.Any("userID", userID), slog.Uint64("generation", generation))
	}

	state, currentRole := m.State()

	return &usecase.OnboardingStatusOutput{State: state, Role: currentRole}, nil
}

// resolve reads the role assignment and, for transporters, whether vehicle
// details exist. Both reads happen in one short transaction so the snapshot
// is consistent.
func (srv *onboardingService) resolve(ctx context.Context, userID uuid.UUID) (entity.Role, bool, error) {
	role := entity.RoleNone
	hasDetails := false

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		roleRepo := repoFactory.RoleRepo()
		transporterRepo := repoFactory.TransporterRepo()

		userRole, findErr := roleRepo.FindByUserID(ctx, userID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrRoleNotFound) {
				return nil
			}

			return errors.Wrap(findErr, "failed to load role assignment")
		}
		role = userRole.Role

		if role != entity.RoleTransporter {
			return nil
		}

		exists, existsErr := transporterRepo.ExistsByUserID(ctx, userID)
		if existsErr != nil {
			return errors.Wrap(existsErr, "failed to check transporter details")
		}
		hasDetails = exists

		return nil
	})
	if err != nil {
		return entity.RoleNone, false, errors.Wrap(err, "failed to execute onboarding resolution transaction")
	}

	return role, hasDetails, nil
}

// SelectRole assigns the chosen role to the user. The write relies on the
// database's uniqueness guarantee, so when two devices race the first insert
// wins and the loser gets a conflict instead of silently overwriting.
func (srv *onboardingService) SelectRole(ctx context.Context, userID uuid.UUID, input *usecase.SelectRoleInput) (*usecase.OnboardingStatusOutput, error) {
	role := entity.Role(input.Role)
	if !role.IsValid() {
		srv.log(ctx).Warn("Rejected invalid role selection", slog.Any("userID", userID), slog.String("role", input.Role))

		return nil, errors.Wrap(domainerrors.ErrInvalidRole, "unknown role")
	}

	srv.log(ctx).Info("Assigning role", slog.Any("userID", userID), slog.Any("role", role))

	if err := srv.roleRepo.Assign(ctx, &entity.UserRole{UserID: userID, Role: role}); err != nil {
		if errors.Is(err, repository.ErrRoleAlreadyAssigned) {
			return nil, errors.Wrap(domainerrors.ErrRoleAlreadyAssigned, "role already chosen")
		}

		srv.log(ctx).Error("Failed to assign role", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to assign role")
	}

	srv.mirrorUserType(ctx, userID, role)

	// The write is confirmed, so the machine advances without re-fetching.
	m := srv.machine(userID)
	m.ApplyRoleSelected(role)
	state, currentRole := m.State()

	return &usecase.OnboardingStatusOutput{State: state, Role: currentRole}, nil
}

// mirrorUserType copies the chosen role into the profile's user_type field.
// The role row is the source of truth; the mirror is best-effort and a
// failure here never surfaces to the caller.
func (srv *onboardingService) mirrorUserType(ctx context.Context, userID uuid.UUID, role entity.Role) {
	profile, err := srv.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrProfileNotFound) {
			srv.log(ctx).Warn("Failed to load profile for user type mirror", slog.Any("userID", userID), slog.Any("error", err))

			return
		}

		if createErr := srv.profileRepo.Create(ctx, &entity.Profile{UserID: userID, UserType: string(role)}); createErr != nil {
			srv.log(ctx).Warn("Failed to create profile for user type mirror", slog.Any("userID", userID), slog.Any("error", createErr))
		}

		return
	}

	profile.UserType = string(role)
	if updateErr := srv.profileRepo.Update(ctx, profile); updateErr != nil {
		srv.log(ctx).Warn("Failed to mirror user type", slog.Any("userID", userID), slog.Any("error", updateErr))
	}
}

// RegisterVehicle completes transporter setup with the vehicle form.
func (srv *onboardingService) RegisterVehicle(ctx context.Context, userID uuid.UUID, input *usecase.RegisterVehicleInput) (*usecase.OnboardingStatusOutput, error) {
	transporter, err := buildTransporter(userID, input)
	if err != nil {
		srv.log(ctx).Warn("Rejected vehicle registration", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		roleRepo := repoFactory.RoleRepo()
		transporterRepo := repoFactory.TransporterRepo()

		userRole, findErr := roleRepo.FindByUserID(ctx, userID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrRoleNotFound) {
				return errors.Wrap(domainerrors.ErrRoleRequired, "choose a role before registering a vehicle")
			}

			return errors.Wrap(findErr, "failed to load role assignment")
		}
		if userRole.Role != entity.RoleTransporter {
			return errors.Wrap(domainerrors.ErrNotTransporter, "vehicle registration requires the transporter role")
		}

		if createErr := transporterRepo.Create(ctx, transporter); createErr != nil {
			if errors.Is(createErr, repository.ErrDuplicateTransporter) {
				return errors.Wrap(domainerrors.ErrVehicleAlreadyRegistered, "vehicle already registered")
			}

			return errors.Wrap(createErr, "failed to create transporter record")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute vehicle registration transaction", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute vehicle registration transaction")
	}

	srv.log(ctx).Info("Vehicle registered", slog.Any("userID", userID), slog.String("vehicleType", transporter.VehicleType))

	m := srv.machine(userID)
	m.ApplyVehicleRegistered()
	state, currentRole := m.State()

	return &usecase.OnboardingStatusOutput{State: state, Role: currentRole}, nil
}

// Release drops the user's onboarding machine. Called on sign-out so the next
// identity on the same connection starts from a fresh loading state.
func (srv *onboardingService) Release(userID uuid.UUID) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	delete(srv.machines, userID)
}

func buildTransporter(userID uuid.UUID, input *usecase.RegisterVehicleInput) (*entity.Transporter, error) {
	if !entity.IsValidVehicleType(input.VehicleType) {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown vehicle type")
	}
	if !entity.IsValidCapacityClass(input.Capacity) {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown capacity class")
	}

	vehicleNumber := strings.ToUpper(strings.TrimSpace(input.VehicleNumber))
	if vehicleNumber == "" || len(vehicleNumber) > maxVehicleNumberLength {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "vehicle number must be 1 to 20 characters")
	}

	serviceArea := strings.TrimSpace(input.ServiceArea)
	if serviceArea == "" || len(serviceArea) > maxServiceAreaLength {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "service area must be 1 to 100 characters")
	}

	return &entity.Transporter{
		UserID:        userID,
		VehicleType:   input.VehicleType,
		VehicleNumber: vehicleNumber,
		Capacity:      input.Capacity,
		ServiceArea:   serviceArea,
		IsAvailable:   true,
	}, nil
}
