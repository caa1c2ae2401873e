// Package mocks provides hand-rolled testify mocks for the domain
// repository and service interfaces, shared by the usecase tests.
package mocks

import (
	"context"

	"croptrade/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// UserRepository is a mock of repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) AcquireSessionMutex(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// AuthRepository is a mock of repository.AuthRepository.
type AuthRepository struct {
	mock.Mock
}

func (m *AuthRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	return m.Called(ctx, auth).Error(0)
}

func (m *AuthRepository) FindAuthentication(ctx context.Context, provider, providerUserID string) (*entity.Authentication, error) {
	args := m.Called(ctx, provider, providerUserID)
	if a := args.Get(0); a != nil {
		return a.(*entity.Authentication), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *AuthRepository) UpdateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	return m.Called(ctx, auth).Error(0)
}

func (m *AuthRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *AuthRepository) FindRefreshTokenByHash(ctx context.Context, hash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, hash)
	if t := args.Get(0); t != nil {
		return t.(*entity.RefreshToken), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *AuthRepository) DeleteRefreshTokenByHash(ctx context.Context, hash string) error {
	return m.Called(ctx, hash).Error(0)
}

// RefreshTokenRepository is a mock of repository.RefreshTokenRepository.
type RefreshTokenRepository struct {
	mock.Mock
}

func (m *RefreshTokenRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *RefreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if t := args.Get(0); t != nil {
		return t.(*entity.RefreshToken), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *RefreshTokenRepository) FindRefreshTokenByID(ctx context.Context, id uuid.UUID) (*entity.RefreshToken, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(*entity.RefreshToken), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *RefreshTokenRepository) FindRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error) {
	args := m.Called(ctx, userID)
	if t := args.Get(0); t != nil {
		return t.([]*entity.RefreshToken), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *RefreshTokenRepository) UpdateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *RefreshTokenRepository) DeleteRefreshToken(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RefreshTokenRepository) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *RefreshTokenRepository) DeleteRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *RefreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *RefreshTokenRepository) CountActiveSessionsByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)

	return args.Int(0), args.Error(1)
}

// RoleRepository is a mock of repository.RoleRepository.
type RoleRepository struct {
	mock.Mock
}

func (m *RoleRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserRole, error) {
	args := m.Called(ctx, userID)
	if r := args.Get(0); r != nil {
		return r.(*entity.UserRole), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *RoleRepository) Assign(ctx context.Context, userRole *entity.UserRole) error {
	return m.Called(ctx, userRole).Error(0)
}

// ProfileRepository is a mock of repository.ProfileRepository.
type ProfileRepository struct {
	mock.Mock
}

func (m *ProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.(*entity.Profile), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *ProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *ProfileRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entity.Profile, error) {
	args := m.Called(ctx, userIDs)
	if p := args.Get(0); p != nil {
		return p.(map[uuid.UUID]*entity.Profile), args.Error(1)
	}

	return nil, args.Error(1)
}

// TransporterRepository is a mock of repository.TransporterRepository.
type TransporterRepository struct {
	mock.Mock
}

func (m *TransporterRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Transporter, error) {
	args := m.Called(ctx, userID)
	if t := args.Get(0); t != nil {
		return t.(*entity.Transporter), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *TransporterRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)

	return args.Bool(0), args.Error(1)
}

func (m *TransporterRepository) Create(ctx context.Context, transporter *entity.Transporter) error {
	return m.Called(ctx, transporter).Error(0)
}

func (m *TransporterRepository) UpdateAvailability(ctx context.Context, userID uuid.UUID, isAvailable bool) error {
	return m.Called(ctx, userID, isAvailable).Error(0)
}

// CropRepository is a mock of repository.CropRepository.
type CropRepository struct {
	mock.Mock
}

func (m *CropRepository) Create(ctx context.Context, crop *entity.Crop) error {
	return m.Called(ctx, crop).Error(0)
}

func (m *CropRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Crop, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*entity.Crop), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CropRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Crop, error) {
	args := m.Called(ctx, userID)
	if c := args.Get(0); c != nil {
		return c.([]*entity.Crop), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CropRepository) FindAvailable(ctx context.Context) ([]*entity.Crop, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.([]*entity.Crop), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CropRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.CropStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

// TradeRepository is a mock of repository.TradeRepository.
type TradeRepository struct {
	mock.Mock
}

func (m *TradeRepository) FindBySellerID(ctx context.Context, sellerID uuid.UUID) ([]*entity.Trade, error) {
	args := m.Called(ctx, sellerID)
	if t := args.Get(0); t != nil {
		return t.([]*entity.Trade), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *TradeRepository) FindByBuyerID(ctx context.Context, buyerID uuid.UUID) ([]*entity.Trade, error) {
	args := m.Called(ctx, buyerID)
	if t := args.Get(0); t != nil {
		return t.([]*entity.Trade), args.Error(1)
	}

	return nil, args.Error(1)
}

// TransportRequestRepository is a mock of repository.TransportRequestRepository.
type TransportRequestRepository struct {
	mock.Mock
}

func (m *TransportRequestRepository) Create(ctx context.Context, request *entity.TransportRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *TransportRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TransportRequest, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*entity.TransportRequest), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *TransportRequestRepository) FindPending(ctx context.Context) ([]*entity.TransportRequest, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.([]*entity.TransportRequest), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *TransportRequestRepository) FindByTransporterID(ctx context.Context, transporterID uuid.UUID) ([]*entity.TransportRequest, error) {
	args := m.Called(ctx, transporterID)
	if r := args.Get(0); r != nil {
		return r.([]*entity.TransportRequest), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *TransportRequestRepository) Accept(ctx context.Context, requestID, transporterID uuid.UUID) error {
	return m.Called(ctx, requestID, transporterID).Error(0)
}

func (m *TransportRequestRepository) UpdateStatus(ctx context.Context, requestID uuid.UUID, status entity.TransportRequestStatus) error {
	return m.Called(ctx, requestID, status).Error(0)
}

// DeviceRepository is a mock of repository.DeviceRepository.
type DeviceRepository struct {
	mock.Mock
}

func (m *DeviceRepository) CreateDevice(ctx context.Context, device *entity.UserDevice) error {
	return m.Called(ctx, device).Error(0)
}

func (m *DeviceRepository) FindDeviceByID(ctx context.Context, id uuid.UUID) (*entity.UserDevice, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*entity.UserDevice), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *DeviceRepository) FindDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	args := m.Called(ctx, userID)
	if d := args.Get(0); d != nil {
		return d.([]*entity.UserDevice), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *DeviceRepository) FindActiveDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	args := m.Called(ctx, userID)
	if d := args.Get(0); d != nil {
		return d.([]*entity.UserDevice), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *DeviceRepository) UpdateFCMToken(ctx context.Context, deviceID uuid.UUID, fcmToken string) error {
	return m.Called(ctx, deviceID, fcmToken).Error(0)
}

func (m *DeviceRepository) DeleteDevice(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
