package mocks

import (
	"context"
	"io"
	"time"

	"croptrade/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// PasswordHasher is a mock of service.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

func (m *PasswordHasher) ValidatePasswordStrength(password string) error {
	return m.Called(password).Error(0)
}

// TokenService is a mock of service.TokenService.
type TokenService struct {
	mock.Mock
}

func (m *TokenService) GenerateTokens(userID uuid.UUID, roles []string) (string, string, error) {
	args := m.Called(userID, roles)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *TokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if c := args.Get(0); c != nil {
		return c.(*service.Claims), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *TokenService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if c := args.Get(0); c != nil {
		return c.(*service.Claims), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *TokenService) GeneratePasswordResetToken(userID uuid.UUID) (string, error) {
	args := m.Called(userID)

	return args.String(0), args.Error(1)
}

func (m *TokenService) ValidatePasswordResetToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if c := args.Get(0); c != nil {
		return c.(*service.Claims), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *TokenService) HashToken(token string) string {
	return m.Called(token).String(0)
}

func (m *TokenService) GetRefreshTokenDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

// NotificationService is a mock of service.NotificationService.
type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) SendBatchNotification(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, int, []string, error) {
	args := m.Called(ctx, tokens, title, body, data)
	var invalid []string
	if v := args.Get(2); v != nil {
		invalid = v.([]string)
	}

	return args.Int(0), args.Int(1), invalid, args.Error(3)
}

func (m *NotificationService) SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error {
	return m.Called(ctx, token, title, body, data).Error(0)
}

// EventPublisher is a mock of service.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishMarketplaceEvent(ctx context.Context, event *service.MarketplaceEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *EventPublisher) Close() error {
	return m.Called().Error(0)
}

// FileStorage is a mock of service.FileStorage.
type FileStorage struct {
	mock.Mock
}

func (m *FileStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)

	return args.String(0), args.Error(1)
}

func (m *FileStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// QRCodeService is a mock of service.QRCodeService.
type QRCodeService struct {
	mock.Mock
}

func (m *QRCodeService) GeneratePaymentQR(upiPaymentID, payeeName string) ([]byte, error) {
	args := m.Called(upiPaymentID, payeeName)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}

	return nil, args.Error(1)
}

// DeviceCapabilities is a mock of service.DeviceCapabilities.
type DeviceCapabilities struct {
	mock.Mock
}

func (m *DeviceCapabilities) TakePhoto(ctx context.Context) (string, error) {
	args := m.Called(ctx)

	return args.String(0), args.Error(1)
}

func (m *DeviceCapabilities) CurrentLocation(ctx context.Context) (*service.Location, error) {
	args := m.Called(ctx)
	if l := args.Get(0); l != nil {
		return l.(*service.Location), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *DeviceCapabilities) RegisterForPush(ctx context.Context) (string, error) {
	args := m.Called(ctx)

	return args.String(0), args.Error(1)
}
